package resolver_test

import (
	"context"
	"errors"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/templatewing/pkg/resolver"
	"github.com/dmitrymomot/templatewing/pkg/templates"
)

type testDoc struct {
	mu       sync.Mutex
	state    resolver.DocumentState
	applied  int
	stateErr error
	applyErr error
}

func (d *testDoc) State(context.Context) (resolver.DocumentState, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stateErr != nil {
		return resolver.DocumentState{}, d.stateErr
	}
	return d.state.Clone(), nil
}

func (d *testDoc) ApplyPatch(_ context.Context, p resolver.Patch) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.applyErr != nil {
		return d.applyErr
	}
	d.state = d.state.Apply(p)
	d.applied++
	return nil
}

func (d *testDoc) snapshot() resolver.DocumentState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state.Clone()
}

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) List(ctx context.Context) ([]templates.Template, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]templates.Template)
	return list, args.Error(1)
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (templates.Template, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(templates.Template)
	return t, args.Error(1)
}

var errBoom = errors.New("boom")

func tmpl(id, name, body string) templates.Template {
	return templates.Template{ID: id, Name: name, Body: body}
}
