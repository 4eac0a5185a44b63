package tasks_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/templatewing/internal/tasks"
	"github.com/dmitrymomot/templatewing/pkg/job"
	"github.com/dmitrymomot/templatewing/pkg/storage"
	"github.com/dmitrymomot/templatewing/pkg/templates"
	"github.com/dmitrymomot/templatewing/pkg/transfer"
)

type mockEnqueuer struct {
	mock.Mock
}

func (m *mockEnqueuer) Enqueue(ctx context.Context, name string, payload any, opts ...job.EnqueueOption) error {
	args := m.Called(ctx, name, payload)
	return args.Error(0)
}

func TestTrackUsage_Handle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	at := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

	store := templates.NewMemoryStore(templates.Template{ID: "a", Name: "A"})
	task := tasks.NewTrackUsage(store)
	assert.Equal(t, tasks.TrackUsageTaskName, task.Name())

	require.NoError(t, task.Handle(ctx, tasks.UsagePayload{TemplateID: "a", At: at}))
	require.NoError(t, task.Handle(ctx, tasks.UsagePayload{TemplateID: "deleted", At: at}))
	require.NoError(t, task.Handle(ctx, tasks.UsagePayload{}))

	got, err := store.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 1, got.UsageCount)
	require.NotNil(t, got.LastUsedAt)
	assert.True(t, at.Equal(*got.LastUsedAt))
}

func TestDirectUsage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := templates.NewMemoryStore(templates.Template{ID: "a", Name: "A"})
	rec := tasks.DirectUsage{Store: store}
	require.NoError(t, rec.RecordUsage(ctx, "a", time.Now()))
	assert.ErrorIs(t, rec.RecordUsage(ctx, "missing", time.Now()), templates.ErrNotFound)
}

func TestQueuedUsage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	at := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

	jobs := &mockEnqueuer{}
	jobs.On("Enqueue", ctx, tasks.TrackUsageTaskName, tasks.UsagePayload{TemplateID: "a", At: at}).Return(nil).Once()
	jobs.On("Enqueue", ctx, tasks.TrackUsageTaskName, mock.Anything).Return(errors.New("queue down")).Once()

	rec := tasks.QueuedUsage{Jobs: jobs}
	require.NoError(t, rec.RecordUsage(ctx, "a", at))
	assert.Error(t, rec.RecordUsage(ctx, "b", at))
	jobs.AssertExpectations(t)
}

func TestBackup_Handle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	objects := storage.NewMemoryStorage()
	b := transfer.NewBackuper(templates.NewMemoryStore(templates.Template{Name: "A"}), objects)
	task := tasks.NewBackup(b, "0 3 * * *")
	assert.Equal(t, "backup_templates", task.Name())
	assert.Equal(t, "0 3 * * *", task.Schedule())

	require.NoError(t, task.Handle(ctx))
	list, err := b.Backups(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
