package templates

import (
	"context"
	"slices"
	"sync"
	"time"
)

// MemoryStore keeps templates in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	items []Template
	now   func() time.Time
}

// NewMemoryStore returns an empty store, optionally seeded with templates saved in order.
func NewMemoryStore(seed ...Template) *MemoryStore {
	s := &MemoryStore{now: time.Now}
	for _, t := range seed {
		// Seed data is trusted: attachment payloads are kept unchecked.
		if t.Validate() == nil {
			s.items = append(s.items, stamp(nil, t, s.now()))
		}
	}
	return s
}

// List returns copies of all templates in insertion order.
func (s *MemoryStore) List(_ context.Context) ([]Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Template, len(s.items))
	for i, t := range s.items {
		out[i] = t.Clone()
	}
	return out, nil
}

// GetByID returns a copy of the template with id, or ErrNotFound.
func (s *MemoryStore) GetByID(_ context.Context, id string) (Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.index(id); i >= 0 {
		return s.items[i].Clone(), nil
	}
	return Template{}, ErrNotFound
}

// Save creates or merges t under the store lock and returns the stored record.
func (s *MemoryStore) Save(_ context.Context, t Template) (Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := -1
	var existing *Template
	if t.ID != "" {
		if i = s.index(t.ID); i >= 0 {
			existing = &s.items[i]
		}
	}

	p, err := prepare(existing, t, s.now())
	if err != nil {
		return Template{}, err
	}

	if i >= 0 {
		s.items[i] = p
	} else {
		s.items = append(s.items, p)
	}
	return p.Clone(), nil
}

// Delete removes the template with id; later templates keep their order.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return ErrNotFound
	}
	s.items = slices.Delete(s.items, i, i+1)
	return nil
}

// TrackUsage increments the usage counter of id and records at as its last use.
func (s *MemoryStore) TrackUsage(_ context.Context, id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return ErrNotFound
	}
	s.items[i].UsageCount++
	s.items[i].LastUsedAt = &at
	return nil
}

func (s *MemoryStore) index(id string) int {
	return slices.IndexFunc(s.items, func(t Template) bool { return t.ID == id })
}
