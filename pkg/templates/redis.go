package templates

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisMaxRetries = 5

// RedisStore keeps the ordered template list as one JSON document under a key.
// Writes use WATCH/MULTI so concurrent writers never lose updates.
type RedisStore struct {
	client redis.UniversalClient
	key    string
	now    func() time.Time
}

// NewRedisStore returns a store persisting under key.
func NewRedisStore(client redis.UniversalClient, key string) *RedisStore {
	if key == "" {
		key = "templatewing:templates"
	}
	return &RedisStore{client: client, key: key, now: time.Now}
}

// List decodes the stored document. A missing key is an empty list.
func (s *RedisStore) List(ctx context.Context) ([]Template, error) {
	return s.load(ctx, s.client)
}

// GetByID loads the list and returns the template with id, or ErrNotFound.
func (s *RedisStore) GetByID(ctx context.Context, id string) (Template, error) {
	list, err := s.load(ctx, s.client)
	if err != nil {
		return Template{}, err
	}
	i := slices.IndexFunc(list, func(t Template) bool { return t.ID == id })
	if i < 0 {
		return Template{}, ErrNotFound
	}
	return list[i], nil
}

// Save creates or merges t inside an optimistic transaction on the key.
func (s *RedisStore) Save(ctx context.Context, t Template) (Template, error) {
	var saved Template
	err := s.update(ctx, func(list []Template) ([]Template, error) {
		i := -1
		var existing *Template
		if t.ID != "" {
			if i = slices.IndexFunc(list, func(c Template) bool { return c.ID == t.ID }); i >= 0 {
				existing = &list[i]
			}
		}
		p, err := prepare(existing, t, s.now())
		if err != nil {
			return nil, err
		}
		saved = p
		if i >= 0 {
			list[i] = p
			return list, nil
		}
		return append(list, p), nil
	})
	if err != nil {
		return Template{}, err
	}
	return saved, nil
}

// Delete removes the template with id, or returns ErrNotFound.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.update(ctx, func(list []Template) ([]Template, error) {
		i := slices.IndexFunc(list, func(t Template) bool { return t.ID == id })
		if i < 0 {
			return nil, ErrNotFound
		}
		return slices.Delete(list, i, i+1), nil
	})
}

// TrackUsage increments the usage counter of id and records at as its last use.
func (s *RedisStore) TrackUsage(ctx context.Context, id string, at time.Time) error {
	return s.update(ctx, func(list []Template) ([]Template, error) {
		i := slices.IndexFunc(list, func(t Template) bool { return t.ID == id })
		if i < 0 {
			return nil, ErrNotFound
		}
		list[i].UsageCount++
		list[i].LastUsedAt = &at
		return list, nil
	})
}

func (s *RedisStore) load(ctx context.Context, c redis.Cmdable) ([]Template, error) {
	raw, err := c.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []Template{}, nil
	}
	if err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}
	var list []Template
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}
	return list, nil
}

// update runs fn against the current list inside an optimistic transaction,
// retrying when another writer touched the key.
func (s *RedisStore) update(ctx context.Context, fn func([]Template) ([]Template, error)) error {
	txf := func(tx *redis.Tx) error {
		list, err := s.load(ctx, tx)
		if err != nil {
			return err
		}
		list, err = fn(list)
		if err != nil {
			return err
		}
		raw, err := json.Marshal(list)
		if err != nil {
			return errors.Join(ErrStoreFailure, err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, s.key, raw, 0)
			return nil
		})
		return err
	}

	for range redisMaxRetries {
		err := s.client.Watch(ctx, txf, s.key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil && !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrInvalidTemplate) && !errors.Is(err, ErrStoreFailure) {
			return errors.Join(ErrStoreFailure, err)
		}
		return err
	}
	return ErrConflict
}
