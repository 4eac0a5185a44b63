package templates_test

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/templatewing/pkg/templates"
)

// runStoreContract exercises the behaviour every Store must share.
// newStore must return an empty store.
func runStoreContract(t *testing.T, newStore func(t *testing.T) templates.Store) {
	t.Run("create assigns id and defaults", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		saved, err := s.Save(ctx, templates.Template{Name: " Greeting ", Body: "<p>Hi</p>"})
		require.NoError(t, err)

		assert.Len(t, saved.ID, 26)
		assert.Equal(t, "Greeting", saved.Name)
		assert.Equal(t, templates.InsertAppend, saved.InsertMode)
		assert.Empty(t, saved.To)
		assert.False(t, saved.CreatedAt.IsZero())
		assert.Equal(t, saved.CreatedAt, saved.UpdatedAt)

		got, err := s.GetByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, saved.Name, got.Name)
		assert.Equal(t, "<p>Hi</p>", got.Body)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		s := newStore(t)

		_, err := s.Save(context.Background(), templates.Template{Name: "   "})
		require.ErrorIs(t, err, templates.ErrInvalidTemplate)
		require.ErrorIs(t, err, templates.ErrEmptyName)
	})

	t.Run("update merges and keeps created at and usage", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		first, err := s.Save(ctx, templates.Template{Name: "A", Subject: "one"})
		require.NoError(t, err)
		require.NoError(t, s.TrackUsage(ctx, first.ID, time.Now()))

		update := first
		update.Subject = "two"
		update.UsageCount = 0
		updated, err := s.Save(ctx, update)
		require.NoError(t, err)

		assert.Equal(t, first.ID, updated.ID)
		assert.Equal(t, "two", updated.Subject)
		assert.WithinDuration(t, first.CreatedAt, updated.CreatedAt, time.Millisecond)
		assert.Equal(t, 1, updated.UsageCount)
		assert.NotNil(t, updated.LastUsedAt)

		list, err := s.List(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("unknown id is inserted as given", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		saved, err := s.Save(ctx, templates.Template{ID: "custom-id", Name: "Imported"})
		require.NoError(t, err)
		assert.Equal(t, "custom-id", saved.ID)

		_, err = s.GetByID(ctx, "custom-id")
		require.NoError(t, err)
	})

	t.Run("list keeps insertion order", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		for _, name := range []string{"C", "A", "B"} {
			_, err := s.Save(ctx, templates.Template{Name: name})
			require.NoError(t, err)
		}

		list, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "C", list[0].Name)
		assert.Equal(t, "A", list[1].Name)
		assert.Equal(t, "B", list[2].Name)
	})

	t.Run("attachments get ids sizes and types", func(t *testing.T) {
		s := newStore(t)

		saved, err := s.Save(context.Background(), templates.Template{
			Name: "With files",
			Attachments: []templates.Attachment{
				{Name: "a.txt", MimeType: "Text/Plain; charset=utf-8", Data: "aGVsbG8="},
				{ID: "dup", Name: "b.txt", Data: "aGk=", Size: 999},
				{ID: "dup", Name: "terms.pdf", Data: "JVBERi0x\nLjQK"},
			},
		})
		require.NoError(t, err)
		require.Len(t, saved.Attachments, 3)

		assert.Len(t, saved.Attachments[0].ID, 16)
		assert.Equal(t, int64(5), saved.Attachments[0].Size)
		assert.Equal(t, "text/plain", saved.Attachments[0].MimeType)
		assert.Equal(t, "dup", saved.Attachments[1].ID)
		assert.Equal(t, int64(2), saved.Attachments[1].Size)
		assert.Equal(t, "text/plain", saved.Attachments[1].MimeType)
		assert.NotEqual(t, "dup", saved.Attachments[2].ID)
		assert.Equal(t, "application/pdf", saved.Attachments[2].MimeType)
		assert.Equal(t, int64(9), saved.Attachments[2].Size)
	})

	t.Run("invalid attachments rejected", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		oversize := base64.StdEncoding.EncodeToString(make([]byte, templates.MaxAttachmentSize+1))
		for name, data := range map[string]string{
			"not base64": "!!!not base64!!!",
			"empty":      "",
			"too large":  oversize,
		} {
			_, err := s.Save(ctx, templates.Template{
				Name:        "Broken " + name,
				Attachments: []templates.Attachment{{Name: "a.png", Data: data}},
			})
			require.ErrorIs(t, err, templates.ErrInvalidTemplate, name)
			require.ErrorIs(t, err, templates.ErrInvalidAttachment, name)
		}

		list, err := s.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("names with angle brackets rejected", func(t *testing.T) {
		s := newStore(t)

		_, err := s.Save(context.Background(), templates.Template{Name: "tom's <sig>"})
		require.ErrorIs(t, err, templates.ErrInvalidTemplate)
		require.ErrorIs(t, err, templates.ErrInvalidName)
	})

	t.Run("body is sanitized", func(t *testing.T) {
		s := newStore(t)

		saved, err := s.Save(context.Background(), templates.Template{
			Name: "XSS",
			Body: `<p>Hello {SENDER_NAME}</p><script>alert(1)</script>`,
		})
		require.NoError(t, err)
		assert.Equal(t, "<p>Hello {SENDER_NAME}</p>", saved.Body)
	})

	t.Run("delete", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		saved, err := s.Save(ctx, templates.Template{Name: "Gone"})
		require.NoError(t, err)

		require.NoError(t, s.Delete(ctx, saved.ID))
		_, err = s.GetByID(ctx, saved.ID)
		require.ErrorIs(t, err, templates.ErrNotFound)
		require.ErrorIs(t, s.Delete(ctx, saved.ID), templates.ErrNotFound)
	})

	t.Run("track usage", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		saved, err := s.Save(ctx, templates.Template{Name: "Used"})
		require.NoError(t, err)

		at := time.Date(2026, time.May, 1, 10, 0, 0, 0, time.UTC)
		require.NoError(t, s.TrackUsage(ctx, saved.ID, at))
		require.NoError(t, s.TrackUsage(ctx, saved.ID, at.Add(time.Minute)))

		got, err := s.GetByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, got.UsageCount)
		require.NotNil(t, got.LastUsedAt)
		assert.True(t, at.Add(time.Minute).Equal(*got.LastUsedAt))

		require.ErrorIs(t, s.TrackUsage(ctx, "missing", at), templates.ErrNotFound)
	})

	t.Run("get unknown", func(t *testing.T) {
		s := newStore(t)

		_, err := s.GetByID(context.Background(), "missing")
		require.ErrorIs(t, err, templates.ErrNotFound)
	})
}
