package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	_, err := New(Config{Bucket: "b"})
	require.ErrorIs(t, err, ErrInvalidConfig)

	s, err := New(Config{Bucket: "b", AccessKey: "a", SecretKey: "s", Endpoint: "http://localhost:9000", PathStyle: true})
	require.NoError(t, err)
	assert.Equal(t, DefaultRegion, s.cfg.Region)
}

func TestConfig_Enabled(t *testing.T) {
	t.Parallel()

	assert.False(t, Config{}.Enabled())
	assert.True(t, Config{Bucket: "backups"}.Enabled())
}

func TestCleanKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"backups/a.json", "backups/a.json", false},
		{" /backups/a.json/ ", "backups/a.json", false},
		{"", "", true},
		{"../etc/passwd", "", true},
		{"a\\b", "", true},
	}
	for _, tt := range tests {
		got, err := cleanKey(tt.in)
		if tt.wantErr {
			require.ErrorIs(t, err, ErrInvalidKey, tt.in)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestWrapS3Error(t *testing.T) {
	t.Parallel()

	notFound := &smithy.GenericAPIError{Code: "NoSuchKey", Message: "missing"}
	require.ErrorIs(t, wrapS3Error(notFound, ErrUploadFailed), ErrNotFound)

	denied := &smithy.GenericAPIError{Code: "AccessDenied"}
	require.ErrorIs(t, wrapS3Error(denied, ErrUploadFailed), ErrAccessDenied)

	other := errors.New("connection reset")
	err := wrapS3Error(other, ErrListFailed)
	require.ErrorIs(t, err, ErrListFailed)
	require.NotErrorIs(t, err, other)
}

func TestMemoryStorage(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := NewMemoryStorage()

	_, err := m.Put(ctx, "backups/b.json", strings.NewReader(`{"b":1}`), 7, "application/json")
	require.NoError(t, err)
	info, err := m.Put(ctx, "backups/a.json", strings.NewReader(`{}`), 2, "application/json")
	require.NoError(t, err)
	assert.Equal(t, int64(2), info.Size)
	_, err = m.Put(ctx, "other/c.json", strings.NewReader(`{}`), 2, "application/json")
	require.NoError(t, err)

	list, err := m.List(ctx, "backups/")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "backups/a.json", list[0].Key)
	assert.Equal(t, "backups/b.json", list[1].Key)

	rc, err := m.Get(ctx, "backups/b.json")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, `{"b":1}`, string(data))

	require.NoError(t, m.Delete(ctx, "backups/b.json"))
	_, err = m.Get(ctx, "backups/b.json")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = m.Put(ctx, "../x", strings.NewReader("x"), 1, "")
	require.ErrorIs(t, err, ErrInvalidKey)
}
