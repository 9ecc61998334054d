package prefs

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// NewTestStore creates an in-memory store for testing
func NewTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(MemoryPath)
	require.NoError(t, err, "failed to open test store")

	t.Cleanup(func() {
		s.Close()
	})
	return s
}

func TestGetMissing(t *testing.T) {
	s := NewTestStore(t)

	v, ok, err := s.Get(context.Background(), "theme")
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, v)
}

func TestSetOverwrites(t *testing.T) {
	s := NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "theme", "dark"))
	require.NoError(t, s.Set(ctx, "theme", "light"))

	v, ok, err := s.Get(ctx, "theme")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "light", v)

	require.NoError(t, s.Delete(ctx, "theme"))
	_, ok, err = s.Get(ctx, "theme")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "theme", "dark"))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	v, ok, err := s.Get(ctx, "theme")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "dark", v)
}

func TestClosedStoreErrors(t *testing.T) {
	s, err := Open(MemoryPath)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	require.Error(t, s.Set(context.Background(), "theme", "dark"))
}
