package evalcache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Uses testify/require for setup/teardown brevity: the one place in the
// module's dependency graph a direct testify import is defensible, since
// the teacher only ever carries it as an indirect dependency of
// modernc.org/sqlite's own toolchain and never imports it directly.
func openTestCache(t *testing.T) *Cache {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache.db")
	c, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, c.Close()) })
	return c
}

func TestLookupMiss(t *testing.T) {
	c := openTestCache(t)
	_, ok, err := c.Lookup(context.Background(), "1 + 1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestStoreThenLookup(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	program, err := c.Store(ctx, "x + y")
	require.NoError(t, err)
	require.NotNil(t, program)

	entry, ok, err := c.Lookup(ctx, "x + y")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, Hash("x + y"), entry.Hash)
	require.ElementsMatch(t, []string{"x", "y"}, entry.Variables)
}

func TestStoreIsIdempotent(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	_, err := c.Store(ctx, "a")
	require.NoError(t, err)
	_, err = c.Store(ctx, "a")
	require.NoError(t, err, "storing the same source twice must not error")
}

func TestCompileCachedPopulatesOnMiss(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	_, _, err := c.Lookup(ctx, "a.length()")
	require.NoError(t, err)

	program, entry, err := c.CompileCached(ctx, "a.length()")
	require.NoError(t, err)
	require.NotNil(t, program)
	require.Equal(t, []string{"a"}, entry.Variables)

	_, ok, err := c.Lookup(ctx, "a.length()")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestCompileCachedRejectsInvalidSource(t *testing.T) {
	c := openTestCache(t)
	_, _, err := c.CompileCached(context.Background(), "1 +")
	require.Error(t, err)
}
