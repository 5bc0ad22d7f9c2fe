package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/redmark/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("writes new file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "tree.json")
		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("{}"), 0))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "{}", string(got))
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "tree.json")
		require.NoError(t, os.WriteFile(path, []byte("original"), 0o644))

		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("new"), 0o644))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(got))
	})

	t.Run("keeps existing mode when mode is zero", func(t *testing.T) {
		t.Parallel()
		if runtime.GOOS == "windows" {
			t.Skip("file modes are not enforced on windows")
		}

		path := filepath.Join(t.TempDir(), "tree.json")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("y"), 0))

		stat, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), stat.Mode().Perm())
	})

	t.Run("leaves no temp files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, fsutil.WriteAtomic(context.Background(), filepath.Join(dir, "a"), []byte("a"), 0))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing", "tree.json")
		require.Error(t, fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0))
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := fsutil.WriteAtomic(ctx, filepath.Join(t.TempDir(), "x"), nil, 0)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestWriteAtomicIfChanged(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tree.txt")
	ctx := context.Background()

	written, err := fsutil.WriteAtomicIfChanged(ctx, path, []byte("a"), 0)
	require.NoError(t, err)
	assert.True(t, written, "new file is written")

	written, err = fsutil.WriteAtomicIfChanged(ctx, path, []byte("a"), 0)
	require.NoError(t, err)
	assert.False(t, written, "same content is skipped")

	written, err = fsutil.WriteAtomicIfChanged(ctx, path, []byte("b"), 0)
	require.NoError(t, err)
	assert.True(t, written, "changed content is written")
}
