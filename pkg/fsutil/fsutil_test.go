package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/redmark/pkg/fsutil"
)

func TestReadInput(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("reads file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "post.md")
		require.NoError(t, os.WriteFile(path, []byte("# hi"), 0o644))

		content, err := fsutil.ReadInput(ctx, path, nil, 0)
		require.NoError(t, err)
		assert.Equal(t, "# hi", string(content))
	})

	t.Run("reads stdin", func(t *testing.T) {
		t.Parallel()

		content, err := fsutil.ReadInput(ctx, fsutil.StdioPath, strings.NewReader("*x*"), 0)
		require.NoError(t, err)
		assert.Equal(t, "*x*", string(content))
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := fsutil.ReadInput(ctx, filepath.Join(t.TempDir(), "nope.md"), nil, 0)
		require.ErrorIs(t, err, fsutil.ErrNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, err := fsutil.ReadInput(ctx, t.TempDir(), nil, 0)
		require.ErrorIs(t, err, fsutil.ErrIsDirectory)
	})

	t.Run("file over limit", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "big.md")
		require.NoError(t, os.WriteFile(path, []byte("0123456789"), 0o644))

		_, err := fsutil.ReadInput(ctx, path, nil, 5)
		require.ErrorIs(t, err, fsutil.ErrTooLarge)
	})

	t.Run("stdin over limit", func(t *testing.T) {
		t.Parallel()

		_, err := fsutil.ReadInput(ctx, fsutil.StdioPath, strings.NewReader("0123456789"), 5)
		require.ErrorIs(t, err, fsutil.ErrTooLarge)
	})

	t.Run("stdin at limit", func(t *testing.T) {
		t.Parallel()

		content, err := fsutil.ReadInput(ctx, fsutil.StdioPath, strings.NewReader("01234"), 5)
		require.NoError(t, err)
		assert.Len(t, content, 5)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := fsutil.ReadInput(cctx, fsutil.StdioPath, strings.NewReader(""), 0)
		require.ErrorIs(t, err, context.Canceled)
	})
}
