package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/redmark/pkg/runner"
)

// makeTree creates files (relative to a new temp dir) and returns the dir.
func makeTree(t *testing.T, files ...string) string {
	t.Helper()

	dir := t.TempDir()
	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("# "+f+"\n"), 0o644))
	}
	return dir
}

func abs(dir string, rel ...string) []string {
	out := make([]string, 0, len(rel))
	for _, r := range rel {
		out = append(out, filepath.Join(dir, filepath.FromSlash(r)))
	}
	return out
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	tree := []string{
		"readme.md",
		"docs/guide.md",
		"docs/api.markdown",
		"docs/drafts/wip.md",
		"vendor/lib/notes.md",
		"src/main.go",
		"notes.txt",
		".hidden.md",
		".git/config.md",
		"CHANGELOG.MD",
	}

	tests := []struct {
		name string
		opts runner.Options
		want []string
	}{
		{
			name: "directory walk",
			opts: runner.Options{Paths: []string{"."}},
			want: []string{"CHANGELOG.MD", "docs/api.markdown", "docs/drafts/wip.md", "docs/guide.md", "readme.md", "vendor/lib/notes.md"},
		},
		{
			name: "defaults to working directory",
			opts: runner.Options{},
			want: []string{"CHANGELOG.MD", "docs/api.markdown", "docs/drafts/wip.md", "docs/guide.md", "readme.md", "vendor/lib/notes.md"},
		},
		{
			name: "custom extensions",
			opts: runner.Options{Extensions: []string{".markdown"}},
			want: []string{"docs/api.markdown"},
		},
		{
			name: "exclude directory with double star",
			opts: runner.Options{ExcludeGlobs: []string{"vendor/**"}},
			want: []string{"CHANGELOG.MD", "docs/api.markdown", "docs/drafts/wip.md", "docs/guide.md", "readme.md"},
		},
		{
			name: "exclude by base name",
			opts: runner.Options{ExcludeGlobs: []string{"drafts", "*.markdown"}},
			want: []string{"CHANGELOG.MD", "docs/guide.md", "readme.md", "vendor/lib/notes.md"},
		},
		{
			name: "single star stays in one segment",
			opts: runner.Options{ExcludeGlobs: []string{"docs/*.md"}},
			want: []string{"CHANGELOG.MD", "docs/api.markdown", "docs/drafts/wip.md", "readme.md", "vendor/lib/notes.md"},
		},
		{
			name: "explicit file and overlapping directory dedupe",
			opts: runner.Options{Paths: []string{"docs/guide.md", "docs", "notes.txt"}},
			want: []string{"docs/api.markdown", "docs/drafts/wip.md", "docs/guide.md", "notes.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := makeTree(t, tree...)
			opts := tt.opts
			opts.WorkingDir = dir

			files, err := runner.Discover(context.Background(), opts)
			require.NoError(t, err)
			assert.Equal(t, abs(dir, tt.want...), files)
		})
	}
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"missing"},
		WorkingDir: t.TempDir(),
	})
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestDiscover_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   makeTree(t, "a.md"),
		ExcludeGlobs: []string{"[unclosed"},
	})
	require.ErrorContains(t, err, "invalid exclude pattern")
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: makeTree(t, "a.md")})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_DirectorySymlinks(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}

	dir := makeTree(t, "docs/a.md")
	outside := makeTree(t, "b.md")
	require.NoError(t, os.Symlink(outside, filepath.Join(dir, "linked")))

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "docs/a.md"), files, "directory symlinks are not followed by default")

	files, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.ElementsMatch(t, []string{"a.md", "b.md"}, []string{filepath.Base(files[0]), filepath.Base(files[1])})
}

func TestDefaultExtensions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{".md", ".markdown"}, runner.DefaultExtensions())
}
