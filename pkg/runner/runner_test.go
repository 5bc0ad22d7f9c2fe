package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/redmark/pkg/parser"
	"github.com/yaklabco/redmark/pkg/runner"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func TestRun_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := runner.Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.Equal(t, 0, result.Stats.FilesDiscovered)
	assert.False(t, result.HasDiagnostics())
	assert.False(t, result.HasErrors())
}

func TestRun_MultipleFiles(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"a.md":      "# A\n\ntext",
		"b.md":      "- one\n- two\n",
		"sub/c.md":  "> quote",
		"other.txt": "ignored",
	})

	result, err := runner.Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 2})
	require.NoError(t, err)

	require.Len(t, result.Files, 3)
	assert.Equal(t, filepath.Join(dir, "a.md"), result.Files[0].Path)
	assert.Equal(t, filepath.Join(dir, "b.md"), result.Files[1].Path)
	assert.Equal(t, filepath.Join(dir, "sub", "c.md"), result.Files[2].Path)

	for _, f := range result.Files {
		require.NoError(t, f.Error)
		require.NotNil(t, f.Document)
	}

	stats := result.Stats
	assert.Equal(t, 3, stats.FilesDiscovered)
	assert.Equal(t, 3, stats.FilesParsed)
	assert.Equal(t, 0, stats.FilesErrored)
	assert.Equal(t, len("# A\n\ntext")+len("- one\n- two\n")+len("> quote"), stats.Totals.Bytes)
	assert.Equal(t, 4, stats.Totals.Blocks)
	assert.Equal(t, 1, stats.Totals.ByKind["Header"])
	assert.Equal(t, 2, stats.Totals.ByKind["ListItem"])
	assert.Equal(t, 1, stats.Totals.ByKind["Quote"])
}

func TestRun_SharedParserOptions(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{"deep.md": "> > > deep"})

	result, err := runner.Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Parser:     parser.New(parser.Options{MaxNesting: 1}),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Stats.Totals.ByKind["Quote"])
}

func TestRun_FileTooLarge(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"big.md":   strings.Repeat("x", 100),
		"small.md": "ok",
	})

	result, err := runner.Run(context.Background(), runner.Options{WorkingDir: dir, MaxFileSize: 10})
	require.NoError(t, err)

	assert.True(t, result.HasErrors())
	assert.Equal(t, 1, result.Stats.FilesErrored)
	assert.Equal(t, 1, result.Stats.FilesParsed)
	require.Error(t, result.Files[0].Error)
	assert.Nil(t, result.Files[0].Document)
}

func TestRun_SerialVsParallelConsistency(t *testing.T) {
	t.Parallel()

	files := make(map[string]string)
	for i := range 20 {
		files[filepath.Join("docs", string(rune('a'+i))+".md")] = strings.Repeat("*x* [l](http://a.com) /r/go\n\n", i+1)
	}
	dir := writeFiles(t, files)

	serial, err := runner.Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 1})
	require.NoError(t, err)
	parallel, err := runner.Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 8})
	require.NoError(t, err)

	assert.Equal(t, serial.Stats, parallel.Stats)
	require.Len(t, parallel.Files, len(serial.Files))
	for i := range serial.Files {
		assert.Equal(t, serial.Files[i].Path, parallel.Files[i].Path)
		assert.Equal(t, serial.Files[i].Document, parallel.Files[i].Document)
	}
}

func TestRun_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{"a.md": "a"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Run(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestResult_NilSafe(t *testing.T) {
	t.Parallel()

	var result *runner.Result
	assert.False(t, result.HasDiagnostics())
	assert.False(t, result.HasErrors())
}
