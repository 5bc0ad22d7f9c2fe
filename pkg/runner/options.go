// Package runner parses many Markdown files concurrently with one shared
// parser and aggregates their diagnostics and node statistics.
package runner

import "github.com/yaklabco/redmark/pkg/parser"

// Options controls a multi-file run.
type Options struct {
	// Paths are the files or directories to process.
	// If empty, defaults to the working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (with leading dot) treated as
	// Markdown. Defaults to DefaultExtensions().
	Extensions []string

	// ExcludeGlobs skip files or directories whose path relative to
	// WorkingDir matches. `*` stays within one path segment, `**` spans
	// segments, and patterns without a slash also match the base name.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means runtime.NumCPU().
	Jobs int

	// MaxFileSize rejects larger files. 0 uses fsutil.MaxInputSize.
	MaxFileSize int64

	// Parser parses every file. Defaults to a parser with default options.
	Parser *parser.Parser
}

// DefaultExtensions returns the default set of Markdown file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
