package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// matcher holds compiled exclude patterns.
type matcher struct {
	full []glob.Glob // patterns containing a slash, matched against the relative path
	base []glob.Glob // bare patterns, also matched against the base name
}

func compileExcludes(patterns []string) (*matcher, error) {
	m := &matcher{}
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		if strings.Contains(pattern, "/") {
			m.full = append(m.full, g)
		} else {
			m.base = append(m.base, g)
		}
	}
	return m, nil
}

// excluded reports whether relPath matches any pattern. Directories are also
// tried with a trailing slash so "vendor/**" skips the vendor directory.
func (m *matcher) excluded(relPath string, isDir bool) bool {
	relPath = filepath.ToSlash(relPath)
	candidates := []string{relPath}
	if isDir {
		candidates = append(candidates, relPath+"/")
	}

	for _, g := range m.full {
		for _, c := range candidates {
			if g.Match(c) {
				return true
			}
		}
	}

	name := filepath.Base(relPath)
	for _, g := range m.base {
		if g.Match(relPath) || g.Match(name) {
			return true
		}
	}
	return false
}

// discoverer walks the file system for one Discover call.
type discoverer struct {
	workDir    string
	extensions []string
	excludes   *matcher
	follow     bool
}

// Discover finds Markdown files under opts.Paths. It returns a sorted,
// deduplicated list of absolute paths. Explicitly named files are kept even
// when their extension is not a Markdown one.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	excludes, err := compileExcludes(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	d := &discoverer{
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		excludes:   excludes,
		follow:     opts.FollowSymlinks,
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, inputPath := range opts.effectivePaths() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

		absPath := inputPath
		if !filepath.IsAbs(absPath) {
			absPath = filepath.Join(workDir, absPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			if !d.excludes.excluded(d.rel(absPath), false) {
				add(absPath)
			}
			continue
		}

		discovered, err := d.walk(ctx, absPath)
		if err != nil {
			return nil, err
		}
		for _, f := range discovered {
			add(f)
		}
	}

	sort.Strings(files)
	return files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

func (d *discoverer) rel(path string) string {
	relPath, err := filepath.Rel(d.workDir, path)
	if err != nil {
		return path
	}
	return relPath
}

// walk returns the Markdown files under root, skipping hidden entries.
func (d *discoverer) walk(ctx context.Context, root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		hidden := path != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || d.excludes.excluded(d.rel(path), true) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			info, statErr := os.Stat(path)
			if statErr != nil {
				return nil //nolint:nilerr // broken symlinks are skipped
			}
			if info.IsDir() {
				if !d.follow {
					return nil
				}
				// Walk the resolved target; WalkDir does not descend into
				// symlinked roots on its own.
				target, evalErr := filepath.EvalSymlinks(path)
				if evalErr != nil {
					return nil //nolint:nilerr // unresolvable symlinks are skipped
				}
				sub, err := d.walk(ctx, target)
				if err != nil {
					return err
				}
				files = append(files, sub...)
				return nil
			}
		}

		if d.isMarkdown(path) && !d.excludes.excluded(d.rel(path), false) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

func (d *discoverer) isMarkdown(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range d.extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}
