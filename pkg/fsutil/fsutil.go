// Package fsutil provides the file system helpers used by the redmark CLI:
// bounded input reads and atomic output writes.
package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// StdioPath is the path that selects standard input or output.
const StdioPath = "-"

// MaxInputSize is the largest document ReadInput accepts (64 MiB).
const MaxInputSize = 64 << 20

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrTooLarge indicates the input exceeds MaxInputSize.
	ErrTooLarge = errors.New("input too large")
)

// ReadInput reads a whole document from path, or from stdin when path is
// StdioPath. Inputs larger than limit bytes are rejected; a limit of 0 uses
// MaxInputSize.
func ReadInput(ctx context.Context, path string, stdin io.Reader, limit int64) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("read input: %w", ctx.Err())
	default:
	}

	if limit <= 0 {
		limit = MaxInputSize
	}

	if path == StdioPath {
		return readLimited(stdin, "stdin", limit)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, classify(path, err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}
	if stat.Size() > limit {
		return nil, fmt.Errorf("%w: %s is %d bytes (limit %d)", ErrTooLarge, path, stat.Size(), limit)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, classify(path, err)
	}
	defer func() { _ = f.Close() }()

	return readLimited(f, path, limit)
}

// readLimited reads r fully, failing once more than limit bytes arrive.
func readLimited(r io.Reader, name string, limit int64) ([]byte, error) {
	content, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if int64(len(content)) > limit {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, name, limit)
	}
	return content, nil
}

// classify wraps an os error with the matching sentinel.
func classify(path string, err error) error {
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case os.IsPermission(err):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("stat %s: %w", path, err)
	}
}
