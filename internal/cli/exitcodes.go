package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/redmark/internal/configloader"
	"github.com/yaklabco/redmark/pkg/fsutil"
)

// Exit codes for redmark.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFailure indicates a command failed for an unclassified reason.
	ExitFailure = 1

	// ExitDiagnostics indicates parsing produced diagnostics in strict mode.
	ExitDiagnostics = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// Sentinel errors that select an exit code.
var (
	// ErrDiagnosticsFound is returned by parse --strict when the document
	// produced diagnostics. It carries no message worth logging.
	ErrDiagnosticsFound = errors.New("diagnostics found")

	// ErrUsage marks invalid flag values or arguments.
	ErrUsage = errors.New("invalid usage")

	// ErrConfig marks configuration loading failures.
	ErrConfig = errors.New("configuration error")
)

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var validationErr *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrDiagnosticsFound):
		return ExitDiagnostics
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig), errors.As(err, &validationErr):
		return ExitConfigError
	case errors.Is(err, ErrUnreadableFiles),
		errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fsutil.ErrTooLarge),
		errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fs.ErrPermission):
		return ExitIOError
	default:
		return ExitFailure
	}
}
