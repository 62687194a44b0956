package cli

import (
	"errors"

	"github.com/yaklabco/mdbridge/pkg/document"
	"github.com/yaklabco/mdbridge/pkg/fsutil"
)

// Exit codes for mdbridge.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitMismatch indicates a round-trip check found differing output.
	ExitMismatch = 1

	// ExitParseError indicates an input could not be parsed.
	ExitParseError = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromError maps an error returned by a command to an exit code.
func ExitCodeFromError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrRoundTripMismatch):
		return ExitMismatch
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, document.ErrParse):
		return ExitParseError
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, ErrOutputModified):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
