package cli

import (
	"errors"

	"github.com/yaklabco/mdlstyle/internal/configloader"
	"github.com/yaklabco/mdlstyle/pkg/fsutil"
	"github.com/yaklabco/mdlstyle/pkg/ruleset"
	"github.com/yaklabco/mdlstyle/pkg/style"
)

// Exit codes for mdlstyle.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitFailure indicates a general failure.
	ExitFailure = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates a style or settings file is invalid.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrCheckFailed is returned by check when a style has problems. The
// problems have already been reported.
var ErrCheckFailed = errors.New("style check failed")

// ExitCodeFromError maps an error returned by a command to a process exit code.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var (
		usageErr   *usageError
		syntaxErr  *style.SyntaxError
		resolveErr *ruleset.ResolveError
		validErr   *configloader.ValidationError
	)

	switch {
	case errors.As(err, &usageErr):
		return ExitInvalidUsage
	case errors.Is(err, ErrCheckFailed),
		errors.As(err, &syntaxErr),
		errors.As(err, &resolveErr),
		errors.As(err, &validErr),
		errors.Is(err, configloader.ErrStyleNotFound),
		errors.Is(err, configloader.ErrUnsupportedFormat):
		return ExitConfigError
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fsutil.ErrTooLarge):
		return ExitIOError
	default:
		return ExitFailure
	}
}
