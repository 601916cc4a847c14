package ruleset

import (
	"errors"

	"github.com/yaklabco/mdlstyle/pkg/catalog"
	"github.com/yaklabco/mdlstyle/pkg/style"
)

// Sentinel errors wrapped by ResolveError.
var (
	ErrUnknownRule   = errors.New("unknown rule")
	ErrUnknownTag    = errors.New("unknown tag")
	ErrUnknownOption = errors.New("unknown option")
	ErrInvalidOption = catalog.ErrInvalidValue
)

// ResolveError is a semantic problem with a directive, such as a rule ID the
// catalogue does not know.
type ResolveError struct {
	Pos    style.Pos
	RuleID string
	Err    error
}

// Error implements the error interface.
func (e *ResolveError) Error() string {
	msg := e.Err.Error()
	if loc := e.Pos.String(); loc != "" {
		return loc + ": " + msg
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *ResolveError) Unwrap() error {
	return e.Err
}

// Warning is a non-fatal problem found while resolving.
type Warning struct {
	Pos     style.Pos
	Message string
}

// String renders the warning with its position.
func (w Warning) String() string {
	if loc := w.Pos.String(); loc != "" {
		return loc + ": " + w.Message
	}
	return w.Message
}
