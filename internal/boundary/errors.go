package boundary

import (
	"errors"
	"fmt"
)

// Kind is the closed set of failure classes this package produces. The
// propagation policy differs per kind: InvalidRoot aborts before any
// traversal, BoundaryViolation is fatal for the call that triggered it, and
// Inaccessible is a soft failure the walk logs and skips.
type Kind int

const (
	KindInvalidRoot Kind = iota
	KindBoundaryViolation
	KindInaccessible
)

func (k Kind) String() string {
	switch k {
	case KindInvalidRoot:
		return "invalid-root"
	case KindBoundaryViolation:
		return "boundary-violation"
	case KindInaccessible:
		return "inaccessible"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by this package. Callers dispatch
// on Kind rather than on distinct error types.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Path)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}

func kindOf(err error) (Kind, bool) {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind, true
	}
	return 0, false
}

// IsInvalidRoot reports whether err is a construction-time configuration error.
func IsInvalidRoot(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindInvalidRoot
}

// IsBoundaryViolation reports whether err is a hard containment failure
// (including a symlink whose target escapes the root on an explicit follow).
func IsBoundaryViolation(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindBoundaryViolation
}

// IsInaccessible reports whether err is a soft, skip-worthy failure:
// not found, permission denied, a broken link, or a non-following symlink
// whose target lies outside the root.
func IsInaccessible(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindInaccessible
}
