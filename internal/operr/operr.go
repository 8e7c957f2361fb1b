// Package operr defines the error taxonomy the operations library and the
// workflow executor classify failures into.
package operr

import (
	"errors"
	"fmt"
)

// Kind tags a failure so the executor can decide how to report it without
// string-matching error messages.
type Kind string

const (
	KindInvalidArgument Kind = "invalid_argument"
	KindIO              Kind = "io"
	KindUnsupported     Kind = "unsupported"
	KindInternal        Kind = "internal"
)

// Error wraps an underlying cause with a Kind so callers can branch on
// errors.As without parsing messages.
type Error struct {
	Kind   Kind
	Reason string
	Cause  error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Reason, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func (e *Error) Unwrap() error { return e.Cause }

// InvalidArgument reports malformed input: bad file metadata, out-of-range
// parameters, or an operation that doesn't apply to the given kind of data.
func InvalidArgument(format string, args ...any) error {
	return &Error{Kind: KindInvalidArgument, Reason: fmt.Sprintf(format, args...)}
}

// IO reports a filesystem or encoding failure underneath an operation.
func IO(cause error, format string, args ...any) error {
	return &Error{Kind: KindIO, Reason: fmt.Sprintf(format, args...), Cause: cause}
}

// Unsupported reports an operation that cannot apply to this file at all
// (OCR on a non-image/non-PDF, format conversion with no matching encoder).
func Unsupported(format string, args ...any) error {
	return &Error{Kind: KindUnsupported, Reason: fmt.Sprintf(format, args...)}
}

// Internal reports an unexpected failure that isn't one of the above.
func Internal(cause error, format string, args ...any) error {
	return &Error{Kind: KindInternal, Reason: fmt.Sprintf(format, args...), Cause: cause}
}

// KindOf extracts the Kind from err, defaulting to KindInternal for errors
// that were never classified (e.g. a raw panic converted to an error).
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
