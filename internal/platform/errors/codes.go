package errors

import stderrors "errors"

// Code is a machine-readable error code.
type Code string

const (
	CodeUnknown Code = "UNKNOWN"

	// Connection errors
	CodeNotConnected   Code = "NOT_CONNECTED"
	CodeModuleNotFound Code = "MODULE_NOT_FOUND"

	// Lookup errors
	CodeNotFound Code = "NOT_FOUND"

	// Call errors
	CodeRejected        Code = "REJECTED"
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeCallFailed      Code = "CALL_FAILED"
)

// Retryable reports whether the caller could reasonably repeat the request
// once the application state changes (for example after starting Resolve).
func (c Code) Retryable() bool {
	switch c {
	case CodeNotConnected, CodeModuleNotFound, CodeNotFound:
		return true
	default:
		return false
	}
}

// As is errors.As, re-exported so callers importing this package under the
// errors name keep access to it.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Is is errors.Is, re-exported for the same reason as As.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}
