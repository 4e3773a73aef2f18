package resolve

import (
	"fmt"

	apperrors "github.com/louisbranch/resolve-mcp/internal/platform/errors"
)

// Status classifies the outcome of a connector accessor.
type Status int

const (
	// StatusOK means the application answered with a usable value.
	StatusOK Status = iota
	// StatusAbsent means a handle the accessor needs was missing, so the
	// application was not asked at all.
	StatusAbsent
	// StatusRejected means the application answered with a falsy value.
	StatusRejected
	// StatusFailed means the call raised inside the application or the
	// helper transport broke.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusAbsent:
		return "absent"
	case StatusRejected:
		return "rejected"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result is the outcome of a connector accessor. Value holds the zero value
// of T unless Status is StatusOK.
type Result[T any] struct {
	Value  T
	Status Status
	Err    error
}

// OK reports whether the accessor produced a value.
func (r Result[T]) OK() bool {
	return r.Status == StatusOK
}

// Code returns the error code of a non-OK result.
func (r Result[T]) Code() apperrors.Code {
	if r.OK() {
		return ""
	}
	return apperrors.CodeOf(r.Err)
}

func ok[T any](v T) Result[T] {
	return Result[T]{Value: v, Status: StatusOK}
}

func absent[T any](code apperrors.Code, what string) Result[T] {
	return Result[T]{Status: StatusAbsent, Err: apperrors.New(code, what)}
}

func notConnected[T any]() Result[T] {
	return absent[T](apperrors.CodeNotConnected, "not connected to application")
}

func rejected[T any](op string) Result[T] {
	return Result[T]{Status: StatusRejected, Err: apperrors.New(apperrors.CodeRejected, op+" rejected")}
}

// propagate carries a non-OK status over to a result of another type.
func propagate[T, U any](r Result[U]) Result[T] {
	return Result[T]{Status: r.Status, Err: r.Err}
}

// truthy turns a false answer into StatusRejected.
func truthy(op string, r Result[bool]) Result[bool] {
	if r.OK() && !r.Value {
		return rejected[bool](op)
	}
	return r
}

// present turns a nil handle answer into StatusAbsent.
func present[T any](what string, r Result[T]) Result[T] {
	if r.OK() && any(r.Value) == nil {
		return absent[T](apperrors.CodeNotFound, what)
	}
	return r
}

// produced turns a nil handle answer from a creating call into
// StatusRejected.
func produced[T any](op string, r Result[T]) Result[T] {
	if r.OK() && any(r.Value) == nil {
		return rejected[T](op)
	}
	return r
}
