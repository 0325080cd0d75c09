package remote

import (
	"errors"
	"fmt"
)

// Kind classifies a remote failure.
type Kind int

const (
	// KindSessionUnavailable means no live session existed for the call.
	KindSessionUnavailable Kind = iota + 1
	// KindNetwork is a transport failure.
	KindNetwork
	// KindRejected is a backend-side validation or authorization failure.
	KindRejected
)

func (k Kind) String() string {
	switch k {
	case KindSessionUnavailable:
		return "session unavailable"
	case KindNetwork:
		return "network error"
	case KindRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

var (
	ErrSessionUnavailable = errors.New("session unavailable")
	ErrNetwork            = errors.New("network error")
	ErrRejected           = errors.New("rejected by service")
	ErrUnauthorized       = fmt.Errorf("%w: unauthorized", ErrRejected)
	ErrNotFound           = fmt.Errorf("%w: not found", ErrRejected)
)

// Error is returned by every failing remote operation.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the kind sentinels so callers can use errors.Is(err, ErrNetwork).
func (e *Error) Is(target error) bool {
	switch target {
	case ErrSessionUnavailable:
		return e.Kind == KindSessionUnavailable
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrRejected:
		return e.Kind == KindRejected
	}
	return false
}

// NewError builds an Error for op.
func NewError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Rejected wraps a service-side refusal.
func Rejected(op string, err error) *Error {
	return NewError(KindRejected, op, err)
}

// Network wraps a transport failure.
func Network(op string, err error) *Error {
	return NewError(KindNetwork, op, err)
}

// KindOf returns the kind of err, or 0 when err is not a remote error.
func KindOf(err error) Kind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return 0
}
