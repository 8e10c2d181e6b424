package service

import (
	"errors"
	"fmt"
)

// Kind classifies a client-visible failure.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindConflict
	KindInvalidRequest
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindConflict:
		return "conflict"
	case KindInvalidRequest:
		return "invalid request"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind    Kind
	Message string
}

// Sentinels for errors.Is; they match any Error of the same Kind.
var (
	ErrNotFound       = &Error{Kind: KindNotFound}
	ErrConflict       = &Error{Kind: KindConflict}
	ErrInvalidRequest = &Error{Kind: KindInvalidRequest}
)

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return e.Message
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

func NotFound(msg string) error       { return &Error{Kind: KindNotFound, Message: msg} }
func Conflict(msg string) error       { return &Error{Kind: KindConflict, Message: msg} }
func InvalidRequest(msg string) error { return &Error{Kind: KindInvalidRequest, Message: msg} }

func Conflictf(format string, args ...any) error {
	return Conflict(fmt.Sprintf(format, args...))
}

func InvalidRequestf(format string, args ...any) error {
	return InvalidRequest(fmt.Sprintf(format, args...))
}

// AsError reports whether err carries a client-visible Error.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
