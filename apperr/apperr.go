// Package apperr defines the failure categories surfaced by the service layer.
// Callers branch on Kind, never on message text.
package apperr

import (
	"errors"
	"fmt"
)

// Kind is a stable failure category
type Kind string

const (
	KindNotFound        Kind = "not_found"
	KindUnauthorized    Kind = "unauthorized"
	KindForbidden       Kind = "forbidden"
	KindConflict        Kind = "conflict"
	KindInvalidArgument Kind = "invalid_argument"
	KindServiceError    Kind = "service_error"
)

// Error carries a Kind, a user-facing message and an optional cause
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error of the same kind, so errors.Is(err, apperr.ErrNotFound) works
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Message == "" && t.Err == nil && t.Kind == e.Kind
}

// Sentinels for errors.Is checks
var (
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrUnauthorized    = &Error{Kind: KindUnauthorized}
	ErrForbidden       = &Error{Kind: KindForbidden}
	ErrConflict        = &Error{Kind: KindConflict}
	ErrInvalidArgument = &Error{Kind: KindInvalidArgument}
	ErrServiceError    = &Error{Kind: KindServiceError}
)

func newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error { return newf(KindNotFound, format, args...) }

func Unauthorized(format string, args ...any) *Error {
	return newf(KindUnauthorized, format, args...)
}

func Forbidden(format string, args ...any) *Error { return newf(KindForbidden, format, args...) }

func Conflict(format string, args ...any) *Error { return newf(KindConflict, format, args...) }

func InvalidArgument(format string, args ...any) *Error {
	return newf(KindInvalidArgument, format, args...)
}

// Service wraps a collaborator failure (AI provider, mail, ...)
func Service(err error, format string, args ...any) *Error {
	e := newf(KindServiceError, format, args...)
	e.Err = err
	return e
}

var errStorage = errors.New("storage")

// Storage wraps a persistence failure. Its kind is ServiceError; IsStorage
// tells it apart from failures of outside collaborators.
func Storage(err error, format string, args ...any) *Error {
	return Service(fmt.Errorf("%w: %w", errStorage, err), format, args...)
}

// IsStorage reports whether err came from the persistence layer
func IsStorage(err error) bool {
	return errors.Is(err, errStorage)
}

// KindOf returns the Kind of err. Errors that did not come through this
// package are collaborator failures.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindServiceError
}

// MessageOf returns the user-facing message of err
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return "internal server error"
}
