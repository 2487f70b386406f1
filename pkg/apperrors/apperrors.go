// Package apperrors defines the error kinds surfaced by the API and the
// HTTP status each one maps to.
package apperrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error.
type Kind string

const (
	KindInvalidReference   Kind = "InvalidReference"
	KindValidation         Kind = "ValidationFailure"
	KindInvalidPagination  Kind = "InvalidPagination"
	KindInvalidSort        Kind = "InvalidSort"
	KindNotFound           Kind = "NotFound"
	KindTargetNotFound     Kind = "TargetNotFound"
	KindConflict           Kind = "Conflict"
	KindAggregationFailure Kind = "AggregationFailure"
	KindTimeout            Kind = "Timeout"
	KindInternal           Kind = "Internal"
)

// Error is the structured error carried from the stores up to the response
// envelope. Input echoes the offending value when it is safe to do so.
type Error struct {
	Kind    Kind
	Message string
	Input   any
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches another *Error by kind so callers can write
// errors.Is(err, apperrors.ErrNotFound).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == ""
}

// Sentinels for errors.Is comparisons.
var (
	ErrInvalidReference   = &Error{Kind: KindInvalidReference}
	ErrValidation         = &Error{Kind: KindValidation}
	ErrInvalidPagination  = &Error{Kind: KindInvalidPagination}
	ErrInvalidSort        = &Error{Kind: KindInvalidSort}
	ErrNotFound           = &Error{Kind: KindNotFound}
	ErrTargetNotFound     = &Error{Kind: KindTargetNotFound}
	ErrConflict           = &Error{Kind: KindConflict}
	ErrAggregationFailure = &Error{Kind: KindAggregationFailure}
	ErrTimeout            = &Error{Kind: KindTimeout}
	ErrInternal           = &Error{Kind: KindInternal}
)

// New creates an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a kind and message to an underlying error. A context deadline
// anywhere in the chain always wins and is reported as a Timeout.
func Wrap(err error, kind Kind, message string) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		kind = KindTimeout
		message = "operation timed out: " + message
	}
	return &Error{Kind: kind, Message: message, Cause: err}
}

// WithInput returns e with the offending input attached.
func (e *Error) WithInput(input any) *Error {
	e.Input = input
	return e
}

func InvalidReference(field, value string) *Error {
	return New(KindInvalidReference, fmt.Sprintf("invalid %s", field)).WithInput(map[string]string{field: value})
}

func Validation(message string) *Error { return New(KindValidation, message) }

func NotFound(resource, id string) *Error {
	return New(KindNotFound, resource+" not found").WithInput(map[string]string{"id": id})
}

func TargetNotFound(resource, id string) *Error {
	return New(KindTargetNotFound, resource+" not found").WithInput(map[string]string{"id": id})
}

func Conflict(message string) *Error { return New(KindConflict, message) }

// KindOf reports the kind of err, Internal when err is not an *Error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	return KindInternal
}

// HTTPStatus maps an error kind onto the status code returned to clients.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindInvalidReference, KindValidation, KindInvalidPagination, KindInvalidSort:
		return http.StatusBadRequest
	case KindNotFound, KindTargetNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
