// Package apperr defines the error taxonomy shared by every service in the
// catalog core. Callers branch on Kind; the wrapped cause is kept for logs.
package apperr

import (
	"context"
	"errors"
	"fmt"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindUnauthorized
	KindPersistence
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindPersistence:
		return "persistence"
	case KindTimeout:
		return "timeout"
	}
	return "unknown"
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Unauthorizedf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

// Persistence classifies a failed store call. Deadline overruns become
// KindTimeout so callers can treat them as retryable.
func Persistence(err error, message string) *Error {
	kind := KindPersistence
	if errors.Is(err, context.DeadlineExceeded) {
		kind = KindTimeout
	}
	return &Error{Kind: kind, Message: message, Err: err}
}

func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func IsValidation(err error) bool   { return IsKind(err, KindValidation) }
func IsNotFound(err error) bool     { return IsKind(err, KindNotFound) }
func IsUnauthorized(err error) bool { return IsKind(err, KindUnauthorized) }
func IsPersistence(err error) bool  { return IsKind(err, KindPersistence) }
func IsTimeout(err error) bool      { return IsKind(err, KindTimeout) }
