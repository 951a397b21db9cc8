package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is; the concrete *Error carries the
// human-readable reason.
var (
	// ErrNotFound indicates an absent catalog resource, group, product or user.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates a uniqueness violation, e.g. a duplicate email.
	ErrConflict = errors.New("conflict")
	// ErrUnauthenticated covers missing, unknown, expired or malformed tokens
	// and wrong credentials. Callers must not learn which factor failed.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrValidation indicates a request with missing or malformed fields.
	ErrValidation = errors.New("validation failed")
	// ErrFatal indicates a startup condition the process cannot serve without.
	ErrFatal = errors.New("fatal")
	// ErrTokenExpired is returned by token signers when the signature is good
	// but the expiration has passed.
	ErrTokenExpired = errors.New("token expired")
)

// Error is a kinded error whose message is safe to show to API clients.
type Error struct {
	Kind    error
	Message string
	Err     error
}

// Errorf builds an *Error of the given kind with a formatted message.
func Errorf(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error of the given kind that also wraps a cause.
func Wrap(kind error, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Kind != nil {
		return e.Kind.Error()
	}
	return "unknown error"
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e == nil {
		return nil
	}
	var errs []error
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}
