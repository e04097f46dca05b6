package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies backend failures.
type ErrorKind string

const (
	KindAuth     ErrorKind = "auth"
	KindConflict ErrorKind = "conflict"
	KindNotFound ErrorKind = "not_found"
	KindProvider ErrorKind = "provider"
	KindStorage  ErrorKind = "storage"
)

// Error is the layer's error taxonomy. Provider errors wrap the original
// failure so the provider message stays available for diagnostics, but
// callers only ever branch on the kind.
type Error struct {
	Kind    ErrorKind
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

// AuthError reports invalid credentials or a missing session.
func AuthError(msg string) *Error {
	return &Error{Kind: KindAuth, Message: msg}
}

// ConflictError reports a duplicate email at registration.
func ConflictError(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// NotFoundError reports a record that should exist but does not, such as a
// profile row missing after authentication succeeded.
func NotFoundError(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// ProviderError wraps an unclassified remote-backend failure.
func ProviderError(msg string, err error) *Error {
	return &Error{Kind: KindProvider, Message: msg, Err: err}
}

// StorageError reports a local persistence failure. It is logged and
// swallowed inside the layer, never surfaced to callers.
func StorageError(msg string, err error) *Error {
	return &Error{Kind: KindStorage, Message: msg, Err: err}
}

func isKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// IsAuth reports whether err is an authentication failure.
func IsAuth(err error) bool { return isKind(err, KindAuth) }

// IsConflict reports whether err is a uniqueness conflict.
func IsConflict(err error) bool { return isKind(err, KindConflict) }

// IsNotFound reports whether err is a missing-record failure.
func IsNotFound(err error) bool { return isKind(err, KindNotFound) }

// IsProvider reports whether err is an unclassified provider failure.
func IsProvider(err error) bool { return isKind(err, KindProvider) }
