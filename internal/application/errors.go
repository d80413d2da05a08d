package application

import "errors"

// Kind classifies a service failure for the transport layer
type Kind string

const (
	KindInvalidInput       Kind = "invalid_input"
	KindUnauthorized       Kind = "unauthorized"
	KindInvalidCredentials Kind = "invalid_credentials"
	KindDuplicateEmail     Kind = "duplicate_email"
	KindForbidden          Kind = "forbidden"
	KindNotFound           Kind = "not_found"
	KindInternal           Kind = "internal"
)

// Error is the single outcome type returned by services.
// Message is safe to show callers; Err is for logs only.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Message + ": " + e.Err.Error()
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on Kind so callers can use the sentinels below with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrInvalidInput       = &Error{Kind: KindInvalidInput, Message: "invalid input"}
	ErrUnauthorized       = &Error{Kind: KindUnauthorized, Message: "Unauthorized. Login required."}
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials, Message: "Invalid email or password."}
	ErrDuplicateEmail     = &Error{Kind: KindDuplicateEmail, Message: "A user with this email already exists."}
	ErrForbidden          = &Error{Kind: KindForbidden, Message: "Moderator role required."}
	ErrNotFound           = &Error{Kind: KindNotFound, Message: "Resource not found."}
	ErrInternal           = &Error{Kind: KindInternal, Message: "Internal server error."}
)

func invalid(msg string) *Error {
	return &Error{Kind: KindInvalidInput, Message: msg}
}

func internalErr(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf reports the kind carried by err, KindInternal for anything untyped.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// PublicMessage returns the caller-facing text for err. Internal failures
// never expose the wrapped cause.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return ErrInternal.Message
}
