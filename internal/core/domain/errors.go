package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Each maps to exactly one HTTP status in the API layer.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("access forbidden")
	ErrNotFound     = errors.New("not found")
	ErrUpstream     = errors.New("payment processor error")
)

// Error is a classified failure carrying the message shown to the client.
// errors.Is(err, ErrForbidden) and friends match on Kind.
type Error struct {
	Kind    error
	Message string
	Extra   map[string]any
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) error { return newError(ErrValidation, format, args...) }

func Unauthorized(format string, args ...any) error {
	return newError(ErrUnauthorized, format, args...)
}

func Forbidden(format string, args ...any) error { return newError(ErrForbidden, format, args...) }

func NotFound(format string, args ...any) error { return newError(ErrNotFound, format, args...) }

// Upstream wraps a processor failure; msg is passed through to the client.
func Upstream(msg string) error { return &Error{Kind: ErrUpstream, Message: msg} }

// Uniqueness violations reported by the credential store.
var (
	ErrUsernameTaken = &Error{Kind: ErrValidation, Message: "username is already taken"}
	ErrTokenInUse    = &Error{Kind: ErrValidation, Message: "api_token is already in use"}
)

// Webhook verification failures reported by a WebhookVerifier.
var (
	ErrInvalidSignature = errors.New("invalid signature")
	ErrInvalidPayload   = errors.New("invalid payload")
)
