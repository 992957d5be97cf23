package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors.
var (
	// ErrUserNotFound covers both a missing user row and a token whose
	// subject no longer resolves to an account.
	ErrUserNotFound = NewError(ErrCodeNotFound, "user not found")
	// ErrTaskNotFound is returned for missing and not-owned tasks alike so
	// existence is never distinguishable from non-ownership.
	ErrTaskNotFound = NewError(ErrCodeNotFound, "task not found")
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = NewError(ErrCodeConflict, "this email address is already in use")
	// ErrInvalidCredentials is the single error for unknown email and wrong
	// password; the two cases must stay indistinguishable.
	ErrInvalidCredentials = NewError(ErrCodeUnauthorized, "email or password is incorrect")
	// ErrUnauthenticated is returned when no session cookie is present.
	ErrUnauthenticated = NewError(ErrCodeUnauthorized, "authentication required")
	// ErrInvalidToken is the opaque failure for any token that does not
	// verify: bad signature, expired, malformed, or revoked.
	ErrInvalidToken = NewError(ErrCodeUnauthorized, "invalid token")
	// ErrInvalidPayload flags a request body that could not be decoded.
	ErrInvalidPayload = NewError(ErrCodeInvalid, "invalid payload")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
