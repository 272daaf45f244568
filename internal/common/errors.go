// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Storage errors.
	ErrNotFound           = errors.New("not found")
	ErrDuplicateKey       = errors.New("duplicate key")
	ErrStorageUnavailable = errors.New("storage unavailable")

	// Input errors.
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidAmount = fmt.Errorf("%w: amount must be a non-negative number of minor units", ErrInvalidInput)

	// Configuration errors.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// ErrorKind names the category of a storage or input failure.
type ErrorKind string

// Error kinds.
const (
	KindNone               ErrorKind = ""
	KindNotFound           ErrorKind = "not_found"
	KindDuplicateKey       ErrorKind = "duplicate_key"
	KindStorageUnavailable ErrorKind = "storage_unavailable"
	KindInvalidInput       ErrorKind = "invalid_input"
	KindUnknown            ErrorKind = "unknown"
)

// KindOf classifies err so a caller can pick an appropriate message.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrDuplicateKey):
		return KindDuplicateKey
	case errors.Is(err, ErrStorageUnavailable):
		return KindStorageUnavailable
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	default:
		return KindUnknown
	}
}
