package services

import "errors"

// Client-facing messages for the account error kinds.
const (
	MessageConflict           = "Username or email already exists"
	MessageInvalidCredentials = "Invalid username or password"
	MessageNotFound           = "User not found"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New(MessageConflict)
	ErrInvalidCredentials = errors.New(MessageInvalidCredentials)
	ErrNotFound           = errors.New(MessageNotFound)
)

// ValidationError carries the message for a rejected input field.
// It matches ErrValidation under errors.Is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func validationError(message string) error {
	return &ValidationError{Message: message}
}

// IsClientError reports whether err is one of the account error kinds
// whose message is safe to return to the caller.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrNotFound)
}
