package domain

import "errors"

// Request errors
var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("user already exists")
	ErrNotFound   = errors.New("not found")
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// Authorization errors
var (
	ErrForbidden = errors.New("not the owner of this resource")
)

type validationError struct {
	message string
}

func (e *validationError) Error() string { return e.message }

func (e *validationError) Unwrap() error { return ErrValidation }

// Invalid reports a rejected request. The message is shown to the client
// as is and the error matches ErrValidation.
func Invalid(message string) error {
	return &validationError{message: message}
}
