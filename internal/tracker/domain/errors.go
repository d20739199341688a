package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrForbidden          = errors.New("operation not permitted for role")
	ErrDuplicateID        = errors.New("record id already exists")
	ErrInvalidCredentials = errors.New("invalid username, password, or role")
	ErrUnauthenticated    = errors.New("user not authenticated")
)

// ValidationError is a user-facing input problem. Nothing is dispatched when one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
