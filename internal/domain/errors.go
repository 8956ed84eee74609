package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInitialization = errors.New("store initialization failed")
	ErrNotFound       = errors.New("not found")
	ErrDuplicate      = errors.New("already exists")
	ErrInvalidInput   = errors.New("invalid input")
)

// ValidationError rejects a request before it reaches the store.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
