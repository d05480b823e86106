package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrSeatTaken          = errors.New("seat is already taken")
	ErrEmptyOrder         = errors.New("order must contain at least one ticket")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError reports a rejected input value. Handlers map it to a
// client error instead of a server one.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// SeatError reports a seat coordinate outside the airplane geometry.
// Field is either "seat" or "row".
type SeatError struct {
	Field string
	Value int
	Max   int
}

func (e *SeatError) Error() string {
	return fmt.Sprintf("%s must be in range [1, %d], not %d", e.Field, e.Max, e.Value)
}
