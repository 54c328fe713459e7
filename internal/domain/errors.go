package domain

import (
	"errors"
	"fmt"
)

// Trading failures. Each one is terminal for the request.
var (
	ErrInsufficientFunds  = errors.New("low balance, transaction declined")
	ErrInsufficientShares = errors.New("trying to sell more shares than you own")
	ErrNoSuchHolding      = errors.New("you do not own shares of that stock")
	ErrUnknownSymbol      = errors.New("invalid stock symbol")
)

// Authentication failures share one type so handlers can map them together.
var (
	ErrInvalidCredentials = &AuthError{Message: "invalid username and/or password"}
	ErrUsernameTaken      = &AuthError{Message: "sorry, that username already exists"}
)

// ValidationError reports a missing or malformed form field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Invalid builds a ValidationError for field.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// AuthError reports bad credentials or a registration conflict.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// PersistenceError wraps a failed database write.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *PersistenceError) Unwrap() error { return e.Err }
