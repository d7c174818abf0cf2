// Package apperr categorizes errors crossing the core's boundary so the
// transport layer can map them to protocol-level failure codes.
package apperr

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeNotFound indicates an unknown game, player, node or card id
	ErrorTypeNotFound ErrorType = "not_found"
	// ErrorTypePrecondition indicates a structural precondition failed
	ErrorTypePrecondition ErrorType = "precondition"
	// ErrorTypeRule indicates the rule engine rejected the input
	ErrorTypeRule ErrorType = "rule_violation"
	// ErrorTypeInternal indicates an internal consistency failure
	ErrorTypeInternal ErrorType = "internal"
)

// AppError is the base error type for categorized errors
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFoundf creates a not found error with formatting
func NotFoundf(format string, args ...interface{}) error {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf(format, args...),
	}
}

// Preconditionf creates a precondition error with formatting
func Preconditionf(format string, args ...interface{}) error {
	return &AppError{
		Type:    ErrorTypePrecondition,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapPrecondition wraps an error as a precondition error
func WrapPrecondition(message string, err error) error {
	return &AppError{
		Type:    ErrorTypePrecondition,
		Message: message,
		Err:     err,
	}
}

// WrapRule wraps a rule engine rejection
func WrapRule(message string, err error) error {
	return &AppError{
		Type:    ErrorTypeRule,
		Message: message,
		Err:     err,
	}
}

// WrapInternal wraps an error as an internal error
func WrapInternal(message string, err error) error {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}

// GetType returns the error type of an error
func GetType(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}
