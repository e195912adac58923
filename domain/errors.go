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
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// Error represents a domain-level error. Field identifies the offending
// input field for validation failures.
type Error struct {
	Code    ErrorCode
	Message string
	Field   string
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

// NewFieldError builds a validation error bound to a specific input field.
func NewFieldError(field, message string) *Error {
	return &Error{Code: ErrCodeInvalid, Message: message, Field: field}
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
	ErrUserNotFound       = NewError(ErrCodeNotFound, "user not found")
	ErrRecipeNotFound     = NewError(ErrCodeNotFound, "recipe not found")
	ErrIngredientNotFound = NewError(ErrCodeNotFound, "ingredient not found")
	ErrTagNotFound        = NewError(ErrCodeNotFound, "tag not found")
	ErrSessionNotFound    = NewError(ErrCodeNotFound, "session not found")
	ErrRelationNotFound   = NewError(ErrCodeNotFound, "relation not found")
	ErrAlreadyExists      = NewError(ErrCodeConflict, "relation already exists")
	ErrSelfSubscription   = NewError(ErrCodeConflict, "cannot subscribe to yourself")
	ErrRecipeNameTaken    = NewError(ErrCodeConflict, "recipe name already taken")
	ErrUsernameTaken      = NewError(ErrCodeConflict, "username already taken")
	ErrNotRecipeAuthor    = NewError(ErrCodeForbidden, "only the author may modify a recipe")
	ErrUnauthorized       = NewError(ErrCodeUnauthorized, "unauthorized")
	ErrInvalidPayload     = NewError(ErrCodeInvalid, "invalid payload")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
