package models

import "fmt"

// AppError represents a custom application error
type AppError struct {
	Code    string
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

// Predefined error constructors
func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    "VALIDATION_ERROR",
		Message: message,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Message: message,
	}
}

func NewNetworkError(message string, err error) *AppError {
	return &AppError{
		Code:    "NETWORK_ERROR",
		Message: message,
		Err:     err,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "Internal error",
		Err:     err,
	}
}

// IsValidationError reports whether err is a client-detected validation
// failure that never reached the network.
func IsValidationError(err error) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Code == "VALIDATION_ERROR"
}

// IsUnauthorizedError reports whether err is an authentication failure.
func IsUnauthorizedError(err error) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Code == "UNAUTHORIZED"
}
