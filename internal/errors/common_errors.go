package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeLoad        ErrorType = "LOAD"
	ErrTypePeriodicity ErrorType = "PERIODICITY"
	ErrTypeParsing     ErrorType = "PARSING"
	ErrTypeRegression  ErrorType = "REGRESSION"
	ErrTypeStorage     ErrorType = "STORAGE"
	ErrTypeValidation  ErrorType = "VALIDATION"
	ErrTypeNotFound    ErrorType = "NOT_FOUND"
	ErrTypeConfig      ErrorType = "CONFIG"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// IsType reports whether err is (or wraps) an AppError of the given type
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// Helper functions for common error types

// NewLoadError creates a data-load error carrying the loader identity,
// the failing operation and its arguments
func NewLoadError(loader, op string, cause error, args ...interface{}) *AppError {
	msg := fmt.Sprintf("%s.%s failed", loader, op)
	if len(args) > 0 {
		msg = fmt.Sprintf("%s.%s failed with arguments %v", loader, op, args)
	}
	appErr := NewAppError(ErrTypeLoad, msg, cause).
		WithContext("loader", loader).
		WithContext("op", op)
	if len(args) > 0 {
		appErr = appErr.WithContext("args", args)
	}
	return appErr
}

// NewPeriodicityError creates an error for series whose date spacing
// fits neither the daily nor the monthly band
func NewPeriodicityError(message string) *AppError {
	return NewAppError(ErrTypePeriodicity, message, nil)
}

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewRegressionError creates a regression-fit error
func NewRegressionError(message string, cause error) *AppError {
	return NewAppError(ErrTypeRegression, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewAppValidationError creates a validation error for AppError type
func NewAppValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("%s not found", resource), nil)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}
