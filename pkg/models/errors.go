package models

import (
	"errors"
	"fmt"
)

// Machine-readable error codes carried in the envelope's "code" field.
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeConflict           = "CONFLICT"
	ErrCodeInternal           = "INTERNAL_ERROR"
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeRateLimited        = "RATE_LIMITED"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// Common errors
var (
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrSessionExpired     = errors.New("session expired")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
)

// AppError is a code-tagged error carried across layers.
type AppError struct {
	Code       string             `json:"code"`
	Message    string             `json:"message"`
	StatusCode int                `json:"status_code,omitempty"`
	Details    []ValidationDetail `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewAppError builds a code-tagged error.
func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// NewValidationError builds a VALIDATION_ERROR with per-field details.
func NewValidationError(message string, details []ValidationDetail) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
		Details: details,
	}
}

// CodeForStatus maps an HTTP status to the envelope code used when the
// backend response carries none.
func CodeForStatus(status int) string {
	switch status {
	case 400:
		return ErrCodeBadRequest
	case 401:
		return ErrCodeUnauthorized
	case 403:
		return ErrCodeForbidden
	case 404:
		return ErrCodeNotFound
	case 409:
		return ErrCodeConflict
	case 422:
		return ErrCodeValidation
	case 429:
		return ErrCodeRateLimited
	case 503:
		return ErrCodeServiceUnavailable
	default:
		return ErrCodeInternal
	}
}
