package domain

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorCode represents a unique error code
type ErrorCode string

// Error codes, grouped by prefix
const (
	// Validation errors
	ErrCodeMissingField    ErrorCode = "VALID_2001"
	ErrCodeInvalidCategory ErrorCode = "VALID_2002"
	ErrCodeInvalidStatus   ErrorCode = "VALID_2003"
	ErrCodeInvalidRequest  ErrorCode = "VALID_2004"

	// Lookup errors
	ErrCodeTicketNotFound ErrorCode = "NOT_FOUND_4041"

	// Authentication errors
	ErrCodeInvalidCredentials ErrorCode = "AUTH_1001"
	ErrCodeInvalidToken       ErrorCode = "AUTH_1002"

	// Rate limiting errors
	ErrCodeRateLimitExceeded ErrorCode = "RATE_3001"

	// Upstream errors
	ErrCodeSummarizerUnavailable ErrorCode = "UPSTREAM_5021"

	// Store errors
	ErrCodeStoreFailure ErrorCode = "STORE_5031"

	// Server errors
	ErrCodeInternal ErrorCode = "SERVER_6001"
)

// AppError represents a structured application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
	Cause   error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the cause error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches any AppError carrying the same code, so sentinel comparisons
// survive wrapping with different details.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message string, details string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Details: details,
		Cause:   cause,
	}
}

// ErrTicketNotFound is returned by stores when no row matches the id
var ErrTicketNotFound = NewAppError(ErrCodeTicketNotFound, "Ticket not found", "", nil)

func ErrMissingField(field string) *AppError {
	return NewAppError(ErrCodeMissingField, "Missing required field", fmt.Sprintf("Field: %s", field), nil)
}

func ErrInvalidCategory(category string) *AppError {
	return NewAppError(ErrCodeInvalidCategory, "Unknown category", fmt.Sprintf("Category: %s", category), nil)
}

func ErrInvalidStatus(status string) *AppError {
	return NewAppError(ErrCodeInvalidStatus, "Invalid ticket status", fmt.Sprintf("Status: %s", status), nil)
}

func ErrInvalidRequest(details string) *AppError {
	return NewAppError(ErrCodeInvalidRequest, "Invalid request", details, nil)
}

func ErrInvalidCredentials() *AppError {
	return NewAppError(ErrCodeInvalidCredentials, "Invalid email or password", "", nil)
}

func ErrInvalidToken(details string) *AppError {
	return NewAppError(ErrCodeInvalidToken, "Invalid or expired token", details, nil)
}

func ErrRateLimitExceeded(key string) *AppError {
	return NewAppError(ErrCodeRateLimitExceeded, "Too many requests", fmt.Sprintf("Key: %s", key), nil)
}

// ErrSummarizerUnavailable marks a summarizer call that failed or returned non-2xx
func ErrSummarizerUnavailable(details string, cause error) *AppError {
	return NewAppError(ErrCodeSummarizerUnavailable, "Summarizer unavailable", details, cause)
}

// ErrStore wraps a persistence failure
func ErrStore(operation string, cause error) *AppError {
	return NewAppError(ErrCodeStoreFailure, "Ticket store operation failed", fmt.Sprintf("Operation: %s", operation), cause)
}

func ErrInternal(details string, cause error) *AppError {
	return NewAppError(ErrCodeInternal, "Internal server error", details, cause)
}

// IsValidationError reports whether err belongs to the validation group
func IsValidationError(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return strings.HasPrefix(string(appErr.Code), "VALID_")
	}
	return false
}

// HTTPStatus maps an error to an HTTP status code
func HTTPStatus(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	code := string(appErr.Code)
	switch {
	case strings.HasPrefix(code, "VALID_"):
		return http.StatusBadRequest
	case strings.HasPrefix(code, "AUTH_"):
		return http.StatusUnauthorized
	case strings.HasPrefix(code, "NOT_FOUND_"):
		return http.StatusNotFound
	case strings.HasPrefix(code, "RATE_"):
		return http.StatusTooManyRequests
	case strings.HasPrefix(code, "UPSTREAM_"):
		return http.StatusBadGateway
	case strings.HasPrefix(code, "STORE_"):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
