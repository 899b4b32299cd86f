package gateway

import (
	"fmt"
	"net/http"

	"pressroom/internal/models"
)

// ServiceError represents errors from the gateway service with HTTP context
type ServiceError struct {
	Code       string
	Message    string
	StatusCode int
	RetryAfter int // Seconds until the quota window resets (throttled only)
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Error constructors for common service errors

func NewThrottledError(retryAfter int) *ServiceError {
	return &ServiceError{
		Code:       models.ErrorCodeThrottled,
		Message:    "Rate limit exceeded. Please try again later.",
		StatusCode: http.StatusTooManyRequests,
		RetryAfter: retryAfter,
	}
}

func NewValidationError(message string) *ServiceError {
	return &ServiceError{
		Code:       models.ErrorCodeValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewUnknownActionError() *ServiceError {
	return &ServiceError{
		Code:       models.ErrorCodeUnknownAction,
		Message:    "Unknown action",
		StatusCode: http.StatusBadRequest,
	}
}

func NewConflictError(message string) *ServiceError {
	return &ServiceError{
		Code:       models.ErrorCodeConflict,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewPersistenceError(err error) *ServiceError {
	return &ServiceError{
		Code:       models.ErrorCodeInternalError,
		Message:    "Failed to save submission",
		StatusCode: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewInternalError(message string, err error) *ServiceError {
	return &ServiceError{
		Code:       models.ErrorCodeInternalError,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Err:        err,
	}
}
