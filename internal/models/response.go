// Package models - API response types and error handling.
// This file defines all outgoing API response structures with consistent formatting.
//
// Response Design Principles:
// - Stable, documented wire shapes; browser-side callers bind to these directly
// - Optional fields use omitempty to reduce response size
// - Machine-readable error codes for programmatic handling
// - Rate limit state mirrored in both body and response headers
package models

import "time"

// SubmitResponse is the success envelope for an admitted submission.
//
// Client Usage:
// - Success is always true on HTTP 200
// - RateLimit lets callers pre-emptively back off before hitting 429
type SubmitResponse struct {
	Success   bool          `json:"success"`
	RateLimit RateLimitInfo `json:"rateLimit"`
}

// RateLimitInfo reports the caller's remaining quota in the current window.
type RateLimitInfo struct {
	Remaining int `json:"remaining"` // Admissions left in this window
	ResetIn   int `json:"resetIn"`   // Seconds until the window resets
}

// ErrorResponse is the uniform error envelope for both endpoints.
//
// Error Categories:
// - Throttled: quota exhausted, recoverable after RetryAfter seconds
// - Validation: malformed/missing/oversized fields or unknown action
// - Conflict: duplicate unique key (subscribe only)
// - Internal: unexpected persistence or render failure
type ErrorResponse struct {
	Error      string `json:"error"`                // Human-readable error description
	RetryAfter int    `json:"retryAfter,omitempty"` // Seconds to wait (throttled only)
}

type HealthCheckResponse struct {
	Status     string                     `json:"status"`
	Timestamp  time.Time                  `json:"timestamp"`
	Version    string                     `json:"version,omitempty"`
	Components map[string]ComponentHealth `json:"components,omitempty"`
}

type ComponentHealth struct {
	Status    string    `json:"status"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Health Status Constants
const (
	StatusHealthy   = "healthy"   // All systems operational
	StatusUnhealthy = "unhealthy" // Major system issues
	StatusDegraded  = "degraded"  // Partial functionality
)

// Gateway error codes
//
// Error Code Strategy:
// - Upper-case with underscores for consistency
// - Maps to standard HTTP status codes
// - Machine-readable for client error handling
const (
	ErrorCodeThrottled     = "RATE_LIMIT_EXCEEDED" // 429: Quota exhausted
	ErrorCodeValidation    = "VALIDATION_ERROR"    // 400: Input validation failed
	ErrorCodeUnknownAction = "UNKNOWN_ACTION"      // 400: Unrecognized action kind
	ErrorCodeConflict      = "CONFLICT"            // 409: Duplicate unique key
	ErrorCodeInternalError = "INTERNAL_ERROR"      // 500: Server-side error
	ErrorCodeBadRequest    = "BAD_REQUEST"         // 400: Invalid request format
)

func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{Error: message}
}

func NewThrottledResponse(message string, retryAfter int) *ErrorResponse {
	return &ErrorResponse{Error: message, RetryAfter: retryAfter}
}

func NewHealthCheckResponse(status string) *HealthCheckResponse {
	return &HealthCheckResponse{
		Status:     status,
		Timestamp:  time.Now(),
		Components: make(map[string]ComponentHealth),
	}
}

func (h *HealthCheckResponse) AddComponent(name, status, message string) {
	h.Components[name] = ComponentHealth{
		Status:    status,
		Message:   message,
		Timestamp: time.Now(),
	}
}
