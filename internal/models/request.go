// Package models - API request types and input validation.
// This file defines all incoming API request structures.
//
// Validation Philosophy:
// - Fail fast with clear error messages for invalid input
// - Normalize input data for consistent processing (trimmed strings, lowercased emails)
// - Shape validation here; per-action field contracts live in the gateway service
// - Provide sensible defaults where appropriate
package models

import (
	"errors"
	"net/url"
	"strings"
)

// SubmitRequest represents a write-intent request to the admission gateway.
//
// Core API Design:
// - Action selects the quota and the field contract applied to Data
// - Data is a flat string map; optional fields may carry explicit JSON null
// - UserID, when supplied, overrides network-derived identity for quota keys
//
// Security Notes:
// - UserID is caller-supplied and untrusted; it only scopes quotas, never
//   grants access
// - All fields are validated before any persistence write
type SubmitRequest struct {
	Action string             `json:"action"`           // Request category (contact, subscribe, comment, page_view)
	Data   map[string]*string `json:"data"`             // Action-specific payload fields
	UserID string             `json:"userId,omitempty"` // Explicit quota identity (optional)
}

// Validate checks the request shape. Per-action field requirements are
// enforced later by the gateway service.
func (r *SubmitRequest) Validate() error {
	if strings.TrimSpace(r.Action) == "" {
		return errors.New("action is required")
	}
	if r.Data == nil {
		return errors.New("data is required")
	}
	return nil
}

// Field returns the trimmed value of a data field, or "" when the field is
// absent or JSON null.
func (r *SubmitRequest) Field(name string) string {
	v, ok := r.Data[name]
	if !ok || v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}

// HasField reports whether a data field is present with a non-null value.
func (r *SubmitRequest) HasField(name string) bool {
	v, ok := r.Data[name]
	return ok && v != nil
}

// Default display values for the OG image when parameters are omitted.
const (
	DefaultOGTitle  = "Untitled Post"
	DefaultOGAuthor = "Editorial Team"
)

// OGImageParams holds the display parameters for one social-preview render.
// All parameters are optional; fallbacks are applied during parsing.
type OGImageParams struct {
	Title    string `json:"title"`
	ImageURL string `json:"image,omitempty"`
	Author   string `json:"author"`
	Category string `json:"category,omitempty"`
}

// OGImageParamsFromQuery builds render parameters from a query string,
// applying title and author fallbacks for absent values.
func OGImageParamsFromQuery(q url.Values) OGImageParams {
	p := OGImageParams{
		Title:    strings.TrimSpace(q.Get("title")),
		ImageURL: strings.TrimSpace(q.Get("image")),
		Author:   strings.TrimSpace(q.Get("author")),
		Category: strings.TrimSpace(q.Get("category")),
	}
	if p.Title == "" {
		p.Title = DefaultOGTitle
	}
	if p.Author == "" {
		p.Author = DefaultOGAuthor
	}
	return p
}
