package models

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string {
	return &s
}

func TestSubmitRequest_Validate(t *testing.T) {
	tests := []struct {
		name        string
		request     SubmitRequest
		expectError bool
		errorMsg    string
	}{
		{
			name: "valid request",
			request: SubmitRequest{
				Action: "contact",
				Data:   map[string]*string{"name": strPtr("Ada")},
			},
			expectError: false,
		},
		{
			name: "empty action",
			request: SubmitRequest{
				Data: map[string]*string{"name": strPtr("Ada")},
			},
			expectError: true,
			errorMsg:    "action is required",
		},
		{
			name: "whitespace action",
			request: SubmitRequest{
				Action: "   ",
				Data:   map[string]*string{"name": strPtr("Ada")},
			},
			expectError: true,
			errorMsg:    "action is required",
		},
		{
			name: "nil data",
			request: SubmitRequest{
				Action: "contact",
			},
			expectError: true,
			errorMsg:    "data is required",
		},
		{
			name: "empty data map is valid shape",
			request: SubmitRequest{
				Action: "page_view",
				Data:   map[string]*string{},
			},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSubmitRequest_Field(t *testing.T) {
	req := SubmitRequest{
		Action: "contact",
		Data: map[string]*string{
			"name":    strPtr("  Ada Lovelace  "),
			"subject": nil,
		},
	}

	assert.Equal(t, "Ada Lovelace", req.Field("name"))
	assert.Equal(t, "", req.Field("subject"))
	assert.Equal(t, "", req.Field("missing"))
}

func TestSubmitRequest_HasField(t *testing.T) {
	req := SubmitRequest{
		Action: "comment",
		Data: map[string]*string{
			"content":   strPtr("hello"),
			"parent_id": nil,
		},
	}

	assert.True(t, req.HasField("content"))
	assert.False(t, req.HasField("parent_id"))
	assert.False(t, req.HasField("missing"))
}

func TestOGImageParamsFromQuery(t *testing.T) {
	tests := []struct {
		name     string
		query    url.Values
		expected OGImageParams
	}{
		{
			name: "all parameters",
			query: url.Values{
				"title":    {"Breaking News"},
				"image":    {"https://example.com/cover.jpg"},
				"author":   {"Ada Lovelace"},
				"category": {"Technology"},
			},
			expected: OGImageParams{
				Title:    "Breaking News",
				ImageURL: "https://example.com/cover.jpg",
				Author:   "Ada Lovelace",
				Category: "Technology",
			},
		},
		{
			name:  "empty query falls back",
			query: url.Values{},
			expected: OGImageParams{
				Title:  DefaultOGTitle,
				Author: DefaultOGAuthor,
			},
		},
		{
			name: "whitespace values fall back",
			query: url.Values{
				"title":  {"   "},
				"author": {"  "},
			},
			expected: OGImageParams{
				Title:  DefaultOGTitle,
				Author: DefaultOGAuthor,
			},
		},
		{
			name: "values are trimmed",
			query: url.Values{
				"title":    {"  Spaced Title  "},
				"category": {" News "},
			},
			expected: OGImageParams{
				Title:    "Spaced Title",
				Author:   DefaultOGAuthor,
				Category: "News",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, OGImageParamsFromQuery(tt.query))
		})
	}
}
