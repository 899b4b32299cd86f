package gateway

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pressroom/internal/models"
	"pressroom/internal/store"
)

func strPtr(s string) *string { return &s }

func submitReq(action string, data map[string]*string) *models.SubmitRequest {
	return &models.SubmitRequest{Action: action, Data: data}
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		in   string
		want Action
	}{
		{"contact", ActionContact},
		{"subscribe", ActionSubscribe},
		{"comment", ActionComment},
		{"page_view", ActionPageView},
		{"delete_everything", ActionUnknown},
		{"", ActionUnknown},
		{"Contact", ActionUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAction(tt.in))
		})
	}
}

func TestBuildContactRecord(t *testing.T) {
	req := submitReq("contact", map[string]*string{
		"name":    strPtr("  Ada Lovelace  "),
		"email":   strPtr("Ada@Example.COM"),
		"subject": strPtr("Correction"),
		"message": strPtr("Paragraph three has a typo."),
	})

	table, record, serr := buildRecord(ActionContact, req)
	require.Nil(t, serr)
	assert.Equal(t, store.TableContacts, table)
	assert.Equal(t, "Ada Lovelace", record["name"], "fields are trimmed")
	assert.Equal(t, "ada@example.com", record["email"], "emails are lowercased")
}

func TestBuildContactRecordValidation(t *testing.T) {
	tests := []struct {
		name    string
		data    map[string]*string
		wantErr string
	}{
		{
			name: "missing name",
			data: map[string]*string{
				"email": strPtr("a@example.com"), "subject": strPtr("s"), "message": strPtr("m"),
			},
			wantErr: "name is required",
		},
		{
			name: "missing message",
			data: map[string]*string{
				"name": strPtr("A"), "email": strPtr("a@example.com"), "subject": strPtr("s"),
			},
			wantErr: "message is required",
		},
		{
			name: "invalid email",
			data: map[string]*string{
				"name": strPtr("A"), "email": strPtr("not-an-email"),
				"subject": strPtr("s"), "message": strPtr("m"),
			},
			wantErr: "Invalid email address",
		},
		{
			name: "email with spaces",
			data: map[string]*string{
				"name": strPtr("A"), "email": strPtr("a b@example.com"),
				"subject": strPtr("s"), "message": strPtr("m"),
			},
			wantErr: "Invalid email address",
		},
		{
			name: "name too long",
			data: map[string]*string{
				"name": strPtr(strings.Repeat("x", 101)), "email": strPtr("a@example.com"),
				"subject": strPtr("s"), "message": strPtr("m"),
			},
			wantErr: "name must be 100 characters or less",
		},
		{
			name: "message over limit",
			data: map[string]*string{
				"name": strPtr("A"), "email": strPtr("a@example.com"),
				"subject": strPtr("s"), "message": strPtr(strings.Repeat("x", 5001)),
			},
			wantErr: "message must be 5000 characters or less",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, serr := buildRecord(ActionContact, submitReq("contact", tt.data))
			require.NotNil(t, serr)
			assert.Equal(t, 400, serr.StatusCode)
			assert.Equal(t, tt.wantErr, serr.Message)
		})
	}
}

func TestBuildContactRecordMessageBoundary(t *testing.T) {
	data := map[string]*string{
		"name": strPtr("A"), "email": strPtr("a@example.com"),
		"subject": strPtr("s"), "message": strPtr(strings.Repeat("x", 5000)),
	}

	_, record, serr := buildRecord(ActionContact, submitReq("contact", data))
	require.Nil(t, serr, "a message of exactly 5000 characters is accepted")
	assert.Len(t, record["message"], 5000)
}

func TestBuildSubscribeRecord(t *testing.T) {
	table, record, serr := buildRecord(ActionSubscribe, submitReq("subscribe", map[string]*string{
		"email": strPtr("Reader@Example.com "),
	}))
	require.Nil(t, serr)
	assert.Equal(t, store.TableSubscribers, table)
	assert.Equal(t, "reader@example.com", record["email"])

	_, _, serr = buildRecord(ActionSubscribe, submitReq("subscribe", map[string]*string{}))
	require.NotNil(t, serr)
	assert.Equal(t, "email is required", serr.Message)
}

func TestBuildCommentRecord(t *testing.T) {
	table, record, serr := buildRecord(ActionComment, submitReq("comment", map[string]*string{
		"post_id":      strPtr("go-generics"),
		"content":      strPtr("Great writeup!"),
		"author_name":  strPtr("Reader"),
		"author_email": strPtr("reader@example.com"),
	}))
	require.Nil(t, serr)
	assert.Equal(t, store.TableComments, table)
	assert.Equal(t, false, record["approved"], "comments are always created unapproved")
}

func TestBuildCommentRecordContentLimit(t *testing.T) {
	_, _, serr := buildRecord(ActionComment, submitReq("comment", map[string]*string{
		"post_id":      strPtr("p"),
		"content":      strPtr(strings.Repeat("x", 2001)),
		"author_name":  strPtr("Reader"),
		"author_email": strPtr("reader@example.com"),
	}))
	require.NotNil(t, serr)
	assert.Equal(t, "content must be 2000 characters or less", serr.Message)
}

func TestBuildPageViewRecord(t *testing.T) {
	t.Run("full record", func(t *testing.T) {
		table, record, serr := buildRecord(ActionPageView, submitReq("page_view", map[string]*string{
			"page_path":  strPtr("/posts/hello"),
			"post_id":    strPtr("hello"),
			"user_id":    strPtr("u-1"),
			"session_id": strPtr("s-1"),
		}))
		require.Nil(t, serr)
		assert.Equal(t, store.TablePageViews, table)
		assert.Equal(t, "hello", record["post_id"])
	})

	t.Run("optional fields become null", func(t *testing.T) {
		_, record, serr := buildRecord(ActionPageView, submitReq("page_view", map[string]*string{
			"page_path": strPtr("/about"),
			"post_id":   nil,
		}))
		require.Nil(t, serr)
		assert.Nil(t, record["post_id"])
		assert.Nil(t, record["user_id"])
		assert.Nil(t, record["session_id"])
	})

	t.Run("missing page_path", func(t *testing.T) {
		_, _, serr := buildRecord(ActionPageView, submitReq("page_view", map[string]*string{}))
		require.NotNil(t, serr)
		assert.Equal(t, "page_path is required", serr.Message)
	})

	t.Run("page_path too long", func(t *testing.T) {
		_, _, serr := buildRecord(ActionPageView, submitReq("page_view", map[string]*string{
			"page_path": strPtr("/" + strings.Repeat("x", 500)),
		}))
		require.NotNil(t, serr)
		assert.Equal(t, 400, serr.StatusCode)
	})
}
