package gateway

import (
	"fmt"
	"regexp"
	"strings"

	"pressroom/internal/models"
	"pressroom/internal/store"
)

// Action is the closed set of write-intent categories the gateway accepts.
// Adding a new action means extending this enum and the dispatch in
// buildRecord; the compiler then flags every switch that needs updating.
type Action int

const (
	ActionUnknown Action = iota
	ActionContact
	ActionSubscribe
	ActionComment
	ActionPageView
)

// ParseAction maps a wire action string to its variant. Unrecognized values
// map to ActionUnknown, which still receives a quota check (fallback limit)
// but is rejected before persistence routing.
func ParseAction(s string) Action {
	switch s {
	case "contact":
		return ActionContact
	case "subscribe":
		return ActionSubscribe
	case "comment":
		return ActionComment
	case "page_view":
		return ActionPageView
	default:
		return ActionUnknown
	}
}

func (a Action) String() string {
	switch a {
	case ActionContact:
		return "contact"
	case ActionSubscribe:
		return "subscribe"
	case ActionComment:
		return "comment"
	case ActionPageView:
		return "page_view"
	default:
		return "unknown"
	}
}

// Field length limits per action contract.
const (
	maxNameLen     = 100
	maxEmailLen    = 255
	maxSubjectLen  = 200
	maxMessageLen  = 5000
	maxContentLen  = 2000
	maxPagePathLen = 500
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// buildRecord validates the request against the action's field contract and
// produces the sanitized record for persistence. Validation failures
// short-circuit before any write; there are no partial writes.
func buildRecord(action Action, req *models.SubmitRequest) (string, map[string]any, *ServiceError) {
	switch action {
	case ActionContact:
		return buildContactRecord(req)
	case ActionSubscribe:
		return buildSubscribeRecord(req)
	case ActionComment:
		return buildCommentRecord(req)
	case ActionPageView:
		return buildPageViewRecord(req)
	default:
		return "", nil, NewUnknownActionError()
	}
}

func buildContactRecord(req *models.SubmitRequest) (string, map[string]any, *ServiceError) {
	name := req.Field("name")
	email := strings.ToLower(req.Field("email"))
	subject := req.Field("subject")
	message := req.Field("message")

	if err := requireAll(map[string]string{
		"name": name, "email": email, "subject": subject, "message": message,
	}, "name", "email", "subject", "message"); err != nil {
		return "", nil, err
	}
	if err := checkLen("name", name, maxNameLen); err != nil {
		return "", nil, err
	}
	if err := checkEmail(email); err != nil {
		return "", nil, err
	}
	if err := checkLen("subject", subject, maxSubjectLen); err != nil {
		return "", nil, err
	}
	if err := checkLen("message", message, maxMessageLen); err != nil {
		return "", nil, err
	}

	return store.TableContacts, map[string]any{
		"name":    name,
		"email":   email,
		"subject": subject,
		"message": message,
	}, nil
}

func buildSubscribeRecord(req *models.SubmitRequest) (string, map[string]any, *ServiceError) {
	email := strings.ToLower(req.Field("email"))

	if email == "" {
		return "", nil, NewValidationError("email is required")
	}
	if err := checkEmail(email); err != nil {
		return "", nil, err
	}

	return store.TableSubscribers, map[string]any{
		"email": email,
	}, nil
}

func buildCommentRecord(req *models.SubmitRequest) (string, map[string]any, *ServiceError) {
	postID := req.Field("post_id")
	content := req.Field("content")
	authorName := req.Field("author_name")
	authorEmail := strings.ToLower(req.Field("author_email"))

	if err := requireAll(map[string]string{
		"post_id": postID, "content": content,
		"author_name": authorName, "author_email": authorEmail,
	}, "post_id", "content", "author_name", "author_email"); err != nil {
		return "", nil, err
	}
	if err := checkLen("content", content, maxContentLen); err != nil {
		return "", nil, err
	}
	if err := checkLen("author_name", authorName, maxNameLen); err != nil {
		return "", nil, err
	}
	if err := checkEmail(authorEmail); err != nil {
		return "", nil, err
	}

	return store.TableComments, map[string]any{
		"post_id":      postID,
		"content":      content,
		"author_name":  authorName,
		"author_email": authorEmail,
		// Comments always start unapproved; moderation flips this elsewhere.
		"approved": false,
	}, nil
}

func buildPageViewRecord(req *models.SubmitRequest) (string, map[string]any, *ServiceError) {
	pagePath := req.Field("page_path")
	if pagePath == "" {
		return "", nil, NewValidationError("page_path is required")
	}
	if err := checkLen("page_path", pagePath, maxPagePathLen); err != nil {
		return "", nil, err
	}

	record := map[string]any{
		"page_path":  pagePath,
		"post_id":    nullableField(req, "post_id"),
		"user_id":    nullableField(req, "user_id"),
		"session_id": nullableField(req, "session_id"),
	}
	return store.TablePageViews, record, nil
}

// nullableField returns the trimmed field value or nil for absent, null, or
// empty values so optional columns persist as SQL NULL.
func nullableField(req *models.SubmitRequest, name string) any {
	if v := req.Field(name); v != "" {
		return v
	}
	return nil
}

func requireAll(values map[string]string, order ...string) *ServiceError {
	for _, name := range order {
		if values[name] == "" {
			return NewValidationError(fmt.Sprintf("%s is required", name))
		}
	}
	return nil
}

func checkLen(name, value string, max int) *ServiceError {
	if len(value) > max {
		return NewValidationError(fmt.Sprintf("%s must be %d characters or less", name, max))
	}
	return nil
}

func checkEmail(email string) *ServiceError {
	if len(email) > maxEmailLen {
		return NewValidationError(fmt.Sprintf("email must be %d characters or less", maxEmailLen))
	}
	if !emailPattern.MatchString(email) {
		return NewValidationError("Invalid email address")
	}
	return nil
}
