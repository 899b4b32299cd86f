package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pressroom/internal/api"
	"pressroom/internal/gateway"
	"pressroom/internal/models"
	"pressroom/internal/quota"
	"pressroom/internal/store"
)

// Integration tests that exercise the entire system end-to-end: SQLite
// persistence, in-memory quota counters, the gateway service, and the full
// HTTP router with its middleware stack.

func newTestServer(t *testing.T, cfg *models.Config) *httptest.Server {
	t.Helper()

	st, err := store.NewSQLiteStore(store.Config{
		Type: models.StoreTypeSQLite,
		Path: filepath.Join(t.TempDir(), "pressroom.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	qs := quota.NewMemoryStore()
	t.Cleanup(func() { qs.Close() })

	service := gateway.NewService(st, qs, quota.NewLimits(cfg.Quota))
	handlers := api.NewHandlers(service, st, "integration-test")
	router := api.SetupRoutes(handlers, cfg)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func testConfig() *models.Config {
	cfg := models.NewDefaultConfig()
	cfg.Quota.Actions = map[string]models.ActionLimitConfig{
		"contact":   {MaxRequests: 5, Window: time.Hour},
		"subscribe": {MaxRequests: 3, Window: time.Hour},
		"comment":   {MaxRequests: 10, Window: time.Hour},
		"page_view": {MaxRequests: 100, Window: time.Hour},
	}
	return cfg
}

func postSubmit(t *testing.T, server *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(server.URL+"/api/v1/submit", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestIntegration_FullSubmitFlow(t *testing.T) {
	server := newTestServer(t, testConfig())

	// Contact submission persists and reports remaining quota
	resp := postSubmit(t, server, `{
		"action": "contact",
		"data": {
			"name": "Ada Lovelace",
			"email": "ada@example.com",
			"subject": "Pitch",
			"message": "I have a story idea for you."
		}
	}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var submitResp models.SubmitResponse
	decodeJSON(t, resp, &submitResp)
	assert.True(t, submitResp.Success)
	assert.Equal(t, 4, submitResp.RateLimit.Remaining)
	assert.Greater(t, submitResp.RateLimit.ResetIn, 0)

	// Page view with nullable fields persisted as NULL
	resp = postSubmit(t, server, `{
		"action": "page_view",
		"data": {"page_path": "/articles/hello-world", "referrer": null}
	}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Validation failure does not persist
	resp = postSubmit(t, server, `{
		"action": "contact",
		"data": {"name": "Ada", "email": "not-an-email", "subject": "Hi", "message": "Hello"}
	}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errResp models.ErrorResponse
	decodeJSON(t, resp, &errResp)
	assert.Equal(t, "Invalid email address", errResp.Error)
}

func TestIntegration_SubscribeDuplicateConflict(t *testing.T) {
	server := newTestServer(t, testConfig())

	body := `{"action": "subscribe", "data": {"email": "reader@example.com"}}`

	resp := postSubmit(t, server, body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = postSubmit(t, server, body)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var errResp models.ErrorResponse
	decodeJSON(t, resp, &errResp)
	assert.Equal(t, "Email is already subscribed", errResp.Error)
}

func TestIntegration_ThrottlingAcrossRequests(t *testing.T) {
	server := newTestServer(t, testConfig())

	// Distinct emails so the duplicate check never fires before the quota does
	for i := 0; i < 3; i++ {
		body := fmt.Sprintf(`{"action": "subscribe", "data": {"email": "reader%d@example.com"}}`, i)
		resp := postSubmit(t, server, body)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	resp := postSubmit(t, server, `{"action": "subscribe", "data": {"email": "late@example.com"}}`)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))
	assert.Equal(t, "0", resp.Header.Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, resp.Header.Get("X-RateLimit-Reset"))

	var errResp models.ErrorResponse
	decodeJSON(t, resp, &errResp)
	assert.Equal(t, "Rate limit exceeded. Please try again later.", errResp.Error)
	assert.Greater(t, errResp.RetryAfter, 0)
}

func TestIntegration_UnknownActionConsumesQuota(t *testing.T) {
	cfg := testConfig()
	cfg.Quota.Default = models.ActionLimitConfig{MaxRequests: 2, Window: time.Hour}
	server := newTestServer(t, cfg)

	for i := 0; i < 2; i++ {
		resp := postSubmit(t, server, `{"action": "bogus", "data": {}}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	}

	// Fallback quota is exhausted before the action is even recognized
	resp := postSubmit(t, server, `{"action": "bogus", "data": {}}`)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	resp.Body.Close()
}

func TestIntegration_QuotaIsolatedPerIdentity(t *testing.T) {
	server := newTestServer(t, testConfig())
	client := server.Client()

	submit := func(userID string) *http.Response {
		body := fmt.Sprintf(`{"action": "subscribe", "data": {"email": "%s@example.com"}, "userId": "%s"}`,
			userID+fmt.Sprint(time.Now().UnixNano()), userID)
		req, err := http.NewRequest(http.MethodPost, server.URL+"/api/v1/submit", strings.NewReader(body))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		resp, err := client.Do(req)
		require.NoError(t, err)
		return resp
	}

	for i := 0; i < 3; i++ {
		resp := submit("user-a")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	resp := submit("user-a")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	resp.Body.Close()

	// A different identity still has a fresh window
	resp = submit("user-b")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestIntegration_OGImage(t *testing.T) {
	server := newTestServer(t, testConfig())

	resp, err := http.Get(server.URL + "/api/v1/og-image?title=Hello+World&author=Ada&category=Tech")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	assert.Equal(t, "public, max-age=86400, s-maxage=86400", resp.Header.Get("Cache-Control"))

	buf := new(bytes.Buffer)
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	svg := buf.String()
	assert.Contains(t, svg, "Hello World")
	assert.Contains(t, svg, "By Ada")
	assert.Contains(t, svg, "Tech")
}

func TestIntegration_HealthCheck(t *testing.T) {
	server := newTestServer(t, testConfig())

	for _, path := range []string{"/health", "/api/v1/health"} {
		resp, err := http.Get(server.URL + path)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var health models.HealthCheckResponse
		decodeJSON(t, resp, &health)
		assert.Equal(t, models.StatusHealthy, health.Status)
		assert.Equal(t, models.StatusHealthy, health.Components["store"].Status)
	}
}

func TestIntegration_CORSPreflight(t *testing.T) {
	server := newTestServer(t, testConfig())

	req, err := http.NewRequest(http.MethodOptions, server.URL+"/api/v1/submit", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://blog.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "POST")
}
