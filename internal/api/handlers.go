package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"pressroom/internal/gateway"
	"pressroom/internal/models"
	"pressroom/internal/ogimage"
	"pressroom/internal/store"
)

// GatewayService defines the admission pipeline contract used by the handlers
type GatewayService interface {
	Submit(ctx context.Context, req *models.SubmitRequest, identity string) (*models.SubmitResponse, error)
}

// Handlers contains HTTP handlers for the gateway API
type Handlers struct {
	gatewayService GatewayService
	store          store.Store
	version        string
}

// NewHandlers creates a new handlers instance
func NewHandlers(gatewayService GatewayService, st store.Store, version string) *Handlers {
	return &Handlers{
		gatewayService: gatewayService,
		store:          st,
		version:        version,
	}
}

// Submit handles write-intent submissions
// POST /api/v1/submit
func (h *Handlers) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	identity := gateway.Identity(r, req.UserID)

	response, err := h.gatewayService.Submit(r.Context(), &req, identity)
	if err != nil {
		h.writeGatewayError(w, err)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, response)
}

// OGImage handles social-preview image requests
// GET /api/v1/og-image
func (h *Handlers) OGImage(w http.ResponseWriter, r *http.Request) {
	// Render failures never propagate as an image; callers get a JSON error
	// body with 500 instead.
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("OG image render panic", "error", rec)
			h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to generate image")
		}
	}()

	params := models.OGImageParamsFromQuery(r.URL.Query())

	svg, err := ogimage.Render(params)
	if err != nil {
		slog.Error("OG image render failed", "error", err)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to generate image")
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=86400, s-maxage=86400")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(svg); err != nil {
		slog.Error("Failed to write OG image response", "error", err)
	}
}

// HealthCheck handles health check requests
// GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := models.NewHealthCheckResponse(models.StatusHealthy)
	response.Version = h.version

	if err := h.store.Ping(r.Context()); err != nil {
		response.Status = models.StatusDegraded
		response.AddComponent("store", models.StatusUnhealthy, err.Error())
	} else {
		response.AddComponent("store", models.StatusHealthy, "Store is operational")
	}
	response.AddComponent("api", models.StatusHealthy, "API is operational")

	h.writeJSONResponse(w, http.StatusOK, response)
}

// writeGatewayError maps a service error to its wire shape. Throttled errors
// additionally expose retry state in response headers.
func (h *Handlers) writeGatewayError(w http.ResponseWriter, err error) {
	var serr *gateway.ServiceError
	if !errors.As(err, &serr) {
		slog.Error("Unexpected gateway error", "error", err)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if serr.StatusCode == http.StatusTooManyRequests {
		w.Header().Set("Retry-After", strconv.Itoa(serr.RetryAfter))
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.Header().Set("X-RateLimit-Reset", strconv.Itoa(serr.RetryAfter))
		h.writeJSONResponse(w, serr.StatusCode, models.NewThrottledResponse(serr.Message, serr.RetryAfter))
		return
	}

	if serr.StatusCode >= http.StatusInternalServerError {
		slog.Error("Gateway request failed", "code", serr.Code, "error", serr)
	}

	h.writeErrorResponse(w, serr.StatusCode, serr.Message)
}

// writeJSONResponse writes a JSON response
func (h *Handlers) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already written; nothing more to send.
		fmt.Printf("Error encoding JSON response: %v\n", err)
	}
}

// writeErrorResponse writes an error response
func (h *Handlers) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	h.writeJSONResponse(w, statusCode, models.NewErrorResponse(message))
}
