// Package gateway implements the request-admission pipeline: identity
// derivation, per-action quota checks, payload validation, and routing of
// admitted submissions to the persistence layer. The ordering is fixed:
// quota before validation (reject cheaply first), validation before
// persistence (no partial writes).
package gateway

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"pressroom/internal/models"
	"pressroom/internal/quota"
	"pressroom/internal/store"
)

// Service handles admission control and submission routing business logic
type Service struct {
	store  store.Store
	quota  quota.Store
	limits quota.Limits
}

// NewService creates a new gateway service with the given persistence and
// quota backends.
func NewService(st store.Store, qs quota.Store, limits quota.Limits) *Service {
	return &Service{
		store:  st,
		quota:  qs,
		limits: limits,
	}
}

// Submit runs one write-intent request through the admission pipeline.
// The identity parameter is the quota identity derived by the caller (see
// Identity). Errors are always *ServiceError carrying HTTP context.
func (s *Service) Submit(ctx context.Context, req *models.SubmitRequest, identity string) (*models.SubmitResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, NewValidationError(err.Error())
	}

	// Quota first. Unknown actions still consume the fallback quota so
	// probing invalid actions cannot bypass admission control.
	limit := s.limits.For(req.Action)
	decision, err := s.quota.Check(ctx, quota.Key(req.Action, identity), limit)
	if err != nil {
		return nil, NewInternalError("Failed to check rate limit", fmt.Errorf("quota check: %w", err))
	}

	if !decision.Allowed {
		return nil, NewThrottledError(ceilSeconds(decision.RetryAfter))
	}

	action := ParseAction(req.Action)
	table, record, serr := buildRecord(action, req)
	if serr != nil {
		return nil, serr
	}

	if err := s.store.Insert(ctx, table, record); err != nil {
		if action == ActionSubscribe && errors.Is(err, store.ErrDuplicate) {
			return nil, NewConflictError("Email is already subscribed")
		}
		return nil, NewPersistenceError(err)
	}

	return &models.SubmitResponse{
		Success: true,
		RateLimit: models.RateLimitInfo{
			Remaining: decision.Remaining,
			ResetIn:   ceilSeconds(time.Until(decision.ResetAt)),
		},
	}, nil
}

// ceilSeconds converts a duration to whole seconds, rounding up so callers
// never retry before the window actually resets. Negative durations clamp
// to zero.
func ceilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Seconds()))
}
