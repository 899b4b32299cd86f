// Package quota provides fixed-window admission control for gateway actions.
// Each (action, identifier) pair gets its own counter that resets entirely at
// window boundaries rather than sliding continuously. Implementations must be
// safe for concurrent use: the check-and-increment on a key is a critical
// section, and two concurrent requests racing for the last slot must never
// both be admitted.
package quota

import (
	"context"
	"time"

	"pressroom/internal/models"
)

// Limit is the fixed-window quota applied to one action kind.
type Limit struct {
	MaxRequests int           // Admissions allowed per window
	Window      time.Duration // Window length
}

// Decision is the outcome of one quota check.
type Decision struct {
	Allowed    bool          // Whether the request is admitted
	Remaining  int           // Admissions left in the current window
	ResetAt    time.Time     // When the current window expires
	RetryAfter time.Duration // Time until the window resets
}

// Store defines the admission counter contract. Implementations must be safe
// for concurrent use.
type Store interface {
	// Check atomically applies the fixed-window quota to key. A fresh window
	// is started when none exists or the previous one has expired; otherwise
	// the existing counter is consulted and, if under the limit, incremented.
	Check(ctx context.Context, key string, limit Limit) (Decision, error)

	// Close releases any resources held by the store.
	Close() error
}

// Limits resolves an action name to its configured quota, falling back to a
// default for unrecognized actions. Unknown actions are never rejected here;
// the gateway's dispatch table handles that separately.
type Limits struct {
	actions  map[string]Limit
	fallback Limit
}

// NewLimits builds a resolver from configuration.
func NewLimits(cfg models.QuotaConfig) Limits {
	actions := make(map[string]Limit, len(cfg.Actions))
	for name, l := range cfg.Actions {
		actions[name] = Limit{MaxRequests: l.MaxRequests, Window: l.Window}
	}
	return Limits{
		actions:  actions,
		fallback: Limit{MaxRequests: cfg.Default.MaxRequests, Window: cfg.Default.Window},
	}
}

// DefaultLimits returns the stock per-action quotas.
func DefaultLimits() Limits {
	return NewLimits(models.NewDefaultConfig().Quota)
}

// For returns the quota for an action name.
func (l Limits) For(action string) Limit {
	if limit, ok := l.actions[action]; ok {
		return limit
	}
	return l.fallback
}

// Key builds the composite counter key for an action and caller identity.
func Key(action, identifier string) string {
	return action + ":" + identifier
}
