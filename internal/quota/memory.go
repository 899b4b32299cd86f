package quota

import (
	"context"
	"sync"
	"time"
)

// window holds one active fixed window for a key.
type window struct {
	count   int
	resetAt time.Time
}

// MemoryStore is an in-process fixed-window counter store. Expired windows
// are replaced on the next check for their key rather than swept in the
// background, so the map only shrinks on restart. Inactive keys accumulate
// for the life of the process; see the eviction note in DESIGN.md.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*window
}

// NewMemoryStore creates an empty in-memory quota store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		windows: make(map[string]*window),
	}
}

// Check applies the fixed-window quota to key. The lookup, expiry check, and
// increment happen under a single lock acquisition so concurrent requests for
// the same key cannot both claim the last remaining slot.
func (m *MemoryStore) Check(_ context.Context, key string, limit Limit) (Decision, error) {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	w, exists := m.windows[key]
	if !exists || now.After(w.resetAt) {
		// Expired windows are overwritten, never merged.
		w = &window{resetAt: now.Add(limit.Window)}
		m.windows[key] = w
	}

	if w.count >= limit.MaxRequests {
		return Decision{
			Allowed:    false,
			Remaining:  0,
			ResetAt:    w.resetAt,
			RetryAfter: w.resetAt.Sub(now),
		}, nil
	}

	w.count++
	return Decision{
		Allowed:    true,
		Remaining:  limit.MaxRequests - w.count,
		ResetAt:    w.resetAt,
		RetryAfter: w.resetAt.Sub(now),
	}, nil
}

// Close is a no-op; the store holds no external resources.
func (m *MemoryStore) Close() error {
	return nil
}

// size returns the number of tracked keys. Test helper.
func (m *MemoryStore) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.windows)
}
