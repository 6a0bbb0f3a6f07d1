// Package cache provides a tiny TTL memo for computed view models.
//
// The dashboard serves a handful of fixed views (overview, clients,
// payments), so each gets a single memoized value rather than a keyed
// cache. Values are replaced wholesale; invalidation simply drops the
// held value so the next read recomputes.
package cache

import (
	"sync"
	"time"
)

// Memo holds one value with a time-to-live.
type Memo[T any] struct {
	mu        sync.Mutex
	value     T
	expiresAt time.Time
	ttl       time.Duration
	now       func() time.Time
}

func NewMemo[T any](ttl time.Duration) *Memo[T] {
	return &Memo[T]{ttl: ttl, now: time.Now}
}

// Get returns the held value and whether it is still fresh.
func (m *Memo[T]) Get() (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var zero T
	if m.expiresAt.IsZero() || m.now().After(m.expiresAt) {
		return zero, false
	}
	return m.value, true
}

// Set replaces the held value and restarts its TTL.
func (m *Memo[T]) Set(value T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = value
	m.expiresAt = m.now().Add(m.ttl)
}

// Invalidate drops the held value.
func (m *Memo[T]) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	var zero T
	m.value = zero
	m.expiresAt = time.Time{}
}
