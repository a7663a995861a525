// Package cache memoizes store results for a fixed time window.
//
// Entries are keyed by operation name plus an input key, hold the value and
// the time it was inserted, and are treated as absent once older than the
// TTL. Errors are never cached. Concurrent misses for the same key share a
// single call.
package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultMaxEntries bounds the number of live entries.
const DefaultMaxEntries = 10000

// DefaultCallTimeout bounds a shared call when no timeout is configured.
const DefaultCallTimeout = 30 * time.Second

type entry struct {
	value      any
	insertedAt time.Time
}

// Memo is a TTL memoization table. Values handed out are shared between
// callers and must be treated as read-only.
type Memo struct {
	mu          sync.RWMutex
	entries     map[string]entry
	flight      singleflight.Group
	ttl         time.Duration
	callTimeout time.Duration
	maxEntries  int
	now         func() time.Time
	metrics     *Metrics
}

// Option configures a Memo.
type Option func(*Memo)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Memo) {
		if now != nil {
			m.now = now
		}
	}
}

// WithMaxEntries caps the table size.
func WithMaxEntries(n int) Option {
	return func(m *Memo) {
		if n > 0 {
			m.maxEntries = n
		}
	}
}

// WithCallTimeout bounds the store call shared by collapsed misses. The
// call does not inherit the cancellation of the caller that started it.
func WithCallTimeout(d time.Duration) Option {
	return func(m *Memo) {
		if d > 0 {
			m.callTimeout = d
		}
	}
}

// WithMetrics records hits and misses.
func WithMetrics(metrics *Metrics) Option {
	return func(m *Memo) { m.metrics = metrics }
}

// New creates a Memo. A ttl <= 0 disables memoization: every lookup calls
// through.
func New(ttl time.Duration, opts ...Option) *Memo {
	m := &Memo{
		entries:     make(map[string]entry),
		ttl:         ttl,
		callTimeout: DefaultCallTimeout,
		maxEntries:  DefaultMaxEntries,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// TTL returns the configured lifetime.
func (m *Memo) TTL() time.Duration { return m.ttl }

// Len returns the number of stored entries, expired ones included.
func (m *Memo) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Get returns the memoized value for (op, key) or computes it with fn.
// Concurrent misses share one fn call, run detached from any single
// caller's cancellation; each caller still stops waiting when its own ctx
// is done.
func Get[V any](ctx context.Context, m *Memo, op, key string, fn func(context.Context) (V, error)) (V, error) {
	if m == nil || m.ttl <= 0 {
		return fn(ctx)
	}
	k := op + "|" + key

	if v, ok := m.lookup(k); ok {
		if typed, ok := v.(V); ok {
			m.metrics.hit(op)
			return typed, nil
		}
	}
	m.metrics.miss(op)

	ch := m.flight.DoChan(k, func() (any, error) {
		cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.callTimeout)
		defer cancel()
		val, err := fn(cctx)
		if err != nil {
			return nil, err
		}
		m.store(k, val)
		return val, nil
	})

	var zero V
	select {
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		typed, _ := res.Val.(V)
		return typed, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

func (m *Memo) lookup(k string) (any, bool) {
	m.mu.RLock()
	e, ok := m.entries[k]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if m.now().Sub(e.insertedAt) >= m.ttl {
		m.mu.Lock()
		if cur, ok := m.entries[k]; ok && cur.insertedAt.Equal(e.insertedAt) {
			delete(m.entries, k)
		}
		m.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

func (m *Memo) store(k string, v any) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.entries[k]; !exists && len(m.entries) >= m.maxEntries {
		m.evictLocked(now)
	}
	m.entries[k] = entry{value: v, insertedAt: now}
}

// evictLocked drops expired entries, then the oldest one if still full.
func (m *Memo) evictLocked(now time.Time) {
	var (
		oldestKey string
		oldestAt  time.Time
	)
	for k, e := range m.entries {
		if now.Sub(e.insertedAt) >= m.ttl {
			delete(m.entries, k)
			continue
		}
		if oldestKey == "" || e.insertedAt.Before(oldestAt) {
			oldestKey, oldestAt = k, e.insertedAt
		}
	}
	if len(m.entries) >= m.maxEntries && oldestKey != "" {
		delete(m.entries, oldestKey)
		m.metrics.evict()
	}
}
