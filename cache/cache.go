// Package cache provides the process-wide expiring snapshot store. Keys are
// resolved retrieval URLs, so identical keys always carry identical payloads
// and last-writer-wins on a colliding write is safe.
package cache

import (
	"sync"
	"time"
)

// entry pairs a payload with its absolute expiry instant
type entry[T any] struct {
	payload   T
	expiresAt time.Time
}

// Store is an expiring in-memory key/value store. It does no per-key
// locking: concurrent identical requests may both miss and both fetch,
// which is acceptable because writes are idempotent.
type Store[T any] struct {
	entries map[string]entry[T]
	now     func() time.Time

	mu sync.RWMutex
}

// NewStore creates an empty store
func NewStore[T any]() *Store[T] {
	return &Store[T]{
		entries: make(map[string]entry[T]),
		now:     time.Now,
	}
}

// Get returns the payload for the key, if present and not expired.
// An expired entry behaves as absent and is evicted on read.
func (s *Store[T]) Get(key string) (T, bool) {
	var zero T

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return zero, false
	}

	if !s.now().After(e.expiresAt) {
		return e.payload, true
	}

	s.mu.Lock()

	// Re-check under the write lock; another writer may have refreshed
	// the entry in the meantime
	if cur, ok := s.entries[key]; ok && s.now().After(cur.expiresAt) {
		delete(s.entries, key)
	}

	s.mu.Unlock()

	return zero, false
}

// Set stores the payload under the key with the given time-to-live
func (s *Store[T]) Set(key string, payload T, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entry[T]{
		payload:   payload,
		expiresAt: s.now().Add(ttl),
	}
}

// Clear drops all entries
func (s *Store[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]entry[T])
}

// Len returns the number of stored entries, expired ones included
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}
