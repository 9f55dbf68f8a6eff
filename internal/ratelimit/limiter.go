// Package ratelimit implements a sliding-window request limiter keyed by
// caller identity. The window is recomputed on every request from the
// trailing timestamps; stale entries are pruned opportunistically.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Result is the outcome of a limiter decision.
type Result struct {
	Allowed   bool
	Remaining int
	// RetryAfter is how long the caller must wait when denied, derived from
	// the oldest in-window timestamp.
	RetryAfter time.Duration
	Reset      time.Time
}

// Store decides whether a request identified by key may proceed at now.
type Store interface {
	Take(ctx context.Context, key string, now time.Time) (Result, error)
}

// MemoryStore keeps per-key timestamp lists guarded by a mutex.
type MemoryStore struct {
	mu       sync.Mutex
	limit    int
	window   time.Duration
	requests map[string][]time.Time
}

// NewMemoryStore creates an in-memory sliding-window store.
func NewMemoryStore(limit int, window time.Duration) *MemoryStore {
	return &MemoryStore{
		limit:    limit,
		window:   window,
		requests: make(map[string][]time.Time),
	}
}

// Take implements Store. All keys are pruned on each call, so no background
// sweeper is needed.
func (s *MemoryStore) Take(ctx context.Context, key string, now time.Time) (Result, error) {
	windowStart := now.Add(-s.window)

	s.mu.Lock()
	defer s.mu.Unlock()

	for k, timestamps := range s.requests {
		valid := pruneBefore(timestamps, windowStart)
		if len(valid) == 0 {
			delete(s.requests, k)
		} else {
			s.requests[k] = valid
		}
	}

	recent := s.requests[key]
	if len(recent) >= s.limit {
		retryAfter := recent[0].Add(s.window).Sub(now)
		if retryAfter < 0 {
			retryAfter = 0
		}
		return Result{
			Allowed:    false,
			Remaining:  0,
			RetryAfter: retryAfter,
			Reset:      now.Add(s.window),
		}, nil
	}

	s.requests[key] = append(recent, now)
	return Result{
		Allowed:   true,
		Remaining: s.limit - len(s.requests[key]),
		Reset:     now.Add(s.window),
	}, nil
}

func pruneBefore(timestamps []time.Time, cutoff time.Time) []time.Time {
	valid := timestamps[:0]
	for _, ts := range timestamps {
		if ts.After(cutoff) {
			valid = append(valid, ts)
		}
	}
	return valid
}
