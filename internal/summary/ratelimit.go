package summary

import (
	"sync"
	"time"
)

// Clock abstracts time for the limiter so tests can move it by hand.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// RateWindow is a process-local sliding-window counter that guards outbound
// AI calls. State is not persisted and resets on restart; it protects quota
// on a best-effort basis only.
//
// This type is safe for concurrent use.
type RateWindow struct {
	maxRequests int
	window      time.Duration
	clock       Clock

	mu         sync.Mutex
	timestamps []time.Time
}

// NewRateWindow builds a limiter that admits at most maxRequests per window.
// A nil clock uses the wall clock; maxRequests <= 0 is coerced to 1.
func NewRateWindow(maxRequests int, window time.Duration, clock Clock) *RateWindow {
	if maxRequests <= 0 {
		maxRequests = 1
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &RateWindow{
		maxRequests: maxRequests,
		window:      window,
		clock:       clock,
		timestamps:  make([]time.Time, 0, maxRequests),
	}
}

// Allow purges timestamps older than the window and, if capacity remains,
// records now and returns true. Check and reservation happen under one lock,
// so concurrent callers can never be admitted past maxRequests.
func (w *RateWindow) Allow() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.clock.Now()
	w.purge(now)
	if len(w.timestamps) >= w.maxRequests {
		return false
	}
	w.timestamps = append(w.timestamps, now)
	return true
}

// WaitTime returns how long until the oldest retained timestamp leaves the
// window, or zero when nothing is retained.
func (w *RateWindow) WaitTime() time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.clock.Now()
	w.purge(now)
	if len(w.timestamps) == 0 {
		return 0
	}
	wait := w.window - now.Sub(w.timestamps[0])
	if wait < 0 {
		return 0
	}
	return wait
}

// Len returns the number of timestamps retained at the current instant.
func (w *RateWindow) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.purge(w.clock.Now())
	return len(w.timestamps)
}

// purge drops timestamps that are window or more in the past. Timestamps are
// appended in order, so the expired ones form a prefix. Caller holds mu.
func (w *RateWindow) purge(now time.Time) {
	i := 0
	for i < len(w.timestamps) && now.Sub(w.timestamps[i]) >= w.window {
		i++
	}
	if i > 0 {
		w.timestamps = append(w.timestamps[:0], w.timestamps[i:]...)
	}
}
