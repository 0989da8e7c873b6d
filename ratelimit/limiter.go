// Package ratelimit enforces a per-client sliding window over application
// submissions. The count is derived from persisted Application rows, so the
// ceiling holds across concurrent handler instances without in-process state.
package ratelimit

import (
	"context"
	"log"
	"time"

	"github.com/portalempleos/backend/models"
)

// FallbackClientID is used when the client identifier cannot be determined.
// All unidentifiable clients share one window; a degraded ceiling beats none.
const FallbackClientID = "0.0.0.0"

// Counter counts prior applications from a client identifier since a
// given time. Implemented by the Firestore client.
type Counter interface {
	CountApplicationsSince(ctx context.Context, clientID string, since time.Time) (int, error)
}

// Limiter is a sliding-window rate limiter over the durable store.
type Limiter struct {
	counter Counter
	max     int
	window  time.Duration
}

// New creates a limiter allowing max submissions per window.
func New(counter Counter, max int, window time.Duration) *Limiter {
	return &Limiter{
		counter: counter,
		max:     max,
		window:  window,
	}
}

// Allow checks whether the client may submit another application at now.
// Returns models.ErrRateLimitExceeded when the window is full. A failing
// count query is non-fatal: the limiter logs and fails open, since
// availability outranks strict enforcement for an anti-abuse control.
func (l *Limiter) Allow(ctx context.Context, clientID string, now time.Time) error {
	if clientID == "" {
		clientID = FallbackClientID
	}

	count, err := l.counter.CountApplicationsSince(ctx, clientID, now.Add(-l.window))
	if err != nil {
		log.Printf("[RateLimit] count query failed for %s, failing open: %v", clientID, err)
		return nil
	}

	if count >= l.max {
		log.Printf("[RateLimit] client %s exceeded limit (%d submissions in window)", clientID, count)
		return models.ErrRateLimitExceeded
	}
	return nil
}
