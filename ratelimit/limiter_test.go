package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/portalempleos/backend/models"
)

// fakeCounter replays submission timestamps per client, computing the count
// the same way the durable store would: created_at strictly after `since`.
type fakeCounter struct {
	submissions map[string][]time.Time
	err         error

	lastClientID string
	lastSince    time.Time
}

func (f *fakeCounter) CountApplicationsSince(_ context.Context, clientID string, since time.Time) (int, error) {
	f.lastClientID = clientID
	f.lastSince = since
	if f.err != nil {
		return 0, f.err
	}
	n := 0
	for _, ts := range f.submissions[clientID] {
		if ts.After(since) {
			n++
		}
	}
	return n, nil
}

func TestLimiter_AllowUnderLimit(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	counter := &fakeCounter{submissions: map[string][]time.Time{
		"10.0.0.1": {now.Add(-10 * time.Minute), now.Add(-20 * time.Minute)},
	}}
	limiter := New(counter, 3, time.Hour)

	assert.NoError(t, limiter.Allow(context.Background(), "10.0.0.1", now))
}

func TestLimiter_RejectAtLimit(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	counter := &fakeCounter{submissions: map[string][]time.Time{
		"10.0.0.1": {
			now.Add(-5 * time.Minute),
			now.Add(-6 * time.Minute),
			now.Add(-8 * time.Minute),
		},
	}}
	limiter := New(counter, 3, time.Hour)

	err := limiter.Allow(context.Background(), "10.0.0.1", now)
	assert.ErrorIs(t, err, models.ErrRateLimitExceeded)
}

func TestLimiter_SlidingWindow(t *testing.T) {
	// Three submissions at T-70m, T-50m, T-30m: the oldest has slid out of
	// the trailing hour, so a fourth attempt is allowed. A fixed bucket
	// anchored at the first submission would still reject.
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	counter := &fakeCounter{submissions: map[string][]time.Time{
		"10.0.0.1": {
			now.Add(-70 * time.Minute),
			now.Add(-50 * time.Minute),
			now.Add(-30 * time.Minute),
		},
	}}
	limiter := New(counter, 3, time.Hour)

	assert.NoError(t, limiter.Allow(context.Background(), "10.0.0.1", now))
	assert.Equal(t, now.Add(-time.Hour), counter.lastSince)
}

func TestLimiter_PerClientIsolation(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	counter := &fakeCounter{submissions: map[string][]time.Time{
		"10.0.0.1": {now.Add(-1 * time.Minute), now.Add(-2 * time.Minute), now.Add(-3 * time.Minute)},
	}}
	limiter := New(counter, 3, time.Hour)

	assert.ErrorIs(t, limiter.Allow(context.Background(), "10.0.0.1", now), models.ErrRateLimitExceeded)
	assert.NoError(t, limiter.Allow(context.Background(), "10.0.0.2", now))
}

func TestLimiter_EmptyClientUsesFallback(t *testing.T) {
	now := time.Now()
	counter := &fakeCounter{submissions: map[string][]time.Time{}}
	limiter := New(counter, 3, time.Hour)

	assert.NoError(t, limiter.Allow(context.Background(), "", now))
	assert.Equal(t, FallbackClientID, counter.lastClientID)
}

func TestLimiter_FailsOpenOnCountError(t *testing.T) {
	counter := &fakeCounter{err: errors.New("store unavailable")}
	limiter := New(counter, 3, time.Hour)

	assert.NoError(t, limiter.Allow(context.Background(), "10.0.0.1", time.Now()))
}
