package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when a key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// Store is the key-value cache the analytics endpoints and the
// background warm job write through. Implementations: Redis for the
// server, Memory for tests.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
	Close() error
}

// Named analytics entries and their shared TTL.
const (
	KeyAverageInteractionDurationAll     = "average_interaction_duration_all"
	KeyPerformanceScoreAll               = "performance_score_all"
	KeyUnderperformingRestaurants        = "underperforming_restaurants"
	KeyTestAverageInteractionDurationAll = "test_average_interaction_duration_all"

	KeyAllUsers = "users_all"

	AnalyticsTTL = 300 * time.Second
)

var analyticsKeys = []string{
	KeyAverageInteractionDurationAll,
	KeyPerformanceScoreAll,
	KeyUnderperformingRestaurants,
	KeyTestAverageInteractionDurationAll,
}

// InvalidateAnalytics drops every named analytics entry. The policy is
// all-or-nothing: any write to restaurants, contacts, or interactions
// clears the full set rather than picking affected entries.
func InvalidateAnalytics(ctx context.Context, s Store) error {
	return s.Delete(ctx, analyticsKeys...)
}
