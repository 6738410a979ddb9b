package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/cashcast/backend/internal/domain/forecast"
)

// ForecastCache memoizes a full horizon result for a short wall-clock
// window. Entries are keyed by horizon length and shared across all callers;
// concurrent callers inside the TTL window observe the same cached days.
type ForecastCache interface {
	// Get returns the cached forecast for a horizon, with found=false on a
	// miss or expired entry
	Get(ctx context.Context, horizonDays int) (days []forecast.DailyForecast, found bool, err error)

	// Set stores a forecast under its horizon key with the given TTL
	Set(ctx context.Context, horizonDays int, days []forecast.DailyForecast, ttl time.Duration) error
}

// forecastKey builds the cache key for a horizon length
func forecastKey(prefix string, horizonDays int) string {
	return fmt.Sprintf("%shorizon:%d", prefix, horizonDays)
}
