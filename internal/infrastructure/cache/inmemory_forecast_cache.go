package cache

import (
	"context"
	"sync"
	"time"

	"github.com/cashcast/backend/internal/domain/forecast"
)

// InMemoryForecastCache implements ForecastCache with a process-local map.
// Suitable for single-instance deployments and tests. Entries are stored in
// their serialized form so the in-memory and Redis caches behave
// identically, including date round-tripping.
type InMemoryForecastCache struct {
	mu      sync.RWMutex
	entries map[string]inMemoryEntry
	now     func() time.Time
}

type inMemoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewInMemoryForecastCache creates an empty in-memory forecast cache
func NewInMemoryForecastCache() *InMemoryForecastCache {
	return &InMemoryForecastCache{
		entries: make(map[string]inMemoryEntry),
		now:     time.Now,
	}
}

// Get returns the cached forecast for a horizon, if present and unexpired
func (c *InMemoryForecastCache) Get(_ context.Context, horizonDays int) ([]forecast.DailyForecast, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[forecastKey("forecast:", horizonDays)]
	c.mu.RUnlock()

	if !ok || c.now().After(entry.expiresAt) {
		return nil, false, nil
	}

	days, err := decodeForecast(entry.data)
	if err != nil {
		return nil, false, nil
	}
	return days, true, nil
}

// Set stores a forecast under its horizon key with the given TTL
func (c *InMemoryForecastCache) Set(_ context.Context, horizonDays int, days []forecast.DailyForecast, ttl time.Duration) error {
	data, err := encodeForecast(days)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.entries[forecastKey("forecast:", horizonDays)] = inMemoryEntry{
		data:      data,
		expiresAt: c.now().Add(ttl),
	}
	c.mu.Unlock()
	return nil
}
