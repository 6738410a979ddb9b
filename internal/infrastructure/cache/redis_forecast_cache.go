package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cashcast/backend/internal/domain/forecast"
	"github.com/redis/go-redis/v9"
)

// RedisForecastCache implements ForecastCache using Redis. This is suitable
// for distributed deployments where multiple instances should share one
// memoized horizon result.
type RedisForecastCache struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisForecastCache creates a new Redis-backed forecast cache
func NewRedisForecastCache(cfg RedisConfig) (*RedisForecastCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisForecastCache{
		client:    client,
		keyPrefix: "forecast:",
	}, nil
}

// NewRedisForecastCacheWithClient creates a cache with an existing Redis client
// This is useful for testing or when sharing a client across components
func NewRedisForecastCacheWithClient(client *redis.Client, keyPrefix string) *RedisForecastCache {
	if keyPrefix == "" {
		keyPrefix = "forecast:"
	}
	return &RedisForecastCache{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Get returns the cached forecast for a horizon, if present and unexpired
// Ping reports whether the Redis backend is reachable.
func (c *RedisForecastCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisForecastCache) Get(ctx context.Context, horizonDays int) ([]forecast.DailyForecast, bool, error) {
	data, err := c.client.Get(ctx, forecastKey(c.keyPrefix, horizonDays)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read forecast cache: %w", err)
	}

	days, err := decodeForecast(data)
	if err != nil {
		// A corrupt entry behaves like a miss; the caller recomputes and
		// overwrites it.
		return nil, false, nil
	}
	return days, true, nil
}

// Set stores a forecast under its horizon key; Redis expires it after the TTL
func (c *RedisForecastCache) Set(ctx context.Context, horizonDays int, days []forecast.DailyForecast, ttl time.Duration) error {
	data, err := encodeForecast(days)
	if err != nil {
		return fmt.Errorf("failed to encode forecast for cache: %w", err)
	}
	if err := c.client.Set(ctx, forecastKey(c.keyPrefix, horizonDays), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write forecast cache: %w", err)
	}
	return nil
}
