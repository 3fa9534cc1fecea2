package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"
)

// RedisOptions configures the Redis connection.
type RedisOptions struct {
	// URL is the Redis connection string (e.g., "redis://localhost:6379").
	URL string

	// ConnectTimeout is the maximum time to wait for connection establishment.
	ConnectTimeout time.Duration

	// ReadTimeout is the maximum time to wait for read operations.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait for write operations.
	WriteTimeout time.Duration
}

// RedisStore implements Store on Redis, for sweeps shared between processes
// or resumed across runs.
//
// Result maps are stored YAML-encoded: the domain uses NaN sentinel values,
// which YAML round-trips and JSON does not.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed store with the given options and
// verifies the connection.
func NewRedisStore(opts RedisOptions) (*RedisStore, error) {
	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}

	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}

	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 30 * time.Second
	}

	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 5 * time.Second
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	redisOpts.DialTimeout = opts.ConnectTimeout
	redisOpts.ReadTimeout = opts.ReadTimeout
	redisOpts.WriteTimeout = opts.WriteTimeout

	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

// Get retrieves a cached result map.
func (s *RedisStore) Get(ctx context.Context, key string) (map[string]any, bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get key %s: %w", key, err)
	}

	var results map[string]any
	if err := yaml.Unmarshal(data, &results); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached results: %w", err)
	}

	return results, true, nil
}

// Set stores a result map under the key with the given TTL.
func (s *RedisStore) Set(ctx context.Context, key string, results map[string]any, ttl time.Duration) error {
	data, err := yaml.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}

	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}

	return nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
