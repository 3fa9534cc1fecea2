package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gravel-geo/gravel/calc"
	"github.com/gravel-geo/gravel/calcerr"
	"github.com/gravel-geo/gravel/schema"
)

// Store persists calculation results keyed by a content hash of the input.
type Store interface {
	// Get retrieves a cached result map. The second return value reports
	// whether the key was present.
	Get(ctx context.Context, key string) (map[string]any, bool, error)

	// Set stores a result map under the key. A zero TTL stores without
	// expiry; stores that do not support expiry may ignore it.
	Set(ctx context.Context, key string, results map[string]any, ttl time.Duration) error

	// Close releases any resources held by the store.
	Close() error
}

// MemoryStore is an in-process Store for single-binary sweeps.
// It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	results   map[string]any
	expiresAt time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

// Get retrieves a cached result map, honoring per-entry expiry.
func (s *MemoryStore) Get(_ context.Context, key string) (map[string]any, bool, error) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, false, nil
	}

	return cloneResults(entry.results), true, nil
}

// Set stores a result map under the key.
func (s *MemoryStore) Set(_ context.Context, key string, results map[string]any, ttl time.Duration) error {
	entry := memoryEntry{results: cloneResults(results)}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}

	s.mu.Lock()
	s.entries[key] = entry
	s.mu.Unlock()
	return nil
}

// Close clears the store.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	s.entries = make(map[string]memoryEntry)
	s.mu.Unlock()
	return nil
}

// Cached wraps a Calculation with result memoization for parametric sweeps
// that revisit identical input rows.
//
// Executions run strictly against the wrapped calculation; only successfully
// computed results are cached, never sentinel substitutions. The wrapper
// applies its own failure policy, matching the framework default: fail-silent
// unless constructed with FailFast.
type Cached struct {
	calculation *calc.Calculation
	store       Store
	ttl         time.Duration
	failFast    bool
	logger      *slog.Logger
}

// Option configures a Cached wrapper.
type Option func(*Cached)

// WithTTL sets the expiry applied to cached results. The default is no expiry.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cached) {
		c.ttl = ttl
	}
}

// FailFast propagates validation and execution errors to the caller instead
// of collapsing them to the sentinel result map.
func FailFast() Option {
	return func(c *Cached) {
		c.failFast = true
	}
}

// WithLogger sets the logger used for fail-silent warnings.
// If not provided, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cached) {
		c.logger = logger
	}
}

// New wraps the calculation with the given store.
func New(calculation *calc.Calculation, store Store, opts ...Option) (*Cached, error) {
	const op = "cache.New"

	if calculation == nil {
		return nil, calcerr.NewConfigurationError(op, fmt.Errorf("calculation cannot be nil"))
	}
	if store == nil {
		return nil, calcerr.NewConfigurationError(op, fmt.Errorf("store cannot be nil"))
	}

	c := &Cached{calculation: calculation, store: store}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	return c, nil
}

// Execute returns the cached result for the input row when present, and runs
// the calculation otherwise. A store failure is treated as a miss: the
// calculation still runs, so a degraded cache never degrades correctness.
func (c *Cached) Execute(ctx context.Context, input map[string]any) (map[string]any, error) {
	key := Key(c.calculation.Name(), c.calculation.Version(), input)

	cached, hit, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warn("cache lookup failed, executing directly",
			"calculation", c.calculation.Name(),
			"error", err)
	} else if hit {
		return cached, nil
	}

	results, err := c.calculation.Execute(ctx, input, calc.FailFast())
	if err != nil {
		return c.fail(err)
	}

	if err := c.store.Set(ctx, key, results, c.ttl); err != nil {
		c.logger.Warn("cache store failed, result not cached",
			"calculation", c.calculation.Name(),
			"error", err)
	}

	return results, nil
}

func (c *Cached) fail(err error) (map[string]any, error) {
	if c.failFast {
		return nil, err
	}

	c.logger.Warn("calculation failed, returning sentinel results",
		"calculation", c.calculation.Name(),
		"error", err)
	return map[string]any(c.calculation.Sentinel()), nil
}

// Key derives the content-addressed cache key for one input row: a SHA-256
// hash over the calculation name, version and the row's key/value pairs in
// sorted key order, so equal rows hash equally regardless of map iteration
// order. Every key and rendered value is length-prefixed and values carry
// their dynamic type, so the serialization is unambiguous: data containing
// delimiter characters cannot collide with a differently shaped row.
func Key(name, version string, input map[string]any) string {
	keys := make([]string, 0, len(input))
	for k := range input {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "%s@%s", name, version)
	for _, k := range keys {
		v := fmt.Sprintf("%T:%v", input[k], input[k])
		fmt.Fprintf(&b, "|%d:%s=%d:%s", len(k), k, len(v), v)
	}

	sum := sha256.Sum256([]byte(b.String()))
	return "gravel:calc:" + hex.EncodeToString(sum[:])
}

func cloneResults(results map[string]any) map[string]any {
	return map[string]any(schema.Results(results).Clone())
}
