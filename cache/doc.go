// Package cache memoizes calculation results for parametric sweeps that
// revisit identical input rows.
//
// Results are content-addressed: the key is a SHA-256 hash over the
// calculation name, version and the input row's sorted key/value pairs, so a
// design sweep that evaluates the same stress level twice computes it once.
//
//	store := cache.NewMemoryStore()
//	cached, err := cache.New(gmax, store, cache.WithTTL(time.Hour))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, _ := cached.Execute(ctx, map[string]any{
//		"sigma_m0":   100.0,
//		"void_ratio": 0.8,
//	})
//
// Two stores are provided: MemoryStore for single-binary runs and RedisStore
// for sweeps shared between processes. Only successfully computed results are
// cached; sentinel substitutions never are, so a transient failure does not
// poison later runs. A store failure is treated as a cache miss and the
// calculation runs directly.
package cache
