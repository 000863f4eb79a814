// Package ratelimiter implements a token bucket limiter with a process-local
// store. The telemetry endpoint uses it to shed floods from a single client
// without ever answering with an error.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       120,
//		RefillRate:     2,
//		RefillInterval: time.Second,
//	})
//	if err != nil {
//		return err
//	}
//
//	if res, err := limiter.Allow(ctx, clientIP); err == nil && !res.Allowed() {
//		// drop
//	}
package ratelimiter
