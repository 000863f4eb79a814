// Package redis connects to the Redis server holding server-side sessions.
//
//	client, err := redis.Connect(ctx, cfg)
//	if errors.Is(err, redis.ErrEmptyConnectionURL) {
//	    // sessions disabled
//	}
//
// Healthcheck returns a check suitable for readiness endpoints.
package redis
