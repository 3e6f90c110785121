// Package ratelimiter implements a token bucket limiter with an in-memory
// store and an HTTP middleware.
//
// A bucket holds Capacity tokens and regains RefillRate tokens every
// RefillInterval. Each allowed request consumes one token; a negative
// remaining count means the request is denied.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	limiter, err := ratelimiter.NewBucket(store, ratelimiter.PerMinute(10))
//	if err != nil {
//		return err
//	}
//	r.With(ratelimiter.Middleware(limiter, clientip.Key)).Post("/", submit)
//
// The middleware sets X-RateLimit-Limit, X-RateLimit-Remaining,
// X-RateLimit-Reset and, on denial, Retry-After. Denied requests get a plain
// 429 unless WithLimitedHandler supplies a handler.
package ratelimiter
