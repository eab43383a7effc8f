// Package ratelimiter implements a token bucket limiter used to cap how many
// tracking requests a single client can send.
//
// A Bucket enforces one Config across many keys. Bucket state lives in a
// Store; MemoryStore keeps it in process and evicts idle buckets in the
// background.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	bucket, err := ratelimiter.NewBucket(store, ratelimiter.DefaultConfig())
//	if err != nil {
//		return err
//	}
//
//	res, err := bucket.Allow(ctx, clientIP)
//	if err == nil && !res.Allowed() {
//		// reject, retry after res.RetryAfter()
//	}
package ratelimiter
