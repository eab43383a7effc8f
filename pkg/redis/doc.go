// Package redis stores beacon identity and session counters in Redis.
//
// Connect pings the server with retries until it answers and Store adapts
// the client to kvstore.Store. Store.Ping doubles as the readiness check:
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	store := redis.NewStore(client, cfg)
//	t := tracker.New(store, tracker.WithDispatcher(d))
//
// Configuration is read from REDIS_* environment variables through
// github.com/caarlos0/env.
package redis
