// Package redis opens go-redis clients with retrying startup and exposes a readiness check.
//
//	client, err := redis.Open(ctx, cfg.Redis)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// Both redis:// and rediss:// (TLS) URLs are accepted.
package redis
