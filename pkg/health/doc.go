// Package health serves liveness and readiness checks.
//
// Live always answers 200. Ready runs every named check concurrently under a shared
// timeout and answers 503 when any of them fails:
//
//	r.Get("/health/live", health.Live())
//	r.Get("/health/ready", health.Ready(health.Checks{
//	    "postgres": db.Healthcheck(pool),
//	    "redis":    redis.Healthcheck(client),
//	}, health.WithLogger(log)))
package health
