// Package redis connects to the Redis server used by the shared session hint
// backend.
//
// Connect retries the initial ping according to Config, whose fields are
// read from AUTHCLIENT_REDIS_* environment variables:
//
//	cfg := redis.DefaultConfig()
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	hints := session.NewRedisHintStore(client, "authclient:session-hint", 7*24*time.Hour)
//
// Healthcheck returns a probe suitable for readiness endpoints.
package redis
