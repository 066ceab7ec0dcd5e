package redis

import "time"

// Config describes the Redis connection backing the session hint store.
type Config struct {
	ConnectionURL  string        `env:"AUTHCLIENT_REDIS_URL" envDefault:"redis://localhost:6379/0"` // redis://:password@host:6379/db
	RetryAttempts  int           `env:"AUTHCLIENT_REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"AUTHCLIENT_REDIS_RETRY_INTERVAL" envDefault:"1s"`
	ConnectTimeout time.Duration `env:"AUTHCLIENT_REDIS_CONNECT_TIMEOUT" envDefault:"10s"`
}

func DefaultConfig() Config {
	return Config{
		ConnectionURL:  "redis://localhost:6379/0",
		RetryAttempts:  3,
		RetryInterval:  time.Second,
		ConnectTimeout: 10 * time.Second,
	}
}
