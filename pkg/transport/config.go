package transport

import "time"

// Config holds transport settings loaded from the environment.
type Config struct {
	BaseURL        string        `env:"AUTHCLIENT_BASE_URL" envDefault:"http://localhost:8080/api"`
	RequestTimeout time.Duration `env:"AUTHCLIENT_REQUEST_TIMEOUT" envDefault:"30s"`
	UserAgent      string        `env:"AUTHCLIENT_USER_AGENT" envDefault:"authclient/1.0"`
	MaxBodyBytes   int64         `env:"AUTHCLIENT_MAX_BODY_BYTES" envDefault:"4194304"`
}

// DefaultConfig mirrors the envDefault tags.
func DefaultConfig() Config {
	return Config{
		BaseURL:        "http://localhost:8080/api",
		RequestTimeout: 30 * time.Second,
		UserAgent:      "authclient/1.0",
		MaxBodyBytes:   4 << 20,
	}
}
