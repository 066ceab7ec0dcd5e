package httpserver

import "time"

// Config is the listener configuration for the local shell server.
type Config struct {
	Addr              string        `env:"AUTHCLIENT_SERVE_ADDR" envDefault:"127.0.0.1:8090"`
	ReadHeaderTimeout time.Duration `env:"AUTHCLIENT_SERVE_READ_HEADER_TIMEOUT" envDefault:"5s"`
	ReadTimeout       time.Duration `env:"AUTHCLIENT_SERVE_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout      time.Duration `env:"AUTHCLIENT_SERVE_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout       time.Duration `env:"AUTHCLIENT_SERVE_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout   time.Duration `env:"AUTHCLIENT_SERVE_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// NewFromConfig applies the non-zero fields of cfg, then opts.
func NewFromConfig(cfg Config, opts ...Option) *Server {
	base := []Option{
		WithAddr(cfg.Addr),
		WithReadHeaderTimeout(cfg.ReadHeaderTimeout),
		WithReadTimeout(cfg.ReadTimeout),
		WithWriteTimeout(cfg.WriteTimeout),
		WithIdleTimeout(cfg.IdleTimeout),
		WithShutdownTimeout(cfg.ShutdownTimeout),
	}
	return New(append(base, opts...)...)
}
