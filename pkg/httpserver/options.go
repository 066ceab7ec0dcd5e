package httpserver

import (
	"log/slog"
	"time"
)

// Option configures a Server. Zero values leave the default in place.
type Option func(*config)

func WithAddr(addr string) Option {
	return func(c *config) {
		if addr != "" {
			c.addr = addr
		}
	}
}

func WithReadHeaderTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.readHeaderTimeout = d
		}
	}
}

func WithReadTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.readTimeout = d
		}
	}
}

func WithWriteTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.writeTimeout = d
		}
	}
}

func WithIdleTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.idleTimeout = d
		}
	}
}

// WithShutdownTimeout bounds the graceful drain once the run context ends.
func WithShutdownTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.shutdownTimeout = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithStartHook runs h with the bound address once the listener is open.
func WithStartHook(h func(addr string)) Option {
	return func(c *config) {
		if h != nil {
			c.startHooks = append(c.startHooks, h)
		}
	}
}

// WithStopHook runs h after the server has shut down.
func WithStopHook(h func()) Option {
	return func(c *config) {
		if h != nil {
			c.stopHooks = append(c.stopHooks, h)
		}
	}
}
