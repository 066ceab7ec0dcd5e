package transport

import (
	"log/slog"
	"net/http"
	"time"
)

// Option configures an HTTPTransport.
type Option func(*HTTPTransport)

// WithHTTPClient replaces the underlying client. Its Jar is kept when set,
// otherwise the transport's own jar is installed on it.
func WithHTTPClient(client *http.Client) Option {
	return func(t *HTTPTransport) {
		if client != nil {
			t.client = client
		}
	}
}

// WithCookieJar shares a jar across transports, for example when a second
// transport must see the same session cookie.
func WithCookieJar(jar http.CookieJar) Option {
	return func(t *HTTPTransport) {
		if jar != nil {
			t.jar = jar
		}
	}
}

func WithCircuitBreaker(cb *CircuitBreaker) Option {
	return func(t *HTTPTransport) {
		t.breaker = cb
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(t *HTTPTransport) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithHeader adds a header sent with every call. Per-request headers win.
func WithHeader(key, value string) Option {
	return func(t *HTTPTransport) {
		t.headers.Set(key, value)
	}
}

// WithTimeout overrides Config.RequestTimeout.
func WithTimeout(d time.Duration) Option {
	return func(t *HTTPTransport) {
		if d > 0 {
			t.timeout = d
		}
	}
}

// WithOnExchange registers a hook called after every call.
func WithOnExchange(hook ExchangeHook) Option {
	return func(t *HTTPTransport) {
		if hook != nil {
			t.hooks = append(t.hooks, hook)
		}
	}
}
