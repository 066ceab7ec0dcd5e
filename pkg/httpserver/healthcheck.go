package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/authclient/pkg/logger"
)

// Check probes one dependency.
type Check func(context.Context) error

// HealthCheckHandler answers "ALIVE" with no checks and "READY" when every
// check passes. A failing check yields 503 "NOT_READY".
func HealthCheckHandler(log *slog.Logger, checks ...Check) http.HandlerFunc {
	log = logger.OrNop(log)
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if len(checks) == 0 {
			_, _ = w.Write([]byte("ALIVE"))
			return
		}
		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				log.WarnContext(r.Context(), "readiness check failed", logger.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("NOT_READY"))
				return
			}
		}
		_, _ = w.Write([]byte("READY"))
	}
}
