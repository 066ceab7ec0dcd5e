package guard

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/dmitrymomot/authclient/pkg/logger"
	"github.com/dmitrymomot/authclient/pkg/session"
)

// SnapshotSource supplies the session state a request is judged against.
// *session.Store implements it.
type SnapshotSource interface {
	Snapshot() session.Snapshot
}

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middleware)

type middleware struct {
	roles      []session.Role
	retryAfter string
	logger     *slog.Logger
}

// RequireRoles fixes the roles for every route behind the middleware instead
// of looking them up in the policy's area table.
func RequireRoles(roles ...session.Role) MiddlewareOption {
	return func(m *middleware) {
		m.roles = roles
	}
}

func WithMiddlewareLogger(l *slog.Logger) MiddlewareOption {
	return func(m *middleware) {
		if l != nil {
			m.logger = l
		}
	}
}

// Middleware enforces policy on every request. Redirects use 303; a login
// redirect carries the requested path in the "from" query parameter. While
// the session is loading it answers 503 with Retry-After.
func Middleware(policy Policy, source SnapshotSource, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	m := &middleware{retryAfter: "1", logger: logger.Nop()}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With(logger.Component("guard"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			required := m.roles
			if required == nil {
				required = policy.Areas.Required(r.URL.Path)
			}

			snap := source.Snapshot()
			d := policy.Decide(Input{
				Loading:  snap.Loading,
				Session:  snap.Session,
				Required: required,
				Path:     r.URL.RequestURI(),
			})

			m.logger.DebugContext(r.Context(), "route decision",
				logger.Path(r.URL.Path), logger.Decision(d.Action.String()))

			switch d.Action {
			case ActionRender:
				next.ServeHTTP(w, r)
			case ActionLoading:
				w.Header().Set("Retry-After", m.retryAfter)
				http.Error(w, "session loading", http.StatusServiceUnavailable)
			case ActionRedirect:
				http.Redirect(w, r, RedirectURL(d), http.StatusSeeOther)
			}
		})
	}
}

// RedirectURL renders a redirect decision as a URL, adding "from" when set.
func RedirectURL(d Decision) string {
	if d.From == "" {
		return d.Path
	}
	u, err := url.Parse(d.Path)
	if err != nil {
		return d.Path
	}
	q := u.Query()
	q.Set("from", d.From)
	u.RawQuery = q.Encode()
	return u.String()
}
