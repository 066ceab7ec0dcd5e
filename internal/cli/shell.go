package cli

import (
	"encoding/json"
	"html/template"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/authclient/pkg/auth"
	"github.com/dmitrymomot/authclient/pkg/guard"
	"github.com/dmitrymomot/authclient/pkg/httpserver"
	"github.com/dmitrymomot/authclient/pkg/logger"
	"github.com/dmitrymomot/authclient/pkg/requestid"
	"github.com/dmitrymomot/authclient/pkg/session"
)

var (
	loginPage = template.Must(template.New("login").Parse(`<!doctype html>
<title>Sign in</title>
{{if .Error}}<p role="alert">{{.Error}}</p>{{end}}
<form method="post" action="{{.Action}}">
<input type="hidden" name="from" value="{{.From}}">
<label>Email <input name="identifier" type="email" required></label>
<label>Password <input name="secret" type="password" required></label>
<button type="submit">Sign in</button>
</form>
`))

	areaPage = template.Must(template.New("area").Parse(`<!doctype html>
<title>{{.Path}}</title>
<p>Signed in as {{.Name}} ({{.Role}}). You are viewing {{.Path}}.</p>
<form method="post" action="/logout"><button type="submit">Sign out</button></form>
`))
)

type shell struct {
	client *Client
	nav    auth.Navigator
}

// NewShell serves the login form, logout, a session probe and every area of
// the client's policy behind the route guard. A nil nav reports "/".
func NewShell(c *Client, nav auth.Navigator) http.Handler {
	if nav == nil {
		nav = auth.NewPathNavigator("/")
	}
	s := &shell{client: c, nav: nav}
	loginPath := c.Policy.ResolvedLoginPath()

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestid.Middleware)

	r.Get("/healthz", httpserver.HealthCheckHandler(c.Logger, c.checks...))
	r.Handle("/metrics", c.Metrics.Handler())
	r.Get("/session", s.session)
	r.Get(loginPath, s.loginForm)
	r.Post(loginPath, s.login)
	r.Post("/logout", s.logout)

	r.Group(func(r chi.Router) {
		r.Use(guard.Middleware(c.Policy, c.Store, guard.WithMiddlewareLogger(c.Logger)))
		for _, area := range c.Policy.Areas {
			r.Get(area.Prefix, s.area)
			r.Get(area.Prefix+"/*", s.area)
		}
	})
	return r
}

func (s *shell) loginForm(w http.ResponseWriter, r *http.Request) {
	s.renderLogin(w, http.StatusOK, r.URL.Query().Get("from"), "")
}

func (s *shell) renderLogin(w http.ResponseWriter, status int, from, msg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = loginPage.Execute(w, map[string]string{
		"Action": s.client.Policy.ResolvedLoginPath(),
		"From":   from,
		"Error":  msg,
	})
}

func (s *shell) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	from := r.PostForm.Get("from")

	user, err := s.client.Manager.Login(r.Context(), r.PostForm.Get("identifier"), r.PostForm.Get("secret"))
	if err != nil {
		status := http.StatusUnauthorized
		msg := "Login failed"
		if f, ok := auth.AsFailure(err); ok {
			msg = f.Message
			if f.Kind != auth.KindRejected {
				status = http.StatusBadGateway
			}
		}
		s.renderLogin(w, status, from, msg)
		return
	}

	http.Redirect(w, r, s.afterLogin(user, from), http.StatusSeeOther)
}

// afterLogin returns from when the user may enter it, else their landing page.
func (s *shell) afterLogin(user session.Authenticated, from string) string {
	if u, err := url.Parse(from); err == nil && u.Host == "" && s.client.Policy.Within(u.Path, user.Role) {
		return u.RequestURI()
	}
	return s.client.Policy.LandingPath(user.Role)
}

func (s *shell) logout(w http.ResponseWriter, r *http.Request) {
	s.client.Manager.Logout(r.Context())
	http.Redirect(w, r, s.client.Policy.ResolvedLoginPath(), http.StatusSeeOther)
}

func (s *shell) area(w http.ResponseWriter, r *http.Request) {
	user, ok := s.client.Store.Session().(session.Authenticated)
	if !ok {
		// a logout raced the guard
		http.Redirect(w, r, s.client.Policy.ResolvedLoginPath(), http.StatusSeeOther)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := areaPage.Execute(w, map[string]string{
		"Name": user.DisplayName,
		"Role": user.Role.String(),
		"Path": r.URL.Path,
	}); err != nil {
		s.client.Logger.ErrorContext(r.Context(), "render area page", logger.Error(err))
	}
}

type sessionView struct {
	Authenticated bool   `json:"authenticated"`
	Loading       bool   `json:"loading"`
	UserID        string `json:"userId,omitempty"`
	Role          string `json:"role,omitempty"`
	DisplayName   string `json:"displayName,omitempty"`
	Location      string `json:"location"`
}

func (s *shell) session(w http.ResponseWriter, _ *http.Request) {
	snap := s.client.Store.Snapshot()
	view := sessionView{Loading: snap.Loading, Location: s.nav.Current()}
	if user, ok := snap.Session.(session.Authenticated); ok {
		view.Authenticated = true
		view.UserID = user.UserID
		view.Role = user.Role.String()
		view.DisplayName = user.DisplayName
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(view)
}
