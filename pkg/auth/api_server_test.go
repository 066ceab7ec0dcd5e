package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authclient/pkg/auth"
	"github.com/dmitrymomot/authclient/pkg/refresh"
	"github.com/dmitrymomot/authclient/pkg/session"
	"github.com/dmitrymomot/authclient/pkg/transport"
)

// fakeAPI is a minimal cookie-session backend.
type fakeAPI struct {
	*httptest.Server

	mu            sync.Mutex
	sessions      map[string]map[string]any
	accessExpired bool
	refreshDenied bool
	logoutFails   bool
	calls         map[string]int
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()

	api := &fakeAPI{sessions: make(map[string]map[string]any), calls: make(map[string]int)}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", api.login)
	mux.HandleFunc("POST /api/auth/register", api.register)
	mux.HandleFunc("GET /api/auth/verify", api.verify)
	mux.HandleFunc("POST /api/auth/refresh", api.refresh)
	mux.HandleFunc("POST /api/auth/logout", api.logout)

	api.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.mu.Lock()
		api.calls[r.URL.Path]++
		api.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(api.Close)
	return api
}

func (a *fakeAPI) callsTo(endpoint string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls["/api"+endpoint]
}

func (a *fakeAPI) set(fn func(a *fakeAPI)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fn(a)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *fakeAPI) startSession(w http.ResponseWriter, sid string, user map[string]any) {
	a.mu.Lock()
	a.sessions[sid] = user
	a.accessExpired = false
	a.mu.Unlock()
	http.SetCookie(w, &http.Cookie{Name: "sid", Value: sid, Path: "/"})
}

func (a *fakeAPI) currentUser(r *http.Request) (map[string]any, bool) {
	c, err := r.Cookie("sid")
	if err != nil {
		return nil, false
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	u, ok := a.sessions[c.Value]
	return u, ok
}

func (a *fakeAPI) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	switch {
	case body.Email == "admin@example.com" && body.Password == "Secret1":
		user := map[string]any{"id": 1, "role": "admin", "name": "Ada"}
		a.startSession(w, "s-admin", user)
		writeJSON(w, http.StatusOK, user)
	case body.Email == "silent@example.com":
		w.WriteHeader(http.StatusUnauthorized)
	default:
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
	}
}

func (a *fakeAPI) register(w http.ResponseWriter, r *http.Request) {
	var p auth.Profile
	_ = json.NewDecoder(r.Body).Decode(&p)

	switch {
	case p.Email == "taken@example.com":
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"errors": map[string][]string{"email": {"Email already registered"}},
		})
	case p.Email == "dup@example.com":
		writeJSON(w, http.StatusConflict, map[string]any{
			"timestamp": "2024-05-01T10:00:00.000+00:00",
			"status":    http.StatusConflict,
			"error":     "Email already registered",
			"path":      "/api/auth/register",
		})
	case p.Username == "closed":
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "Registration closed"})
	case p.Username == "pending":
		writeJSON(w, http.StatusCreated, map[string]string{"message": "Check your inbox"})
	default:
		user := map[string]any{"id": "u-9", "role": "USER", "username": p.Username, "email": p.Email}
		a.startSession(w, "s-"+p.Username, user)
		writeJSON(w, http.StatusCreated, map[string]any{"user": user})
	}
}

func (a *fakeAPI) verify(w http.ResponseWriter, r *http.Request) {
	user, ok := a.currentUser(r)
	a.mu.Lock()
	expired := a.accessExpired
	a.mu.Unlock()
	if !ok || expired {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (a *fakeAPI) refresh(w http.ResponseWriter, r *http.Request) {
	_, ok := a.currentUser(r)
	a.mu.Lock()
	denied := a.refreshDenied
	if ok && !denied {
		a.accessExpired = false
	}
	a.mu.Unlock()
	if !ok || denied {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Refresh token expired"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *fakeAPI) logout(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	fails := a.logoutFails
	a.mu.Unlock()
	if fails {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if c, err := r.Cookie("sid"); err == nil {
		a.mu.Lock()
		delete(a.sessions, c.Value)
		a.mu.Unlock()
	}
	http.SetCookie(w, &http.Cookie{Name: "sid", Value: "", Path: "/", MaxAge: -1})
	w.WriteHeader(http.StatusOK)
}

type harness struct {
	api   *fakeAPI
	store *session.Store
	hints *session.MemoryHintStore
	mgr   *auth.Manager
}

func newHarness(t *testing.T, opts ...auth.Option) *harness {
	t.Helper()

	api := newFakeAPI(t)
	cfg := transport.DefaultConfig()
	cfg.BaseURL = api.URL + "/api"
	tr, err := transport.New(cfg)
	require.NoError(t, err)

	store := session.NewStore()
	hints := session.NewMemoryHintStore(0)
	coord := refresh.New(tr, refresh.WithExpirer(store))
	mgr := auth.NewManager(tr, coord, store, append([]auth.Option{auth.WithHintStore(hints)}, opts...)...)

	return &harness{api: api, store: store, hints: hints, mgr: mgr}
}

func (h *harness) hintPresent(t *testing.T) bool {
	t.Helper()
	ok, err := h.hints.Present(t.Context())
	require.NoError(t, err)
	return ok
}
