package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/authclient/pkg/logger"
	"github.com/dmitrymomot/authclient/pkg/refresh"
	"github.com/dmitrymomot/authclient/pkg/sanitizer"
	"github.com/dmitrymomot/authclient/pkg/session"
	"github.com/dmitrymomot/authclient/pkg/transport"
	"github.com/dmitrymomot/authclient/pkg/validator"
)

const (
	msgLoginFailed        = "Login failed"
	msgRegistrationFailed = "Registration failed"
	msgFixFields          = "Please correct the highlighted fields"
	msgSessionExpired     = "Your session has expired, please log in again"
	msgVerifyFailed       = "Could not verify session"
)

// Manager runs the session lifecycle: login, registration, logout,
// verification and refresh. It is the only writer of the session store apart
// from the coordinator's expiry path.
type Manager struct {
	transport transport.Transport
	coord     *refresh.Coordinator
	store     *session.Store
	hints     session.HintStore
	endpoints refresh.Config
	logger    *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithHintStore enables the session hint used by Bootstrap.
func WithHintStore(h session.HintStore) Option {
	return func(m *Manager) {
		m.hints = h
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager wires a manager. Login, register, refresh and logout go straight
// to tr; verification goes through coord so an expired verify is recovered.
// Endpoint paths come from the coordinator's config.
func NewManager(tr transport.Transport, coord *refresh.Coordinator, store *session.Store, opts ...Option) *Manager {
	m := &Manager{
		transport: tr,
		coord:     coord,
		store:     store,
		endpoints: coord.Config(),
		logger:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With(logger.Component("auth"))
	return m
}

func (m *Manager) Store() *session.Store {
	return m.store
}

func (m *Manager) Session() session.Session {
	return m.store.Session()
}

func (m *Manager) Loading() bool {
	return m.store.Loading()
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a session. On failure the session is left
// as it was and the error is a *Failure.
func (m *Manager) Login(ctx context.Context, identifier, secret string) (session.Authenticated, error) {
	defer m.store.SetLoading(false)

	identifier = sanitizer.Trim(identifier)
	log := m.logger.With(slog.String("identifier", sanitizer.MaskEmail(identifier)))

	resp, err := m.transport.Do(ctx, transport.Request{
		Method:    http.MethodPost,
		Path:      m.endpoints.LoginPath,
		Body:      credentials{Email: identifier, Password: secret},
		NoRefresh: true,
	})
	if err != nil {
		log.WarnContext(ctx, "login request failed", logger.Error(err))
		return session.Authenticated{}, &Failure{Kind: KindTransport, Message: msgLoginFailed, Err: err}
	}
	if !resp.OK() {
		log.InfoContext(ctx, "login rejected", logger.Status(resp.Status))
		return session.Authenticated{}, rejection(resp, msgLoginFailed)
	}

	user, ok, err := ParseUser(resp.Body)
	if err != nil || !ok {
		return session.Authenticated{}, &Failure{Kind: KindUnexpected, Message: msgLoginFailed, Err: errors.Join(ErrMissingUser, err)}
	}

	m.establish(ctx, user, session.ReasonLogin)
	log.InfoContext(ctx, "logged in", logger.UserID(user.UserID), logger.Role(user.Role))
	return user, nil
}

// Register normalizes and validates p locally, then submits it. A successful
// response that carries a user logs that user in; one without a user returns
// Unauthenticated.
func (m *Manager) Register(ctx context.Context, p Profile) (session.Session, error) {
	defer m.store.SetLoading(false)

	p = p.Normalize()
	if err := p.Validate(); err != nil {
		return session.Unauthenticated{}, &Failure{
			Kind:    KindValidation,
			Message: msgFixFields,
			Fields:  validator.ExtractValidationErrors(err),
			Err:     err,
		}
	}

	resp, err := m.transport.Do(ctx, transport.Request{
		Method:    http.MethodPost,
		Path:      m.endpoints.RegisterPath,
		Body:      p,
		NoRefresh: true,
	})
	if err != nil {
		m.logger.WarnContext(ctx, "register request failed", logger.Error(err))
		return session.Unauthenticated{}, &Failure{Kind: KindTransport, Message: msgRegistrationFailed, Err: err}
	}
	if !resp.OK() {
		if fields := validator.FromServer(resp.Body); !fields.IsEmpty() {
			return session.Unauthenticated{}, &Failure{
				Kind:    KindValidation,
				Message: fields[0].Message,
				Fields:  fields,
				Err:     resp.Err(),
			}
		}
		return session.Unauthenticated{}, rejection(resp, msgRegistrationFailed)
	}

	user, ok, err := ParseUser(resp.Body)
	if err != nil {
		return session.Unauthenticated{}, &Failure{Kind: KindUnexpected, Message: msgRegistrationFailed, Err: err}
	}
	if !ok {
		m.logger.InfoContext(ctx, "registered, login required")
		return session.Unauthenticated{}, nil
	}

	m.establish(ctx, user, session.ReasonLogin)
	m.logger.InfoContext(ctx, "registered and logged in", logger.UserID(user.UserID), logger.Role(user.Role))
	return user, nil
}

// Logout tells the server to end the session, then clears local state no
// matter what the server said. Calling it again is harmless.
func (m *Manager) Logout(ctx context.Context) {
	resp, err := m.transport.Do(ctx, transport.Request{
		Method:    http.MethodPost,
		Path:      m.endpoints.LogoutPath,
		NoRefresh: true,
	})
	if err == nil {
		err = resp.Err()
	}
	if err != nil {
		m.logger.WarnContext(ctx, "logout request failed", logger.Error(err))
	}

	if m.store.Clear(session.ReasonLogout) {
		m.logger.InfoContext(ctx, "logged out")
	}
	m.clearHint(ctx)
}

// VerifySession asks the server who we are and stores the answer. The
// loading flag is cleared however it ends.
func (m *Manager) VerifySession(ctx context.Context) (session.Session, error) {
	defer m.store.SetLoading(false)

	resp, err := m.coord.Call(ctx, transport.Request{Method: http.MethodGet, Path: m.endpoints.VerifyPath})
	if err != nil {
		m.clearHint(ctx)
		if errors.Is(err, refresh.ErrSessionExpired) {
			m.store.Expire()
			return session.Unauthenticated{}, &Failure{Kind: KindSessionExpired, Message: msgSessionExpired, Err: err}
		}
		m.store.Clear(session.ReasonVerifyFailed)
		return session.Unauthenticated{}, &Failure{Kind: KindTransport, Message: msgVerifyFailed, Err: err}
	}

	if resp.OK() {
		user, ok, perr := ParseUser(resp.Body)
		if perr == nil && ok {
			m.establish(ctx, user, session.ReasonVerified)
			return user, nil
		}
		err = errors.Join(ErrMissingUser, perr)
	} else {
		err = resp.Err()
	}

	m.logger.DebugContext(ctx, "no active session", logger.Error(err))
	m.store.Clear(session.ReasonVerifyFailed)
	m.clearHint(ctx)
	if resp.OK() || resp.Status == http.StatusUnauthorized || resp.Status == http.StatusForbidden {
		return session.Unauthenticated{}, nil
	}
	return session.Unauthenticated{}, &Failure{Kind: KindUnexpected, Message: msgVerifyFailed, Err: err}
}

// Refresh renews the session explicitly and re-verifies it. Any failure logs
// out and returns Unauthenticated with a KindSessionExpired failure.
func (m *Manager) Refresh(ctx context.Context) (session.Session, error) {
	resp, err := m.transport.Do(ctx, transport.Request{
		Method:    http.MethodPost,
		Path:      m.endpoints.RefreshPath,
		NoRefresh: true,
	})
	if err == nil {
		err = resp.Err()
	}
	if err == nil {
		var s session.Session
		if s, err = m.VerifySession(ctx); err == nil && s.IsAuthenticated() {
			return s, nil
		}
		if err == nil {
			err = ErrMissingUser
		}
	}

	m.logger.WarnContext(ctx, "session refresh failed", logger.Error(err))
	m.Logout(ctx)
	return session.Unauthenticated{}, &Failure{Kind: KindSessionExpired, Message: msgSessionExpired, Err: err}
}

// Bootstrap runs once at startup. With a hint store configured and no hint
// present it skips verification; otherwise it verifies. An expired or absent
// session is not an error here.
func (m *Manager) Bootstrap(ctx context.Context) (session.Session, error) {
	if m.hints != nil {
		present, err := m.hints.Present(ctx)
		if err != nil {
			m.logger.WarnContext(ctx, "session hint unavailable", logger.Error(err))
		} else if !present {
			m.store.SetLoading(false)
			m.logger.DebugContext(ctx, "no session hint, skipping verification")
			return session.Unauthenticated{}, nil
		}
	}

	s, err := m.VerifySession(ctx)
	if IsKind(err, KindSessionExpired) {
		return s, nil
	}
	return s, err
}

func (m *Manager) establish(ctx context.Context, user session.Authenticated, reason session.Reason) {
	m.store.Set(user, reason)
	if m.hints == nil {
		return
	}
	if err := m.hints.Mark(ctx); err != nil {
		m.logger.WarnContext(ctx, "failed to store session hint", logger.Error(err))
	}
}

func (m *Manager) clearHint(ctx context.Context) {
	if m.hints == nil {
		return
	}
	if err := m.hints.Clear(ctx); err != nil {
		m.logger.WarnContext(ctx, "failed to clear session hint", logger.Error(err))
	}
}

func rejection(resp transport.Response, fallback string) *Failure {
	msg := transport.ErrorMessage(resp.Body)
	if msg == "" {
		msg = fallback
	}
	kind := KindRejected
	if resp.Status >= http.StatusInternalServerError {
		kind = KindUnexpected
	}
	return &Failure{Kind: kind, Message: msg, Err: resp.Err()}
}
