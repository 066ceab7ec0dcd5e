package auth

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/authclient/pkg/guard"
	"github.com/dmitrymomot/authclient/pkg/logger"
	"github.com/dmitrymomot/authclient/pkg/session"
)

// Navigator is the client's location. Navigate replaces the current path.
type Navigator interface {
	Current() string
	Navigate(path string)
}

// Observer turns session changes into navigation: expiry and logout go to
// the login page, a fresh login or verification goes to the role's landing
// page unless the user is already inside their area.
type Observer struct {
	store  *session.Store
	nav    Navigator
	policy guard.Policy
	hints  session.HintStore
	logger *slog.Logger
}

// ObserverOption configures an Observer.
type ObserverOption func(*Observer)

func WithPolicy(p guard.Policy) ObserverOption {
	return func(o *Observer) {
		o.policy = p
	}
}

// WithObserverHintStore clears the hint whenever the session ends.
func WithObserverHintStore(h session.HintStore) ObserverOption {
	return func(o *Observer) {
		o.hints = h
	}
}

func WithObserverLogger(l *slog.Logger) ObserverOption {
	return func(o *Observer) {
		if l != nil {
			o.logger = l
		}
	}
}

func NewObserver(store *session.Store, nav Navigator, opts ...ObserverOption) (*Observer, error) {
	if nav == nil {
		return nil, ErrNavigatorMissing
	}
	o := &Observer{
		store:  store,
		nav:    nav,
		policy: guard.DefaultPolicy(),
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.logger = o.logger.With(logger.Component("observer"))
	return o, nil
}

// Run subscribes to the store and handles changes until ctx is done. Changes
// made before Run subscribes are not seen; use Watch with a subscription taken
// beforehand when the first change matters.
func (o *Observer) Run(ctx context.Context) error {
	return o.Watch(ctx, o.store.Subscribe(ctx))
}

// Watch handles changes from an existing subscription until it closes or ctx
// is done.
func (o *Observer) Watch(ctx context.Context, changes <-chan session.Change) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case c, ok := <-changes:
			if !ok {
				return nil
			}
			o.Handle(ctx, c)
		}
	}
}

// Handle applies the side effects of a single change.
func (o *Observer) Handle(ctx context.Context, c session.Change) {
	switch c.Reason {
	case session.ReasonExpired, session.ReasonLogout:
		if o.hints != nil {
			if err := o.hints.Clear(ctx); err != nil {
				o.logger.WarnContext(ctx, "failed to clear session hint", logger.Error(err))
			}
		}
		o.navigate(ctx, o.policy.ResolvedLoginPath(), c.Reason)

	case session.ReasonLogin, session.ReasonVerified:
		user, ok := c.Current.(session.Authenticated)
		if !ok || o.policy.Within(o.nav.Current(), user.Role) {
			return
		}
		o.navigate(ctx, o.policy.LandingPath(user.Role), c.Reason)
	}
}

func (o *Observer) navigate(ctx context.Context, path string, reason session.Reason) {
	if o.nav.Current() == path {
		return
	}
	o.logger.DebugContext(ctx, "navigating", logger.Path(path), logger.Reason(reason))
	o.nav.Navigate(path)
}

// PathNavigator is an in-memory Navigator that records its history.
type PathNavigator struct {
	mu      sync.Mutex
	current string
	history []string
}

func NewPathNavigator(start string) *PathNavigator {
	if start == "" {
		start = "/"
	}
	return &PathNavigator{current: start}
}

func (n *PathNavigator) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

func (n *PathNavigator) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = path
	n.history = append(n.history, path)
}

// History lists every Navigate call in order.
func (n *PathNavigator) History() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.history...)
}
