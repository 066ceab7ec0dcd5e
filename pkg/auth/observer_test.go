package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authclient/pkg/auth"
	"github.com/dmitrymomot/authclient/pkg/guard"
	"github.com/dmitrymomot/authclient/pkg/session"
)

func TestNewObserver_RequiresNavigator(t *testing.T) {
	t.Parallel()

	_, err := auth.NewObserver(session.NewStore(), nil)
	require.ErrorIs(t, err, auth.ErrNavigatorMissing)
}

func TestObserver_Handle(t *testing.T) {
	t.Parallel()

	admin := session.Authenticated{UserID: "1", Role: session.RoleAdmin}
	user := session.Authenticated{UserID: "2", Role: session.RoleUser}

	tests := []struct {
		name    string
		start   string
		change  session.Change
		history []string
	}{
		{
			name:    "expiry goes to login",
			start:   "/admin/reports",
			change:  session.Change{Prev: admin, Current: session.Unauthenticated{}, Reason: session.ReasonExpired},
			history: []string{"/login"},
		},
		{
			name:    "logout on login page stays put",
			start:   "/login",
			change:  session.Change{Prev: user, Current: session.Unauthenticated{}, Reason: session.ReasonLogout},
			history: nil,
		},
		{
			name:    "login goes to landing page",
			start:   "/login",
			change:  session.Change{Prev: session.Unauthenticated{}, Current: admin, Reason: session.ReasonLogin},
			history: []string{"/admin/dashboard"},
		},
		{
			name:    "verify inside own area stays put",
			start:   "/admin/reports",
			change:  session.Change{Prev: session.Unauthenticated{}, Current: admin, Reason: session.ReasonVerified},
			history: nil,
		},
		{
			name:    "verify outside own area goes to landing page",
			start:   "/admin/reports",
			change:  session.Change{Prev: session.Unauthenticated{}, Current: user, Reason: session.ReasonVerified},
			history: []string{"/user/dashboard"},
		},
		{
			name:    "failed verify is ignored",
			start:   "/",
			change:  session.Change{Prev: admin, Current: session.Unauthenticated{}, Reason: session.ReasonVerifyFailed},
			history: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			nav := auth.NewPathNavigator(tt.start)
			obs, err := auth.NewObserver(session.NewStore(), nav)
			require.NoError(t, err)

			obs.Handle(t.Context(), tt.change)
			assert.Equal(t, tt.history, nav.History())
		})
	}
}

func TestObserver_CustomPolicy(t *testing.T) {
	t.Parallel()

	nav := auth.NewPathNavigator("/somewhere")
	policy := guard.Policy{
		LoginPath: "/signin",
		Landing:   map[session.Role]string{session.RoleUser: "/home"},
	}
	obs, err := auth.NewObserver(session.NewStore(), nav, auth.WithPolicy(policy))
	require.NoError(t, err)

	obs.Handle(t.Context(), session.Change{Current: session.Authenticated{UserID: "5", Role: session.RoleStaff}, Reason: session.ReasonLogin})
	assert.Equal(t, "/home", nav.Current())

	obs.Handle(t.Context(), session.Change{Current: session.Unauthenticated{}, Reason: session.ReasonExpired})
	assert.Equal(t, "/signin", nav.Current())
}

func TestObserver_ClearsHintOnExpiry(t *testing.T) {
	t.Parallel()

	hints := session.NewMemoryHintStore(0)
	require.NoError(t, hints.Mark(t.Context()))

	obs, err := auth.NewObserver(session.NewStore(), auth.NewPathNavigator("/"), auth.WithObserverHintStore(hints))
	require.NoError(t, err)

	obs.Handle(t.Context(), session.Change{Current: session.Unauthenticated{}, Reason: session.ReasonExpired})

	present, err := hints.Present(t.Context())
	require.NoError(t, err)
	assert.False(t, present)
}

func TestObserver_Run(t *testing.T) {
	t.Parallel()

	store := session.NewStore()
	nav := auth.NewPathNavigator("/login")
	obs, err := auth.NewObserver(store, nav)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- obs.Run(ctx) }()

	// Run subscribes asynchronously; keep setting until the change lands.
	staff := session.Authenticated{UserID: "3", Role: session.RoleStaff}
	require.Eventually(t, func() bool {
		store.Clear(session.ReasonLogout)
		store.Set(staff, session.ReasonLogin)
		return nav.Current() == "/staff/dashboard"
	}, time.Second, 10*time.Millisecond)

	store.Expire()
	require.Eventually(t, func() bool { return nav.Current() == "/login" }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestPathNavigator(t *testing.T) {
	t.Parallel()

	nav := auth.NewPathNavigator("")
	assert.Equal(t, "/", nav.Current())
	assert.Empty(t, nav.History())

	nav.Navigate("/a")
	nav.Navigate("/b")
	assert.Equal(t, "/b", nav.Current())

	h := nav.History()
	h[0] = "/mutated"
	assert.Equal(t, []string{"/a", "/b"}, nav.History())
}

func TestObserver_WatchSeesChangeBeforeStart(t *testing.T) {
	t.Parallel()

	store := session.NewStore()
	nav := auth.NewPathNavigator("/")
	obs, err := auth.NewObserver(store, nav)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	changes := store.Subscribe(ctx)
	store.Set(session.Authenticated{UserID: "1", Role: session.RoleAdmin}, session.ReasonVerified)

	done := make(chan error, 1)
	go func() { done <- obs.Watch(ctx, changes) }()

	require.Eventually(t, func() bool { return nav.Current() == "/admin/dashboard" }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}
