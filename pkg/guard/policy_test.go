package guard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/authclient/pkg/guard"
	"github.com/dmitrymomot/authclient/pkg/session"
)

var (
	admin = session.Authenticated{UserID: "1", Role: session.RoleAdmin, DisplayName: "Ada"}
	staff = session.Authenticated{UserID: "2", Role: session.RoleStaff, DisplayName: "Sam"}
	user  = session.Authenticated{UserID: "3", Role: session.RoleUser, DisplayName: "Uma"}
)

func TestPolicy_Decide(t *testing.T) {
	t.Parallel()

	p := guard.DefaultPolicy()
	adminOnly := []session.Role{session.RoleAdmin}
	staffOnly := []session.Role{session.RoleStaff}
	userOnly := []session.Role{session.RoleUser}

	tests := []struct {
		name string
		in   guard.Input
		want guard.Decision
	}{
		{
			name: "admin on admin area renders",
			in:   guard.Input{Session: admin, Required: adminOnly, Path: "/admin/reports"},
			want: guard.Render(),
		},
		{
			name: "user on admin area goes to user dashboard",
			in:   guard.Input{Session: user, Required: adminOnly, Path: "/admin"},
			want: guard.Redirect("/user/dashboard"),
		},
		{
			name: "staff on admin area goes to staff dashboard",
			in:   guard.Input{Session: staff, Required: adminOnly, Path: "/admin"},
			want: guard.Redirect("/staff/dashboard"),
		},
		{
			name: "admin on staff area goes to admin dashboard",
			in:   guard.Input{Session: admin, Required: staffOnly, Path: "/staff"},
			want: guard.Redirect("/admin/dashboard"),
		},
		{
			name: "staff on user area goes to staff dashboard",
			in:   guard.Input{Session: staff, Required: userOnly, Path: "/user/booking"},
			want: guard.Redirect("/staff/dashboard"),
		},
		{
			name: "unauthenticated goes to login with origin",
			in:   guard.Input{Session: session.Unauthenticated{}, Required: userOnly, Path: "/user/profile"},
			want: guard.Decision{Action: guard.ActionRedirect, Path: "/login", From: "/user/profile"},
		},
		{
			name: "nil session is unauthenticated",
			in:   guard.Input{Path: "/user"},
			want: guard.Decision{Action: guard.ActionRedirect, Path: "/login", From: "/user"},
		},
		{
			name: "no requirement renders for any role",
			in:   guard.Input{Session: staff, Path: "/profile"},
			want: guard.Render(),
		},
		{
			name: "multi-role requirement",
			in:   guard.Input{Session: staff, Required: []session.Role{session.RoleAdmin, session.RoleStaff}},
			want: guard.Render(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, p.Decide(tt.in))
		})
	}
}

func TestPolicy_LoadingNeverRedirects(t *testing.T) {
	t.Parallel()

	p := guard.DefaultPolicy()
	sessions := []session.Session{nil, session.Unauthenticated{}, admin, staff, user}
	requirements := [][]session.Role{
		nil,
		{session.RoleAdmin},
		{session.RoleStaff},
		{session.RoleUser},
		{session.RoleAdmin, session.RoleStaff},
	}

	for _, s := range sessions {
		for _, req := range requirements {
			d := p.Decide(guard.Input{Loading: true, Session: s, Required: req, Path: "/admin"})
			assert.Equal(t, guard.ActionLoading, d.Action)
			assert.Empty(t, d.Path)
		}
	}
}

func TestPolicy_Deterministic(t *testing.T) {
	t.Parallel()

	p := guard.DefaultPolicy()
	in := guard.Input{Session: user, Required: []session.Role{session.RoleAdmin}, Path: "/admin"}
	first := p.Decide(in)
	for range 100 {
		assert.Equal(t, first, p.Decide(in))
	}
}

func TestPolicy_LandingPath(t *testing.T) {
	t.Parallel()

	p := guard.DefaultPolicy()
	assert.Equal(t, "/admin/dashboard", p.LandingPath(session.RoleAdmin))
	assert.Equal(t, "/staff/dashboard", p.LandingPath(session.RoleStaff))
	assert.Equal(t, "/user/dashboard", p.LandingPath(session.RoleUser))
	assert.Equal(t, "/user/dashboard", p.LandingPath(session.Role("GUEST")))

	sparse := guard.Policy{Landing: map[session.Role]string{session.RoleAdmin: "/a"}}
	assert.Equal(t, "/a", sparse.LandingPath(session.RoleAdmin))
	assert.Equal(t, "/", sparse.LandingPath(session.RoleStaff))

	var zero guard.Policy
	assert.Equal(t, "/staff/dashboard", zero.LandingPath(session.RoleStaff))
	assert.Equal(t, guard.Decision{Action: guard.ActionRedirect, Path: "/login", From: "/x"},
		zero.Decide(guard.Input{Path: "/x"}))
}

func TestPolicy_DecidePath(t *testing.T) {
	t.Parallel()

	p := guard.DefaultPolicy()
	snap := session.Snapshot{Session: user}

	assert.Equal(t, guard.Render(), p.DecidePath(snap, "/user/dashboard"))
	assert.Equal(t, guard.Redirect("/user/dashboard"), p.DecidePath(snap, "/admin/settings"))
	assert.Equal(t, guard.Render(), p.DecidePath(snap, "/settings"))
	assert.Equal(t, guard.Loading(), p.DecidePath(session.Snapshot{Loading: true}, "/admin"))
}

func TestPolicy_Within(t *testing.T) {
	t.Parallel()

	p := guard.DefaultPolicy()
	assert.True(t, p.Within("/admin/dashboard", session.RoleAdmin))
	assert.False(t, p.Within("/admin/dashboard", session.RoleUser))
	assert.True(t, p.Within("/user", session.RoleUser))
	assert.False(t, p.Within("/login", session.RoleUser))
	assert.False(t, p.Within("/", session.RoleAdmin))
}

func TestAction_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "render", guard.ActionRender.String())
	assert.Equal(t, "redirect", guard.ActionRedirect.String())
	assert.Equal(t, "show-loading", guard.ActionLoading.String())
	assert.Equal(t, "unknown", guard.Action(42).String())
}
