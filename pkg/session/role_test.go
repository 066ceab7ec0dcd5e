package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/authclient/pkg/session"
)

func TestNormalizeRole(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want session.Role
	}{
		{"ADMIN", session.RoleAdmin},
		{"admin", session.RoleAdmin},
		{"  Staff ", session.RoleStaff},
		{"user", session.RoleUser},
		{"", session.RoleUser},
		{"superuser", session.RoleUser},
		{"ROLE_ADMIN", session.RoleUser},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			got := session.NormalizeRole(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
		})
	}
}

func TestRole_Valid(t *testing.T) {
	t.Parallel()

	for _, r := range session.Roles() {
		assert.True(t, r.Valid(), r.String())
	}
	assert.False(t, session.Role("admin").Valid())
	assert.False(t, session.Role("").Valid())
}

func TestRoleOf(t *testing.T) {
	t.Parallel()

	role, ok := session.RoleOf(session.Authenticated{UserID: "1", Role: session.RoleStaff})
	assert.True(t, ok)
	assert.Equal(t, session.RoleStaff, role)

	_, ok = session.RoleOf(session.Unauthenticated{})
	assert.False(t, ok)
}

func TestEqual(t *testing.T) {
	t.Parallel()

	a := session.Authenticated{UserID: "1", Role: session.RoleUser, DisplayName: "Ann"}
	assert.True(t, session.Equal(a, a))
	assert.True(t, session.Equal(nil, session.Unauthenticated{}))
	assert.False(t, session.Equal(a, session.Unauthenticated{}))
	assert.False(t, session.Equal(a, session.Authenticated{UserID: "1", Role: session.RoleAdmin, DisplayName: "Ann"}))
}
