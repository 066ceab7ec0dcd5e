package session

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Role is the coarse authorization category assigned by the server.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleStaff Role = "STAFF"
	RoleUser  Role = "USER"
)

var upper = cases.Upper(language.Und)

// NormalizeRole maps a raw server value to a Role. It trims and upper-cases
// the input; anything that is not a known role becomes RoleUser.
func NormalizeRole(raw string) Role {
	switch r := Role(upper.String(strings.TrimSpace(raw))); r {
	case RoleAdmin, RoleStaff, RoleUser:
		return r
	default:
		return RoleUser
	}
}

// Roles lists every role, most privileged first.
func Roles() []Role {
	return []Role{RoleAdmin, RoleStaff, RoleUser}
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleUser:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
