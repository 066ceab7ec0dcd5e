package session

// Session is either Unauthenticated or Authenticated. Values are immutable;
// the Store replaces them whole.
type Session interface {
	IsAuthenticated() bool
	session()
}

// Unauthenticated is the session before login, after logout and after expiry.
type Unauthenticated struct{}

func (Unauthenticated) IsAuthenticated() bool { return false }
func (Unauthenticated) session()              {}

// Authenticated is the identity the server vouched for on the last call.
type Authenticated struct {
	UserID      string
	Role        Role
	DisplayName string
}

func (Authenticated) IsAuthenticated() bool { return true }
func (Authenticated) session()              {}

// RoleOf returns the role of an authenticated session.
func RoleOf(s Session) (Role, bool) {
	if a, ok := s.(Authenticated); ok {
		return a.Role, true
	}
	return "", false
}

// Equal reports whether two sessions describe the same state. A nil session
// equals Unauthenticated.
func Equal(a, b Session) bool {
	return normalize(a) == normalize(b)
}

func normalize(s Session) Session {
	if s == nil {
		return Unauthenticated{}
	}
	return s
}
