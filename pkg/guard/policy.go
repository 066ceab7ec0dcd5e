package guard

import (
	"slices"

	"github.com/dmitrymomot/authclient/pkg/session"
)

// Action is what the caller should do with a protected route.
type Action int

const (
	ActionRender Action = iota
	ActionRedirect
	ActionLoading
)

func (a Action) String() string {
	switch a {
	case ActionRender:
		return "render"
	case ActionRedirect:
		return "redirect"
	case ActionLoading:
		return "show-loading"
	default:
		return "unknown"
	}
}

// Decision is the outcome for one route. Path is set for redirects; From is
// the originally requested path, set only when redirecting to login.
type Decision struct {
	Action Action
	Path   string
	From   string
}

func Render() Decision { return Decision{Action: ActionRender} }
func Loading() Decision { return Decision{Action: ActionLoading} }
func Redirect(to string) Decision { return Decision{Action: ActionRedirect, Path: to} }

// Input is everything a decision depends on. An empty Required means any
// authenticated user may enter.
type Input struct {
	Loading  bool
	Session  session.Session
	Required []session.Role
	Path     string
}

// Policy maps session state to route decisions. The zero value is usable and
// behaves like DefaultPolicy without an area table.
type Policy struct {
	LoginPath string
	Landing   map[session.Role]string
	Areas     Areas
}

func DefaultPolicy() Policy {
	return Policy{
		LoginPath: DefaultLoginPath,
		Landing:   DefaultLanding(),
		Areas:     DefaultAreas(),
	}
}

const DefaultLoginPath = "/login"

// DefaultLanding is the dashboard each role is sent to.
func DefaultLanding() map[session.Role]string {
	return map[session.Role]string{
		session.RoleAdmin: "/admin/dashboard",
		session.RoleStaff: "/staff/dashboard",
		session.RoleUser:  "/user/dashboard",
	}
}

// Decide is total and has no side effects. While loading it never redirects.
func (p Policy) Decide(in Input) Decision {
	if in.Loading {
		return Loading()
	}

	user, ok := in.Session.(session.Authenticated)
	if !ok {
		return Decision{Action: ActionRedirect, Path: p.ResolvedLoginPath(), From: in.Path}
	}

	if len(in.Required) > 0 && !slices.Contains(in.Required, user.Role) {
		return Redirect(p.LandingPath(user.Role))
	}
	return Render()
}

// DecidePath decides for path using the area table to find its requirement.
func (p Policy) DecidePath(snap session.Snapshot, path string) Decision {
	return p.Decide(Input{
		Loading:  snap.Loading,
		Session:  snap.Session,
		Required: p.Areas.Required(path),
		Path:     path,
	})
}

// LandingPath is total: a role without an entry falls back to the USER
// landing path, then to "/".
func (p Policy) LandingPath(role session.Role) string {
	if path := p.landing(role); path != "" {
		return path
	}
	if path := p.landing(session.RoleUser); path != "" {
		return path
	}
	return "/"
}

// Within reports whether path belongs to an area that role may enter.
// Paths outside every area are not within any role's area.
func (p Policy) Within(path string, role session.Role) bool {
	area, ok := p.Areas.Match(path)
	return ok && area.Allows(role)
}

func (p Policy) landing(role session.Role) string {
	if p.Landing == nil {
		return DefaultLanding()[role]
	}
	return p.Landing[role]
}

// ResolvedLoginPath is LoginPath, or DefaultLoginPath when unset.
func (p Policy) ResolvedLoginPath() string {
	if p.LoginPath == "" {
		return DefaultLoginPath
	}
	return p.LoginPath
}
