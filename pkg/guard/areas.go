package guard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/authclient/pkg/session"
)

// Area is a subtree of routes reserved for some roles.
type Area struct {
	Prefix string         `yaml:"prefix"`
	Roles  []session.Role `yaml:"roles"`
}

// Allows reports whether role may enter the area. An area without roles
// admits every authenticated user.
func (a Area) Allows(role session.Role) bool {
	return len(a.Roles) == 0 || slices.Contains(a.Roles, role)
}

// Areas is a prefix table; the longest matching prefix wins.
type Areas []Area

func DefaultAreas() Areas {
	return Areas{
		{Prefix: "/admin", Roles: []session.Role{session.RoleAdmin}},
		{Prefix: "/staff", Roles: []session.Role{session.RoleStaff}},
		{Prefix: "/user", Roles: []session.Role{session.RoleUser}},
	}
}

// Match finds the area owning path. Prefixes match whole segments, so
// "/admin" owns "/admin" and "/admin/reports" but not "/administrator".
func (a Areas) Match(path string) (Area, bool) {
	var best Area
	found := false
	for _, area := range a {
		if hasSegmentPrefix(path, area.Prefix) && (!found || len(area.Prefix) > len(best.Prefix)) {
			best, found = area, true
		}
	}
	return best, found
}

// Required returns the roles path requires, or nil when any authenticated
// user may enter.
func (a Areas) Required(path string) []session.Role {
	if area, ok := a.Match(path); ok {
		return area.Roles
	}
	return nil
}

type areasFile struct {
	Areas []struct {
		Prefix string   `yaml:"prefix"`
		Roles  []string `yaml:"roles"`
	} `yaml:"areas"`
}

// LoadAreas parses a YAML area table:
//
//	areas:
//	  - prefix: /admin
//	    roles: [ADMIN]
//	  - prefix: /reports
//	    roles: [ADMIN, STAFF]
//
// Role names are case-insensitive; unknown names are rejected rather than
// silently downgraded.
func LoadAreas(r io.Reader) (Areas, error) {
	var f areasFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Join(ErrInvalidAreas, err)
	}

	areas := make(Areas, 0, len(f.Areas))
	for i, raw := range f.Areas {
		prefix := "/" + strings.Trim(strings.TrimSpace(raw.Prefix), "/")
		if prefix == "/" {
			return nil, fmt.Errorf("%w: area %d has no prefix", ErrInvalidAreas, i)
		}
		area := Area{Prefix: prefix}
		for _, name := range raw.Roles {
			role := session.Role(strings.ToUpper(strings.TrimSpace(name)))
			if !role.Valid() {
				return nil, fmt.Errorf("%w: area %s: unknown role %q", ErrInvalidAreas, prefix, name)
			}
			area.Roles = append(area.Roles, role)
		}
		areas = append(areas, area)
	}
	return areas, nil
}

func LoadAreasFile(path string) (Areas, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Join(ErrInvalidAreas, err)
	}
	defer func() { _ = f.Close() }()
	return LoadAreas(f)
}

func hasSegmentPrefix(path, prefix string) bool {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		return true
	}
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	rest := path[len(prefix):]
	return rest == "" || rest[0] == '/'
}
