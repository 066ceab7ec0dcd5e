package guard

import "github.com/dmitrymomot/authclient/pkg/session"

// Config holds the route guard paths loaded from the environment.
type Config struct {
	LoginPath    string `env:"AUTHCLIENT_LOGIN_PATH" envDefault:"/login"`
	AdminLanding string `env:"AUTHCLIENT_ADMIN_LANDING" envDefault:"/admin/dashboard"`
	StaffLanding string `env:"AUTHCLIENT_STAFF_LANDING" envDefault:"/staff/dashboard"`
	UserLanding  string `env:"AUTHCLIENT_USER_LANDING" envDefault:"/user/dashboard"`
	// AreasFile points at a YAML area table; empty uses DefaultAreas.
	AreasFile string `env:"AUTHCLIENT_AREAS_FILE"`
}

// NewPolicy builds a Policy from cfg, loading the area table if configured.
func NewPolicy(cfg Config) (Policy, error) {
	p := DefaultPolicy()
	if cfg.LoginPath != "" {
		p.LoginPath = cfg.LoginPath
	}
	for role, path := range map[session.Role]string{
		session.RoleAdmin: cfg.AdminLanding,
		session.RoleStaff: cfg.StaffLanding,
		session.RoleUser:  cfg.UserLanding,
	} {
		if path != "" {
			p.Landing[role] = path
		}
	}
	if cfg.AreasFile != "" {
		areas, err := LoadAreasFile(cfg.AreasFile)
		if err != nil {
			return Policy{}, err
		}
		p.Areas = areas
	}
	return p, nil
}
