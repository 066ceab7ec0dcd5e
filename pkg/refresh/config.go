package refresh

import (
	"net/url"
	"strings"
	"time"
)

// Config names the auth endpoints and bounds the refresh call.
type Config struct {
	LoginPath      string        `env:"AUTHCLIENT_LOGIN_ENDPOINT" envDefault:"/auth/login"`
	RegisterPath   string        `env:"AUTHCLIENT_REGISTER_ENDPOINT" envDefault:"/auth/register"`
	VerifyPath     string        `env:"AUTHCLIENT_VERIFY_ENDPOINT" envDefault:"/auth/verify"`
	RefreshPath    string        `env:"AUTHCLIENT_REFRESH_ENDPOINT" envDefault:"/auth/refresh"`
	LogoutPath     string        `env:"AUTHCLIENT_LOGOUT_ENDPOINT" envDefault:"/auth/logout"`
	RefreshTimeout time.Duration `env:"AUTHCLIENT_REFRESH_TIMEOUT" envDefault:"10s"`
}

func DefaultConfig() Config {
	return Config{
		LoginPath:      "/auth/login",
		RegisterPath:   "/auth/register",
		VerifyPath:     "/auth/verify",
		RefreshPath:    "/auth/refresh",
		LogoutPath:     "/auth/logout",
		RefreshTimeout: 10 * time.Second,
	}
}

// Excluded reports whether path is one of the endpoints whose 401 means
// "credentials rejected" rather than "credentials expired". Verify is not
// excluded: an expired verify is refreshed and retried like any other call.
func (c Config) Excluded(path string) bool {
	p := path
	if u, err := url.Parse(path); err == nil {
		p = u.Path
	}
	p = strings.TrimSuffix(p, "/")
	for _, e := range []string{c.LoginPath, c.RegisterPath, c.RefreshPath, c.LogoutPath} {
		e = strings.TrimSuffix(e, "/")
		if e != "" && (p == e || strings.HasSuffix(p, e)) {
			return true
		}
	}
	return false
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.LoginPath == "" {
		c.LoginPath = d.LoginPath
	}
	if c.RegisterPath == "" {
		c.RegisterPath = d.RegisterPath
	}
	if c.VerifyPath == "" {
		c.VerifyPath = d.VerifyPath
	}
	if c.RefreshPath == "" {
		c.RefreshPath = d.RefreshPath
	}
	if c.LogoutPath == "" {
		c.LogoutPath = d.LogoutPath
	}
	if c.RefreshTimeout <= 0 {
		c.RefreshTimeout = d.RefreshTimeout
	}
	return c
}
