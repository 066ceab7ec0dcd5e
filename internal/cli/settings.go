package cli

import (
	"github.com/dmitrymomot/authclient/pkg/guard"
	"github.com/dmitrymomot/authclient/pkg/httpserver"
	"github.com/dmitrymomot/authclient/pkg/redis"
	"github.com/dmitrymomot/authclient/pkg/refresh"
	"github.com/dmitrymomot/authclient/pkg/session"
	"github.com/dmitrymomot/authclient/pkg/transport"
)

// Settings is every component config the CLI reads from the environment.
type Settings struct {
	Transport transport.Config
	Refresh   refresh.Config
	Guard     guard.Config
	Hint      session.HintConfig
	Redis     redis.Config
	Serve     httpserver.Config

	LogLevel  string `env:"AUTHCLIENT_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"AUTHCLIENT_LOG_FORMAT" envDefault:"text"`
}
