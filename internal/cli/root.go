package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/authclient/pkg/config"
	"github.com/dmitrymomot/authclient/pkg/logger"
	"github.com/dmitrymomot/authclient/pkg/requestid"
)

type rootState struct {
	envFiles    []string
	baseURL     string
	logLevel    string
	logFormat   string
	hintBackend string
	areasFile   string
	debug       bool

	settings Settings
	logger   *slog.Logger
}

// NewRootCmd creates the authclient command tree. Flags override the
// environment.
func NewRootCmd() *cobra.Command {
	st := &rootState{}

	root := &cobra.Command{
		Use:   "authclient",
		Short: "Session client with single-flight refresh and role-based routing",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return st.load(cmd)
		},
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringSliceVar(&st.envFiles, "env-file", nil, "Load variables from these .env files first")
	flags.StringVar(&st.baseURL, "base-url", "", "API base URL (or AUTHCLIENT_BASE_URL)")
	flags.StringVar(&st.logLevel, "log-level", "", "Log level: debug, info, warn, error (or AUTHCLIENT_LOG_LEVEL)")
	flags.StringVar(&st.logFormat, "log-format", "", "Log format: text, json (or AUTHCLIENT_LOG_FORMAT)")
	flags.StringVar(&st.hintBackend, "hint-backend", "", "Session hint backend: memory, file, redis (or AUTHCLIENT_HINT_BACKEND)")
	flags.StringVar(&st.areasFile, "areas", "", "YAML area table (or AUTHCLIENT_AREAS_FILE)")
	flags.BoolVar(&st.debug, "debug", false, "Shorthand for --log-level=debug")

	root.AddCommand(
		newRunCmd(st),
		newGuardCmd(st),
		newServeCmd(st),
	)
	return root
}

func (st *rootState) load(cmd *cobra.Command) error {
	if len(st.envFiles) > 0 {
		if err := config.LoadEnv(st.envFiles...); err != nil {
			return err
		}
	}
	if err := config.ForceReload(&st.settings); err != nil {
		return err
	}

	s := &st.settings
	if st.baseURL != "" {
		s.Transport.BaseURL = st.baseURL
	}
	if st.logLevel != "" {
		s.LogLevel = st.logLevel
	}
	if st.debug {
		s.LogLevel = "debug"
	}
	if st.logFormat != "" {
		s.LogFormat = st.logFormat
	}
	if st.hintBackend != "" {
		s.Hint.Backend = st.hintBackend
	}
	if st.areasFile != "" {
		s.Guard.AreasFile = st.areasFile
	}

	format := logger.Format(s.LogFormat)
	if format != logger.FormatText && format != logger.FormatJSON {
		return fmt.Errorf("invalid log format %q", s.LogFormat)
	}
	st.logger = logger.New(
		logger.WithLevel(logger.ParseLevel(s.LogLevel)),
		logger.WithFormat(format),
		logger.WithOutput(cmd.ErrOrStderr()),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	return nil
}

func (st *rootState) client(cmd *cobra.Command) (*Client, error) {
	return NewClient(cmd.Context(), st.settings, st.logger)
}
