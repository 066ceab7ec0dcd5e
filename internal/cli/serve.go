package cli

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/authclient/pkg/auth"
	"github.com/dmitrymomot/authclient/pkg/httpserver"
	"github.com/dmitrymomot/authclient/pkg/logger"
)

func newServeCmd(st *rootState) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a local shell whose pages are guarded by the client session",
		Long: "serve bootstraps the session in the background and exposes the " +
			"login form, logout, /session, /metrics and every configured area. Pages answer " +
			"503 until the first verification resolves.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := st.client(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			nav := auth.NewPathNavigator("/")
			obs, err := auth.NewObserver(c.Store, nav,
				auth.WithPolicy(c.Policy),
				auth.WithObserverHintStore(c.Hints),
				auth.WithObserverLogger(c.Logger),
			)
			if err != nil {
				return err
			}

			srv := httpserver.NewFromConfig(st.settings.Serve,
				httpserver.WithAddr(addr),
				httpserver.WithLogger(c.Logger),
				httpserver.WithStartHook(func(bound string) {
					fmt.Fprintf(cmd.OutOrStdout(), "listening on http://%s\n", bound)
				}),
			)

			return serveSession(cmd.Context(), c, obs, srv, NewShell(c, nav))
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (or AUTHCLIENT_SERVE_ADDR)")
	return cmd
}

// serveSession runs the observer, the session metrics, Bootstrap and the
// server until ctx ends. Both subscriptions are taken before Bootstrap starts
// so its first change reaches them.
func serveSession(ctx context.Context, c *Client, obs *auth.Observer, srv *httpserver.Server, h http.Handler) error {
	g, ctx := errgroup.WithContext(ctx)
	observed := c.Store.Subscribe(ctx)
	counted := c.Store.Subscribe(ctx)

	g.Go(func() error { return obs.Watch(ctx, observed) })
	g.Go(func() error {
		c.Metrics.CountChanges(counted)
		return nil
	})
	g.Go(func() error {
		if _, err := c.Manager.Bootstrap(ctx); err != nil {
			c.Logger.WarnContext(ctx, "bootstrap failed", logger.Error(err))
		}
		return nil
	})
	g.Go(func() error { return srv.Run(ctx, h) })
	return g.Wait()
}
