package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/authclient/pkg/logger"
	"github.com/dmitrymomot/authclient/pkg/refresh"
	"github.com/dmitrymomot/authclient/pkg/transport"
)

type callResult struct {
	path   string
	status int
	err    error
}

func newRunCmd(st *rootState) *cobra.Command {
	var (
		identifier  string
		secret      string
		concurrency int
		keep        bool
	)

	cmd := &cobra.Command{
		Use:   "run METHOD PATH...",
		Short: "Log in and issue calls concurrently through the refresh coordinator",
		Long: "run bootstraps the session, logs in when needed, issues every PATH " +
			"concurrently with a shared single-flight refresh, prints one status " +
			"line per call and logs out unless --keep-session is set.",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			method := strings.ToUpper(args[0])
			paths := args[1:]

			c, err := st.client(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			sess, err := c.Manager.Bootstrap(ctx)
			if err != nil {
				c.Logger.WarnContext(ctx, "bootstrap failed", logger.Error(err))
			}
			if !sess.IsAuthenticated() {
				if identifier == "" {
					return errors.New("no active session: --identifier and --secret are required")
				}
				user, err := c.Manager.Login(ctx, identifier, secret)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "logged in as %s (%s)\n", user.DisplayName, user.Role)
			}
			if !keep {
				defer c.Manager.Logout(ctx)
			}

			results := make([]callResult, len(paths))
			var g errgroup.Group
			g.SetLimit(max(concurrency, 1))
			for i, path := range paths {
				g.Go(func() error {
					resp, err := c.Coord.Call(ctx, transport.Request{Method: method, Path: path})
					results[i] = callResult{path: path, status: resp.Status, err: err}
					return nil
				})
			}
			_ = g.Wait()

			var expired error
			for _, r := range results {
				if r.err != nil {
					fmt.Fprintf(out, "ERR %s %s: %v\n", method, r.path, r.err)
					if errors.Is(r.err, refresh.ErrSessionExpired) {
						expired = r.err
					}
					continue
				}
				fmt.Fprintf(out, "%d %s %s\n", r.status, method, r.path)
			}
			return expired
		},
	}

	cmd.Flags().StringVar(&identifier, "identifier", "", "Login identifier (email)")
	cmd.Flags().StringVar(&secret, "secret", "", "Login secret")
	cmd.Flags().IntVar(&concurrency, "concurrency", 8, "Maximum calls in flight")
	cmd.Flags().BoolVar(&keep, "keep-session", false, "Skip logout at the end")
	return cmd
}

