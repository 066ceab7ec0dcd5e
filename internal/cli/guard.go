package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/authclient/pkg/guard"
	"github.com/dmitrymomot/authclient/pkg/session"
)

func newGuardCmd(st *rootState) *cobra.Command {
	var (
		role    string
		loading bool
	)

	cmd := &cobra.Command{
		Use:   "guard PATH",
		Short: "Print the route decision for PATH",
		Long: "guard evaluates the configured policy and area table for PATH. " +
			"Without --role the session is anonymous.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := guard.NewPolicy(st.settings.Guard)
			if err != nil {
				return err
			}

			snap := session.Snapshot{Session: session.Unauthenticated{}, Loading: loading}
			if role != "" {
				snap.Session = session.Authenticated{UserID: "cli", Role: session.NormalizeRole(role)}
			}

			d := policy.DecidePath(snap, args[0])
			if d.Action == guard.ActionRedirect {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", d.Action, guard.RedirectURL(d))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), d.Action)
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "Role of the signed-in user: ADMIN, STAFF, USER")
	cmd.Flags().BoolVar(&loading, "loading", false, "Evaluate while the session is still loading")
	return cmd
}
