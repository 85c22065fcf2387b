package commands

import (
	"github.com/fivetwenty-io/lostfound-e2e/internal/constants"
	"github.com/fivetwenty-io/lostfound-e2e/internal/fakeserver"
	"github.com/spf13/cobra"
)

func newServeCommand(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the in-memory reference API",
		Long: `Run the in-memory Lost & Found reference API. The configured admin account is
seeded at startup; all other state is lost when the process exits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			srv, err := fakeserver.New(
				fakeserver.WithAdmin(a.cfg.Auth.Admin.Email, a.cfg.Auth.Admin.Password),
				fakeserver.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}

			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", constants.DefaultListenAddr, "listen address")

	return cmd
}
