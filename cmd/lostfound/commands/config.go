package commands

import (
	"strconv"

	"github.com/spf13/cobra"
)

func newConfigCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the resolved configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the configuration with passwords masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg.Redacted()

			rows := [][2]string{
				{"api.base_url", cfg.API.BaseURL},
				{"api.timeout", strconv.Itoa(cfg.API.Timeout)},
				{"auth.admin.email", cfg.Auth.Admin.Email},
				{"auth.admin.password", cfg.Auth.Admin.Password},
				{"auth.user.email", cfg.Auth.User.Email},
				{"auth.user.password", cfg.Auth.User.Password},
				{"test_data.new_user.email", cfg.TestData.NewUser.Email},
				{"test_data.new_user.password", cfg.TestData.NewUser.Password},
				{"endpoints.auth.signup", cfg.Endpoints.Auth.Signup},
				{"endpoints.auth.signin", cfg.Endpoints.Auth.Signin},
				{"endpoints.lost_items", cfg.Endpoints.LostItems},
				{"endpoints.found_items", cfg.Endpoints.FoundItems},
				{"endpoints.admin.users", cfg.Endpoints.Admin.Users},
				{"endpoints.admin.items", cfg.Endpoints.Admin.Items},
				{"endpoints.admin.reports", cfg.Endpoints.Admin.Reports},
				{"log.level", cfg.Log.Level},
				{"log.no_color", strconv.FormatBool(cfg.Log.NoColor)},
			}

			if used := a.v.ConfigFileUsed(); used != "" {
				rows = append(rows, [2]string{"config_file", used})
			}

			return render(cmd.OutOrStdout(), a.output(), cfg, rows)
		},
	})

	return cmd
}
