package commands

import (
	"strconv"

	"github.com/fivetwenty-io/lostfound-e2e/internal/constants"
	"github.com/fivetwenty-io/lostfound-e2e/internal/testuser"
	"github.com/spf13/cobra"
)

func newCreateUserCommand(a *app) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a throwaway test user and sign it in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client := a.client()

			opts := []testuser.Option{testuser.WithLogger(a.logger)}
			if strict {
				opts = append(opts, testuser.WithStrictSignup())
			}

			factory := testuser.NewFactory(client, a.authenticator(client),
				a.cfg.Endpoints.Auth.Signup, a.cfg.TestData.NewUser, opts...)

			created, err := factory.Create(cmd.Context())
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), a.output(), created, [][2]string{
				{"ID", strconv.FormatInt(created.User.ID, 10)},
				{"Email", created.User.Email},
				{"Password", constants.MaskedSecret},
				{"Name", created.User.FirstName + " " + created.User.LastName},
				{"Token", created.Token},
			})
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail when signup is not accepted instead of signing in anyway")

	return cmd
}
