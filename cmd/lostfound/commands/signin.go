package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/fivetwenty-io/lostfound-e2e/internal/auth"
	"github.com/fivetwenty-io/lostfound-e2e/internal/constants"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type signinOutput struct {
	Email     string    `json:"email"                yaml:"email"`
	Token     string    `json:"token"                yaml:"token"`
	Subject   string    `json:"subject,omitempty"    yaml:"subject,omitempty"`
	Role      string    `json:"role,omitempty"       yaml:"role,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
}

func newSigninCommand(a *app) *cobra.Command {
	var (
		email    string
		password string
		asAdmin  bool
	)

	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign in and print the bearer token",
		Long: `Sign in against the configured API and print the bearer token and its claims.

Without --email the configured test user (or the admin with --admin) is used.
With --email and no --password the password is prompted for on a terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email, password = a.credentials(email, password, asAdmin)

			if email == "" {
				return constants.ErrEmailRequired
			}

			if password == "" {
				prompted, err := promptPassword(cmd)
				if err != nil {
					return err
				}

				password = prompted
			}

			client := a.client()

			token, err := a.authenticator(client).Authenticate(cmd.Context(), email, password)
			if err != nil {
				return fmt.Errorf("sign-in failed: %w", err)
			}

			out := signinOutput{Email: email, Token: token}
			rows := [][2]string{{"Email", email}, {"Token", token}}

			claims, err := auth.ParseClaims(token)
			if err == nil {
				out.Subject = claims.Subject
				out.Role = claims.Role
				out.ExpiresAt = claims.ExpiresAt
				rows = append(rows,
					[2]string{"Subject", claims.Subject},
					[2]string{"Role", claims.Role},
					[2]string{"Expires", claims.ExpiresAt.Format(time.RFC3339)},
				)
			} else {
				a.logger.Debug("Token claims unavailable", map[string]interface{}{"error": err.Error()})
			}

			return render(cmd.OutOrStdout(), a.output(), out, rows)
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	cmd.Flags().BoolVar(&asAdmin, "admin", false, "use the configured admin account")

	return cmd
}

// credentials fills in configured accounts when no explicit email is given.
func (a *app) credentials(email, password string, asAdmin bool) (string, string) {
	if email != "" {
		return email, password
	}

	account := a.cfg.Auth.User
	if asAdmin {
		account = a.cfg.Auth.Admin
	}

	if password == "" {
		password = account.Password
	}

	return account.Email, password
}

func promptPassword(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", constants.ErrPasswordRequired
	}

	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")

	bytePassword, err := term.ReadPassword(fd)

	fmt.Fprintln(cmd.ErrOrStderr())

	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	return string(bytePassword), nil
}
