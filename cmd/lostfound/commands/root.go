// Package commands implements the lostfound operator CLI.
package commands

import (
	"fmt"

	"github.com/fivetwenty-io/lostfound-e2e/internal/auth"
	"github.com/fivetwenty-io/lostfound-e2e/internal/config"
	"github.com/fivetwenty-io/lostfound-e2e/internal/constants"
	lfhttp "github.com/fivetwenty-io/lostfound-e2e/internal/http"
	"github.com/fivetwenty-io/lostfound-e2e/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// BuildInfo is stamped at build time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// app holds what every command shares once flags are parsed.
type app struct {
	v      *viper.Viper
	cfg    config.Config
	logger logging.Logger
}

// NewRootCommand builds the command tree.
func NewRootCommand(info BuildInfo) *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "lostfound",
		Short: "Lost & Found API test harness",
		Long: `Operator tooling for the Lost & Found API end-to-end harness.

Sign in, create throwaway test users, send ad-hoc requests through the same
dispatcher the test suites use, or run the in-memory reference server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (yaml)")
	flags.StringP("api", "a", "", "API base URL (env API_BASE_URL)")
	flags.Int("timeout", 0, "request timeout in milliseconds (env API_TIMEOUT)")
	flags.StringP("output", "o", constants.FormatTable, "output format (table, json, yaml)")
	flags.String("log-level", "", "log level: debug, info, warn, error (env LOG_LEVEL)")
	flags.Bool("no-color", false, "disable colored output")

	bindings := map[string]string{
		"api.base_url": "api",
		"api.timeout":  "timeout",
		"output":       "output",
		"log.level":    "log-level",
		"log.no_color": "no-color",
	}
	for key, flag := range bindings {
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(newVersionCommand(a, info))
	rootCmd.AddCommand(newConfigCommand(a))
	rootCmd.AddCommand(newSigninCommand(a))
	rootCmd.AddCommand(newCreateUserCommand(a))
	rootCmd.AddCommand(newRequestCommand(a))
	rootCmd.AddCommand(newServeCommand(a))

	return rootCmd
}

func (a *app) init(cmd *cobra.Command) error {
	configFile, _ := cmd.Flags().GetString("config")
	if configFile != "" {
		a.v.SetConfigFile(configFile)

		err := a.v.ReadInConfig()
		if err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg, err := config.LoadFrom(a.v)
	if err != nil {
		return err
	}

	a.cfg = cfg

	opts := []logging.Option{logging.WithLevel(logging.ParseLevel(cfg.Log.Level))}
	if cfg.Log.NoColor {
		opts = append(opts, logging.WithoutColor())
	}

	a.logger = logging.NewConsoleLogger(cmd.ErrOrStderr(), opts...)

	return nil
}

func (a *app) output() string {
	return a.v.GetString("output")
}

func (a *app) client() *lfhttp.Client {
	return lfhttp.NewClient(a.cfg.API.BaseURL,
		lfhttp.WithLogger(a.logger),
		lfhttp.WithTimeout(a.cfg.API.TimeoutDuration()),
	)
}

func (a *app) authenticator(client *lfhttp.Client) *auth.Authenticator {
	return auth.NewAuthenticator(client, a.cfg.Endpoints.Auth.Signin, a.logger)
}
