package commands_test

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"

	"github.com/fivetwenty-io/lostfound-e2e/cmd/lostfound/commands"
	"github.com/fivetwenty-io/lostfound-e2e/internal/fakeserver"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const (
	adminEmail    = "cli-admin@lostfound.com"
	adminPassword = "CliAdmin123!"
)

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

// referenceServer starts an in-memory API seeded with the CLI admin.
func referenceServer(t *testing.T) string {
	t.Helper()

	srv, err := fakeserver.New(fakeserver.WithAdmin(adminEmail, adminPassword))
	require.NoError(t, err)

	server := httptest.NewServer(srv)
	t.Cleanup(server.Close)

	return server.URL
}

// execute runs the root command with args and returns stdout and stderr.
func execute(ctx context.Context, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer

	cmd := commands.NewRootCommand(commands.BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2026-01-01"})
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)

	return stdout.String(), stderr.String(), err
}
