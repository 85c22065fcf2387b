package commands

import (
	"github.com/spf13/cobra"
)

func newVersionCommand(a *app, info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			type versionInfo struct {
				Version string `json:"version" yaml:"version"`
				Commit  string `json:"commit"  yaml:"commit"`
				Built   string `json:"built"   yaml:"built"`
			}

			return render(cmd.OutOrStdout(), a.output(),
				versionInfo{Version: info.Version, Commit: info.Commit, Built: info.Date},
				[][2]string{
					{"Version", info.Version},
					{"Commit", info.Commit},
					{"Built", info.Date},
				})
		},
	}
}
