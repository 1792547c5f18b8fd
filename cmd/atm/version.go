package main

import (
	"encoding/json"
	"fmt"

	"github.com/amp-labs/atm/build"
	"github.com/spf13/cobra"
)

// Overridden at build time:
//
//	-ldflags "-X main.version=v1.0.0 -X 'main.buildInfo={\"git_commit\":\"...\"}'"
var (
	version   = "dev"
	buildInfo = ""
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of atm",
	RunE: func(cmd *cobra.Command, _ []string) error {
		info := build.Current(version, buildInfo)

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")

			return enc.Encode(info)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "atm version %s (%s)\n", info.Version, info.GoVersion)

		if info.GitCommit != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "commit %s\n", info.GitCommit)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().Bool("json", false, "Print build information as JSON")
}
