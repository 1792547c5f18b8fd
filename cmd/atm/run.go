package main

import (
	"fmt"

	"github.com/amp-labs/atm/logger"
	"github.com/amp-labs/atm/terminal"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a scripted terminal session",
	Long: `Replays a comma separated list of steps against a fresh terminal and prints every
notification. Steps: insert, pin[:PIN], withdraw:AMOUNT, deposit:AMOUNT, complete.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		script, _ := cmd.Flags().GetString("script")

		reqs, err := parseScript(script)
		if err != nil {
			return err
		}

		sess, err := newSession(cmd, terminal.NewWriterReporter(cmd.OutOrStdout()))
		if err != nil {
			return err
		}

		ctx := logger.With(cmd.Context(), "command", "run")

		for _, req := range reqs {
			if _, err := sess.Do(ctx, req); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
			}
		}

		printSummary(cmd, sess)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("script", defaultScript, "Steps to run")
}
