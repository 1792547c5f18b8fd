package main

import (
	"fmt"

	"github.com/amp-labs/atm/terminal"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Print the terminal state diagram",
	Long:  `Outputs a Mermaid diagram (stateDiagram-v2) of the terminal's states and transitions.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		highlight := terminal.State(-1)

		if name, _ := cmd.Flags().GetString("highlight"); name != "" {
			state, err := terminal.ParseState(name)
			if err != nil {
				return err
			}

			highlight = state
		}

		fmt.Fprint(cmd.OutOrStdout(), terminal.Mermaid(highlight))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().String("highlight", "", "State to highlight (waiting, verifying_pin, operating)")
}
