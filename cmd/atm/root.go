package main

import (
	"context"
	"fmt"
	"os"

	"github.com/amp-labs/atm/envutil"
	"github.com/amp-labs/atm/logger"
	"github.com/amp-labs/atm/telemetry"
	"github.com/amp-labs/atm/terminal"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "atm",
	Short: "atm simulates a single automated teller terminal",
	Long: `atm runs a teller terminal state machine: insert a card, verify the PIN over a
flaky simulated connection, withdraw or deposit, then complete the work.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
		return telemetry.Shutdown(cmd.Context())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "YAML terminal configuration file (default $ATM_CONFIG)")
	flags.String("name", "", "Terminal name used in logs and metrics")
	flags.Float64("balance", terminal.DefaultInitialBalance, "Initial balance")
	flags.Float64("failure-probability", terminal.DefaultFailureProbability,
		"Probability in [0,1] of losing the connection during PIN verification")
	flags.Uint64("seed", 0, "Seed for the connection oracle (random when unset)")
	flags.Bool("strict", false, "Report actions the current state ignores as errors")
	flags.Bool("log-json", false, "Emit logs as JSON")
	flags.String("log-level", "", "Minimum log level (debug, info, warn, error)")
}

func setup(cmd *cobra.Command, _ []string) error {
	var opts []logger.Option

	flags := cmd.Flags()

	if flags.Changed("log-json") {
		json, _ := flags.GetBool("log-json")
		opts = append(opts, logger.WithJSON(json))
	}

	if lvl, _ := flags.GetString("log-level"); lvl != "" {
		level, err := logger.ParseLevel(lvl)
		if err != nil {
			return err
		}

		opts = append(opts, logger.WithLevel(level))
	}

	if _, err := logger.ConfigureLogging("atm", opts...); err != nil {
		return err
	}

	otelCfg, err := telemetry.LoadConfigFromEnv("local")
	if err != nil {
		return err
	}

	return telemetry.Initialize(cmd.Context(), otelCfg)
}

// loadConfig merges the config file, if any, with explicitly set flags.
// ATM_CONFIG names the file when --config is not given.
func loadConfig(cmd *cobra.Command) (*terminal.Config, error) {
	flags := cmd.Flags()

	cfg := terminal.DefaultConfig()

	path, _ := flags.GetString("config")
	if path == "" {
		path = envutil.NonEmpty(envutil.String("ATM_CONFIG")).ValueOrElse("")
	}

	if path != "" {
		loaded, err := terminal.LoadConfig(path)
		if err != nil {
			return nil, err
		}

		cfg = loaded
	}

	if flags.Changed("name") {
		cfg.Name, _ = flags.GetString("name")
	}

	if flags.Changed("balance") {
		cfg.InitialBalance, _ = flags.GetFloat64("balance")
	}

	if flags.Changed("failure-probability") {
		cfg.FailureProbability, _ = flags.GetFloat64("failure-probability")
	}

	if flags.Changed("seed") {
		seed, _ := flags.GetUint64("seed")
		cfg.Seed = &seed
	}

	if flags.Changed("strict") {
		cfg.Strict, _ = flags.GetBool("strict")
	}

	return cfg, nil
}

func newSession(cmd *cobra.Command, reporter terminal.Reporter) (*terminal.Session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	return terminal.NewSessionFromConfig(cfg, terminal.WithReporter(reporter))
}

func printSummary(cmd *cobra.Command, sess *terminal.Session) {
	fmt.Fprintf(cmd.OutOrStdout(), "Balance: %.2f (state %s)\n", sess.Balance(), sess.State())
}
