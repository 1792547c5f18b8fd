package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/amp-labs/atm/cli"
	"github.com/amp-labs/atm/logger"
	"github.com/amp-labs/atm/shutdown"
	"github.com/amp-labs/atm/terminal"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/atomic"
)

// Menu entries, in display order.
const (
	menuInsert   = "Insert card"
	menuPin      = "Enter PIN"
	menuWithdraw = "Withdraw"
	menuDeposit  = "Deposit"
	menuComplete = "Complete work"
	menuBalance  = "Show balance"
	menuQuit     = "Quit"
)

var menu = []string{menuInsert, menuPin, menuWithdraw, menuDeposit, menuComplete, menuBalance, menuQuit}

var errQuit = errors.New("quit")

// menuPrompter is the part of cli.Prompter the menu loop uses.
type menuPrompter interface {
	Select(label string, choices ...string) (int, string, error)
	String(label string, mask rune) (string, error)
	Amount(label string) (float64, error)
	Confirm(label string) (bool, error)
}

// liveState publishes the session state to other goroutines. The session
// itself is only touched by the menu loop.
type liveState struct {
	v *atomic.Int32
}

func newLiveState(s terminal.State) *liveState {
	return &liveState{v: atomic.NewInt32(int32(s))} //nolint:gosec // three states
}

func (l *liveState) Store(s terminal.State) {
	l.v.Store(int32(s)) //nolint:gosec // three states
}

func (l *liveState) Load() terminal.State {
	return terminal.State(l.v.Load())
}

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Operate the terminal from a menu",
	RunE: func(cmd *cobra.Command, _ []string) error {
		base := shutdown.SetupHandler(cmd.Context())
		ctx := base

		sess, err := newSession(cmd, terminal.NewWriterReporter(cmd.OutOrStdout()))
		if err != nil {
			return err
		}

		live := newLiveState(sess.State())

		if addr, _ := cmd.Flags().GetString("metrics-addr"); addr != "" {
			stop := startMetricsServer(ctx, addr, newMetricsRouter(live.Load))
			shutdown.BeforeShutdown("metrics-server", stop)
		}

		// Hooks run before base is canceled, so waiting on it drains them.
		defer func() {
			shutdown.Shutdown()
			<-base.Done()
		}()

		ctx = logger.With(ctx, "command", "interactive")
		prompter := cli.NewPrompter()

		for ctx.Err() == nil {
			err := step(ctx, cmd.OutOrStdout(), prompter, sess, live)

			switch {
			case errors.Is(err, errQuit), errors.Is(err, promptui.ErrInterrupt), errors.Is(err, promptui.ErrEOF):
				printSummary(cmd, sess)

				return nil
			case err != nil:
				fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
			}
		}

		printSummary(cmd, sess)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)

	interactiveCmd.Flags().String("metrics-addr", "", "Serve /metrics and /healthz on this address (e.g. :9090)")
}

// step shows the menu once and performs the chosen entry, then publishes the
// resulting state to live.
func step(ctx context.Context, out io.Writer, p menuPrompter, sess *terminal.Session, live *liveState) error {
	_, choice, err := p.Select(fmt.Sprintf("Terminal [%s]", sess.State()), menu...)
	if err != nil {
		return err
	}

	req, err := requestFor(choice, p)
	if err != nil {
		return err
	}

	if req == nil {
		if choice == menuQuit {
			leave, err := p.Confirm("Leave the terminal")
			if err != nil {
				return err
			}

			if leave {
				return errQuit
			}

			return nil
		}

		fmt.Fprintf(out, "Balance: %.2f\n", sess.Balance())

		return nil
	}

	_, err = sess.Do(ctx, *req)

	live.Store(sess.State())

	return err
}

// requestFor prompts for any argument the menu entry needs. It returns nil for
// entries that are not terminal actions.
func requestFor(choice string, p menuPrompter) (*terminal.Request, error) {
	switch choice {
	case menuInsert:
		return &terminal.Request{Action: terminal.InsertCard}, nil
	case menuPin:
		pin, err := p.String("PIN", '*')
		if err != nil {
			return nil, err
		}

		return &terminal.Request{Action: terminal.CheckPin, PIN: pin}, nil
	case menuWithdraw, menuDeposit:
		amount, err := p.Amount("Amount")
		if err != nil {
			return nil, err
		}

		action := terminal.Withdraw
		if choice == menuDeposit {
			action = terminal.Deposit
		}

		return &terminal.Request{Action: action, Amount: amount}, nil
	case menuComplete:
		return &terminal.Request{Action: terminal.CompleteWork}, nil
	default:
		return nil, nil //nolint:nilnil // non-action menu entry
	}
}
