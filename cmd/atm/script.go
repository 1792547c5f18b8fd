package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/amp-labs/atm/terminal"
)

// defaultScript replays the reference session: one card, one withdrawal, one deposit.
const defaultScript = "insert,pin:hello,withdraw:100,deposit:150,complete"

var (
	errEmptyStep      = errors.New("empty script step")
	errMissingAmount  = errors.New("missing amount")
	errUnexpectedArgs = errors.New("step takes no argument")
)

// parseScript turns "insert,pin:1234,withdraw:100,complete" into requests.
func parseScript(script string) ([]terminal.Request, error) {
	var reqs []terminal.Request

	for i, raw := range strings.Split(script, ",") {
		req, err := parseStep(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("step %d %q: %w", i+1, raw, err)
		}

		reqs = append(reqs, req)
	}

	return reqs, nil
}

func parseStep(step string) (terminal.Request, error) {
	if step == "" {
		return terminal.Request{}, errEmptyStep
	}

	name, arg, hasArg := strings.Cut(step, ":")

	action, err := stepAction(strings.ToLower(name))
	if err != nil {
		return terminal.Request{}, err
	}

	req := terminal.Request{Action: action}

	switch action {
	case terminal.CheckPin:
		req.PIN = arg
	case terminal.Withdraw, terminal.Deposit:
		if !hasArg || arg == "" {
			return terminal.Request{}, errMissingAmount
		}

		amount, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return terminal.Request{}, fmt.Errorf("invalid amount: %w", err)
		}

		req.Amount = amount
	case terminal.InsertCard, terminal.CompleteWork:
		if hasArg {
			return terminal.Request{}, errUnexpectedArgs
		}
	}

	return req, nil
}

func stepAction(name string) (terminal.Action, error) {
	switch name {
	case "insert", "card":
		return terminal.InsertCard, nil
	case "pin":
		return terminal.CheckPin, nil
	case "complete", "done":
		return terminal.CompleteWork, nil
	default:
		return terminal.ParseAction(name)
	}
}
