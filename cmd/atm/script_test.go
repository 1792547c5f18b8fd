package main

import (
	"testing"

	"github.com/amp-labs/atm/terminal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScript(t *testing.T) {
	t.Parallel()

	reqs, err := parseScript(defaultScript)
	require.NoError(t, err)

	assert.Equal(t, []terminal.Request{
		{Action: terminal.InsertCard},
		{Action: terminal.CheckPin, PIN: "hello"},
		{Action: terminal.Withdraw, Amount: 100},
		{Action: terminal.Deposit, Amount: 150},
		{Action: terminal.CompleteWork},
	}, reqs)
}

func TestParseScriptAliases(t *testing.T) {
	t.Parallel()

	reqs, err := parseScript("card, check_pin:0000 ,withdraw:12.5,done")
	require.NoError(t, err)
	require.Len(t, reqs, 4)

	assert.Equal(t, terminal.InsertCard, reqs[0].Action)
	assert.Equal(t, "0000", reqs[1].PIN)
	assert.InDelta(t, 12.5, reqs[2].Amount, 1e-9)
	assert.Equal(t, terminal.CompleteWork, reqs[3].Action)
}

func TestParseScriptErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		script string
		want   error
	}{
		{"empty step", "insert,,complete", errEmptyStep},
		{"missing amount", "withdraw", errMissingAmount},
		{"argument on insert", "insert:now", errUnexpectedArgs},
		{"unknown step", "dance", terminal.ErrUnknownAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := parseScript(tt.script)
			require.ErrorIs(t, err, tt.want)
		})
	}

	_, err := parseScript("deposit:lots")
	require.Error(t, err)
}
