package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateNames(t *testing.T) {
	t.Parallel()

	for _, s := range States() {
		parsed, err := ParseState(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	parsed, err := ParseState("OPERATING")
	require.NoError(t, err)
	assert.Equal(t, Operating, parsed)

	_, err = ParseState("broken")
	require.ErrorIs(t, err, ErrUnknownState)

	assert.Equal(t, "state(7)", State(7).String())
}

func TestActionNames(t *testing.T) {
	t.Parallel()

	for _, a := range Actions() {
		parsed, err := ParseAction(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, parsed)
	}

	_, err := ParseAction("transfer")
	require.ErrorIs(t, err, ErrUnknownAction)
}

func TestHandles(t *testing.T) {
	t.Parallel()

	want := map[State][]Action{
		Waiting:      {InsertCard},
		VerifyingPin: {CheckPin, CompleteWork},
		Operating:    {Withdraw, Deposit, CompleteWork},
	}

	for _, s := range States() {
		for _, a := range Actions() {
			assert.Equal(t, contains(want[s], a), s.Handles(a), "%s handles %s", s, a)
		}
	}
}

func contains(actions []Action, a Action) bool {
	for _, x := range actions {
		if x == a {
			return true
		}
	}

	return false
}

func TestMermaid(t *testing.T) {
	t.Parallel()

	out := Mermaid(-1)

	assert.Contains(t, out, "[*] --> waiting")
	assert.Contains(t, out, "verifying_pin --> operating: check_pin (connection ok)")
	assert.Contains(t, out, "verifying_pin --> waiting: check_pin (connection lost)")
	assert.Contains(t, out, "operating --> waiting: complete_work")
	assert.NotContains(t, out, "classDef")

	assert.Contains(t, Mermaid(VerifyingPin), "class verifying_pin current")
}
