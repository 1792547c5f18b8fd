package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/amp-labs/atm/terminal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedPrompter answers menu prompts from fixed values.
type scriptedPrompter struct {
	choices  []string
	confirm  bool
	amount   float64
	confirms int
}

func (s *scriptedPrompter) Select(_ string, choices ...string) (int, string, error) {
	choice := s.choices[0]
	s.choices = s.choices[1:]

	return slices.Index(choices, choice), choice, nil
}

func (s *scriptedPrompter) String(string, rune) (string, error) { return "1234", nil }

func (s *scriptedPrompter) Amount(string) (float64, error) { return s.amount, nil }

func (s *scriptedPrompter) Confirm(string) (bool, error) {
	s.confirms++

	return s.confirm, nil
}

func newMenuSession(t *testing.T) (*terminal.Session, *liveState) {
	t.Helper()

	sess, err := terminal.NewSession(100, 0,
		terminal.WithName("menu-"+t.Name()),
		terminal.WithOracle(terminal.AlwaysConnected()),
		terminal.WithLogger(nil),
	)
	require.NoError(t, err)

	return sess, newLiveState(sess.State())
}

func TestStepPublishesState(t *testing.T) {
	t.Parallel()

	sess, live := newMenuSession(t)
	p := &scriptedPrompter{
		choices: []string{menuInsert, menuPin, menuWithdraw, menuBalance, menuComplete},
		amount:  40,
	}

	var out bytes.Buffer

	want := []terminal.State{terminal.VerifyingPin, terminal.Operating, terminal.Operating, terminal.Operating, terminal.Waiting}
	for _, state := range want {
		require.NoError(t, step(context.Background(), &out, p, sess, live))
		assert.Equal(t, state, live.Load())
	}

	assert.InDelta(t, 60, sess.Balance(), 1e-9)
	assert.Equal(t, "Balance: 60.00\n", out.String())
}

func TestQuitAsksForConfirmation(t *testing.T) {
	t.Parallel()

	sess, live := newMenuSession(t)

	stay := &scriptedPrompter{choices: []string{menuQuit}}
	require.NoError(t, step(context.Background(), &bytes.Buffer{}, stay, sess, live))
	assert.Equal(t, 1, stay.confirms)

	leave := &scriptedPrompter{choices: []string{menuQuit}, confirm: true}
	require.ErrorIs(t, step(context.Background(), &bytes.Buffer{}, leave, sess, live), errQuit)
}

func TestHealthzDuringMenuActions(t *testing.T) {
	t.Parallel()

	sess, live := newMenuSession(t)
	router := newMetricsRouter(live.Load)

	var wg sync.WaitGroup

	bodies := make(chan string, 200)

	wg.Add(1)

	go func() {
		defer wg.Done()

		for range 200 {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			bodies <- rec.Body.String()
		}
	}()

	p := &scriptedPrompter{}
	for range 100 {
		p.choices = append(p.choices, menuInsert, menuComplete)
	}

	for range 200 {
		require.NoError(t, step(context.Background(), &bytes.Buffer{}, p, sess, live))
	}

	wg.Wait()
	close(bodies)

	for body := range bodies {
		state, err := terminal.ParseState(strings.TrimSuffix(strings.TrimPrefix(body, "ok "), "\n"))
		require.NoError(t, err)
		assert.Contains(t, []terminal.State{terminal.Waiting, terminal.VerifyingPin}, state)
	}

	assert.Equal(t, terminal.Waiting, live.Load())
}
