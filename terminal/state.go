// Package terminal models the operational lifecycle of a single automated teller
// terminal as a finite-state machine.
//
// A Session moves between three states. In Waiting, only a card insertion is
// accepted. In VerifyingPin, the PIN is checked against a simulated connection
// oracle which may drop the session back to Waiting. In Operating, money can be
// withdrawn and deposited until the work is completed.
//
// Actions that the current state does not handle are silent no-ops: they produce
// no notification and no change. Strict mode surfaces them as errors from Do.
package terminal

import (
	"fmt"
	"strings"
)

// State is the operational phase of a terminal.
type State int

const (
	// Waiting is the dormant initial state. Only InsertCard is handled.
	Waiting State = iota
	// VerifyingPin accepts CheckPin and CompleteWork.
	VerifyingPin
	// Operating accepts Withdraw, Deposit and CompleteWork.
	Operating
)

// States returns every state in declaration order.
func States() []State {
	return []State{Waiting, VerifyingPin, Operating}
}

func (s State) String() string {
	switch s {
	case Waiting:
		return "waiting"
	case VerifyingPin:
		return "verifying_pin"
	case Operating:
		return "operating"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ParseState converts the String form of a state back into a State.
func ParseState(name string) (State, error) {
	for _, s := range States() {
		if strings.EqualFold(name, s.String()) {
			return s, nil
		}
	}

	return Waiting, fmt.Errorf("%w: %q", ErrUnknownState, name)
}

// Action is one of the five requests a terminal can receive.
type Action int

const (
	InsertCard Action = iota
	CheckPin
	Withdraw
	Deposit
	CompleteWork
)

// Actions returns every action in declaration order.
func Actions() []Action {
	return []Action{InsertCard, CheckPin, Withdraw, Deposit, CompleteWork}
}

func (a Action) String() string {
	switch a {
	case InsertCard:
		return "insert_card"
	case CheckPin:
		return "check_pin"
	case Withdraw:
		return "withdraw"
	case Deposit:
		return "deposit"
	case CompleteWork:
		return "complete_work"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// ParseAction converts the String form of an action back into an Action.
func ParseAction(name string) (Action, error) {
	for _, a := range Actions() {
		if strings.EqualFold(name, a.String()) {
			return a, nil
		}
	}

	return InsertCard, fmt.Errorf("%w: %q", ErrUnknownAction, name)
}

// amountAction reports whether the action carries an amount.
func (a Action) amountAction() bool {
	return a == Withdraw || a == Deposit
}

// Edge is one legal (state, action) pair and the states it may lead to.
type Edge struct {
	From   State
	Action Action
	To     State
	// Label describes the condition under which the edge is taken, if any.
	Label string
}

// Transitions returns the static transition table of the terminal.
func Transitions() []Edge {
	return []Edge{
		{From: Waiting, Action: InsertCard, To: VerifyingPin},
		{From: VerifyingPin, Action: CheckPin, To: Operating, Label: "connection ok"},
		{From: VerifyingPin, Action: CheckPin, To: Waiting, Label: "connection lost"},
		{From: VerifyingPin, Action: CompleteWork, To: Waiting},
		{From: Operating, Action: Withdraw, To: Operating},
		{From: Operating, Action: Deposit, To: Operating},
		{From: Operating, Action: CompleteWork, To: Waiting},
	}
}

// Handles reports whether the state has a handler for the action.
func (s State) Handles(a Action) bool {
	for _, e := range Transitions() {
		if e.From == s && e.Action == a {
			return true
		}
	}

	return false
}
