package terminal

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/amp-labs/atm/logger"
	"github.com/google/uuid"
)

// Transition records a state change in the session history.
type Transition struct {
	From      State
	To        State
	Action    Action
	Timestamp time.Time
}

// Result describes what a dispatched action did.
type Result struct {
	From    State
	To      State
	Handled bool
	Notices []Notification
}

// Session is one terminal: its balance, its failure probability and its current
// state. A Session is not safe for concurrent use; callers serialize access.
type Session struct {
	id                 string
	name               string
	balance            float64
	failureProbability float64
	state              State
	strict             bool
	oracle             *ConnectionOracle
	reporter           Reporter
	logger             Logger
	history            []Transition
}

// Option configures a Session.
type Option func(*Session)

// WithReporter sets the sink for notifications. Defaults to DiscardReporter.
func WithReporter(r Reporter) Option {
	return func(s *Session) {
		s.reporter = r
	}
}

// WithOracle sets the connection oracle. Defaults to a time-seeded oracle.
func WithOracle(o *ConnectionOracle) Option {
	return func(s *Session) {
		s.oracle = o
	}
}

// WithLogger sets the logging hooks. A nil logger disables them.
func WithLogger(l Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// WithStrict makes Do return errors for ignored actions and non-positive amounts.
func WithStrict(strict bool) Option {
	return func(s *Session) {
		s.strict = strict
	}
}

// WithID overrides the generated session ID.
func WithID(id string) Option {
	return func(s *Session) {
		s.id = id
	}
}

// WithName labels the terminal in logs, metrics and spans.
func WithName(name string) Option {
	return func(s *Session) {
		s.name = name
	}
}

// NewSession creates a session in the Waiting state.
func NewSession(initialBalance, failureProbability float64, opts ...Option) (*Session, error) {
	if initialBalance < 0 {
		return nil, fmt.Errorf("%w: %v", ErrNegativeBalance, initialBalance)
	}

	if !validProbability(failureProbability) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProbability, failureProbability)
	}

	sess := &Session{
		id:                 uuid.New().String(),
		balance:            initialBalance,
		failureProbability: failureProbability,
		state:              Waiting,
		reporter:           DiscardReporter,
		logger:             NewDefaultLogger(),
		history:            []Transition{},
	}

	for _, opt := range opts {
		opt(sess)
	}

	if sess.oracle == nil {
		sess.oracle = NewConnectionOracle(nil)
	}

	if sess.reporter == nil {
		sess.reporter = DiscardReporter
	}

	return sess, nil
}

func validProbability(p float64) bool {
	return !math.IsNaN(p) && p >= 0 && p <= 1
}

// NewSessionFromConfig creates a session from a validated configuration.
// Options are applied after the ones derived from the config.
func NewSessionFromConfig(cfg *Config, opts ...Option) (*Session, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	base := []Option{
		WithName(cfg.Name),
		WithStrict(cfg.Strict),
	}

	if cfg.Seed != nil {
		base = append(base, WithOracle(NewSeededOracle(*cfg.Seed)))
	}

	return NewSession(cfg.InitialBalance, cfg.FailureProbability, append(base, opts...)...)
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Name returns the terminal label.
func (s *Session) Name() string {
	return s.name
}

// Balance returns the current balance.
func (s *Session) Balance() float64 {
	return s.balance
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// FailureProbability returns the configured connection failure probability.
func (s *Session) FailureProbability() float64 {
	return s.failureProbability
}

// Strict reports whether Do surfaces ignored actions as errors.
func (s *Session) Strict() bool {
	return s.strict
}

// History returns a copy of the recorded state changes.
func (s *Session) History() []Transition {
	out := make([]Transition, len(s.history))
	copy(out, s.history)

	return out
}

// InsertCard moves a waiting terminal to PIN verification.
func (s *Session) InsertCard() {
	s.fire(Request{Action: InsertCard})
}

// CheckPin verifies the PIN. Only the simulated connection decides the outcome.
func (s *Session) CheckPin(pin string) {
	s.fire(Request{Action: CheckPin, PIN: pin})
}

// Withdraw takes amount from the balance if it is covered.
func (s *Session) Withdraw(amount float64) {
	s.fire(Request{Action: Withdraw, Amount: amount})
}

// Deposit acknowledges a deposit. The balance is not credited.
func (s *Session) Deposit(amount float64) {
	s.fire(Request{Action: Deposit, Amount: amount})
}

// CompleteWork ends the current card session and returns to Waiting.
func (s *Session) CompleteWork() {
	s.fire(Request{Action: CompleteWork})
}

// fire dispatches a request and discards the error, keeping the five actions total.
func (s *Session) fire(req Request) {
	_, _ = s.Do(context.Background(), req)
}

// Do dispatches req to the current state's handler and applies the resulting
// transition. In permissive mode the error is always nil. In strict mode an
// action the current state does not handle yields ErrInvalidStateTransition,
// and a non-positive withdraw or deposit amount yields ErrNonPositiveAmount.
// Neither has any effect on the session.
func (s *Session) Do(ctx context.Context, req Request) (res Result, err error) {
	ctx = logger.With(ctx, "session_id", s.id, "terminal", sanitizeTerminal(s.name))

	ctx, span := startActionSpan(ctx, s, req)
	defer func() {
		finishActionSpan(span, res, err)
	}()

	from := s.state
	res = Result{From: from, To: from}

	if s.logger != nil {
		s.logger.ActionReceived(ctx, from, req)
	}

	if !from.Handles(req.Action) {
		if s.strict {
			err = WrapStateError(from, req.Action, ErrInvalidStateTransition)
		}

		s.ignore(ctx, from, req.Action, outcomeIgnored, err)

		return res, err
	}

	if s.strict && req.Action.amountAction() && req.Amount <= 0 {
		err = WrapStateError(from, req.Action, fmt.Errorf("%w: %v", ErrNonPositiveAmount, req.Amount))

		s.ignore(ctx, from, req.Action, outcomeRejected, err)

		return res, err
	}

	out := handle(from, &handlerEnv{
		terminal:           s.name,
		balance:            &s.balance,
		failureProbability: s.failureProbability,
		oracle:             s.oracle,
	}, req)

	actionsTotal.WithLabelValues(sanitizeTerminal(s.name), req.Action.String(), from.String(), outcomeHandled).Inc()

	for _, n := range out.notices {
		notificationsTotal.WithLabelValues(sanitizeTerminal(s.name), n.Kind.String()).Inc()
		s.reporter.Report(ctx, n)
	}

	if out.next != from {
		s.history = append(s.history, Transition{
			From:      from,
			To:        out.next,
			Action:    req.Action,
			Timestamp: time.Now(),
		})

		transitionsTotal.WithLabelValues(sanitizeTerminal(s.name), from.String(), out.next.String()).Inc()

		if s.logger != nil {
			s.logger.TransitionExecuted(ctx, from, out.next, req.Action)
		}
	}

	s.state = out.next

	res.To = out.next
	res.Handled = out.handled
	res.Notices = out.notices

	return res, nil
}

func (s *Session) ignore(ctx context.Context, state State, action Action, outcome string, err error) {
	actionsTotal.WithLabelValues(sanitizeTerminal(s.name), action.String(), state.String(), outcome).Inc()

	if s.logger != nil {
		s.logger.ActionIgnored(ctx, state, action, err)
	}
}
