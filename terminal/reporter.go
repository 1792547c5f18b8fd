package terminal

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// NoticeKind identifies a user-facing status message.
type NoticeKind int

const (
	CardInserted NoticeKind = iota
	PinAccepted
	ConnectionLost
	WorkCompleted
	MoneyTaken
	InsufficientFunds
	Funded
)

func (k NoticeKind) String() string {
	switch k {
	case CardInserted:
		return "card_inserted"
	case PinAccepted:
		return "pin_accepted"
	case ConnectionLost:
		return "connection_lost"
	case WorkCompleted:
		return "work_completed"
	case MoneyTaken:
		return "money_taken"
	case InsufficientFunds:
		return "insufficient_funds"
	case Funded:
		return "funded"
	default:
		return fmt.Sprintf("notice(%d)", int(k))
	}
}

// Message is the text shown to the card holder.
func (k NoticeKind) Message() string {
	switch k {
	case CardInserted:
		return "Card inserted!"
	case PinAccepted:
		return "PIN code entered successfully!"
	case ConnectionLost:
		return "Error: lost connection with server"
	case WorkCompleted:
		return "Work completed!"
	case MoneyTaken:
		return "Money taken!"
	case InsufficientFunds:
		return "Not enough money!"
	case Funded:
		return "Account has been successfully funded!"
	default:
		return k.String()
	}
}

// Notification is a single status message emitted by a state handler.
type Notification struct {
	Kind    NoticeKind
	Message string
	// Amount is set for money-related notices.
	Amount float64
	// State is the state the handler ran in.
	State State
}

func (n Notification) String() string {
	return n.Message
}

func newNotice(kind NoticeKind, state State, amount float64) Notification {
	return Notification{
		Kind:    kind,
		Message: kind.Message(),
		Amount:  amount,
		State:   state,
	}
}

// Reporter receives every notification a session emits. The core does not
// care where they end up.
type Reporter interface {
	Report(ctx context.Context, n Notification)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(ctx context.Context, n Notification)

func (f ReporterFunc) Report(ctx context.Context, n Notification) {
	f(ctx, n)
}

// DiscardReporter drops every notification.
var DiscardReporter Reporter = ReporterFunc(func(context.Context, Notification) {}) //nolint:gochecknoglobals

// WriterReporter writes one message per line to an io.Writer.
type WriterReporter struct {
	mu  sync.Mutex
	out io.Writer
}

// NewWriterReporter creates a reporter printing to out.
func NewWriterReporter(out io.Writer) *WriterReporter {
	return &WriterReporter{out: out}
}

func (r *WriterReporter) Report(ctx context.Context, n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := fmt.Fprintln(r.out, n.Message); err != nil {
		slog.ErrorContext(ctx, "failed to write notification", "kind", n.Kind.String(), "error", err)
	}
}

// LogReporter emits notifications as structured log records.
type LogReporter struct {
	logger *slog.Logger
}

// NewLogReporter creates a reporter logging through l. A nil l uses slog.Default.
func NewLogReporter(l *slog.Logger) *LogReporter {
	if l == nil {
		l = slog.Default()
	}

	return &LogReporter{logger: l}
}

func (r *LogReporter) Report(ctx context.Context, n Notification) {
	r.logger.InfoContext(ctx, n.Message,
		"notice", n.Kind.String(),
		"state", n.State.String(),
		"amount", n.Amount,
	)
}

// MultiReporter fans a notification out to several reporters in order.
type MultiReporter []Reporter

func (m MultiReporter) Report(ctx context.Context, n Notification) {
	for _, r := range m {
		if r != nil {
			r.Report(ctx, n)
		}
	}
}

// Recorder keeps every notification in memory.
type Recorder struct {
	mu      sync.Mutex
	notices []Notification
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Report(_ context.Context, n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.notices = append(r.notices, n)
}

// Notifications returns a copy of everything recorded so far.
func (r *Recorder) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Notification, len(r.notices))
	copy(out, r.notices)

	return out
}

// Kinds returns the kinds of every recorded notification, in order.
func (r *Recorder) Kinds() []NoticeKind {
	notices := r.Notifications()

	kinds := make([]NoticeKind, len(notices))
	for i, n := range notices {
		kinds[i] = n.Kind
	}

	return kinds
}

// Messages returns the text of every recorded notification, in order.
func (r *Recorder) Messages() []string {
	notices := r.Notifications()

	msgs := make([]string, len(notices))
	for i, n := range notices {
		msgs[i] = n.Message
	}

	return msgs
}

// Reset forgets all recorded notifications.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.notices = nil
}
