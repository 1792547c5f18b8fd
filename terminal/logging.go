package terminal

import (
	"context"
	"log/slog"

	"github.com/amp-labs/atm/logger"
)

// Logger provides logging hooks for session dispatch.
type Logger interface {
	ActionReceived(ctx context.Context, state State, req Request)
	TransitionExecuted(ctx context.Context, from, to State, action Action)
	ActionIgnored(ctx context.Context, state State, action Action, err error)
}

// DefaultLogger implements Logger on slog. Routine events are logged at debug
// level, transitions at info and strict-mode rejections at warn.
type DefaultLogger struct {
	level slog.Level
	base  *slog.Logger
}

// NewDefaultLogger creates a logger that resolves its slog.Logger from the call
// context through logger.Get.
func NewDefaultLogger() *DefaultLogger {
	return &DefaultLogger{level: slog.LevelDebug}
}

// NewSlogLogger creates a logger writing to l regardless of the call context.
func NewSlogLogger(l *slog.Logger) *DefaultLogger {
	return &DefaultLogger{level: slog.LevelDebug, base: l}
}

func (l *DefaultLogger) get(ctx context.Context) *slog.Logger {
	if l.base != nil {
		return l.base
	}

	return logger.Get(ctx)
}

func (l *DefaultLogger) ActionReceived(ctx context.Context, state State, req Request) {
	fields := []any{
		"state", state.String(),
		"action", req.Action.String(),
	}

	if req.Action.amountAction() {
		fields = append(fields, "amount", req.Amount)
	}

	// The PIN is never logged.
	l.get(ctx).Log(ctx, l.level, "Action received", fields...)
}

func (l *DefaultLogger) TransitionExecuted(ctx context.Context, from, to State, action Action) {
	l.get(ctx).InfoContext(ctx, "Transition executed",
		"from", from.String(),
		"to", to.String(),
		"action", action.String(),
	)
}

func (l *DefaultLogger) ActionIgnored(ctx context.Context, state State, action Action, err error) {
	if err != nil {
		l.get(ctx).WarnContext(ctx, "Action rejected",
			"state", state.String(),
			"action", action.String(),
			"error", err,
		)

		return
	}

	l.get(ctx).Log(ctx, l.level, "Action ignored",
		"state", state.String(),
		"action", action.String(),
	)
}
