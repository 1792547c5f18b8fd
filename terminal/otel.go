package terminal

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "terminal"

// startActionSpan creates a span for one dispatched action.
// Uses the global tracer initialized by github.com/amp-labs/atm/telemetry.
// The caller is responsible for calling span.End().
//
//nolint:spancheck // Span lifecycle managed by caller
func startActionSpan(ctx context.Context, s *Session, req Request) (context.Context, trace.Span) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "terminal."+req.Action.String())
	span.SetAttributes(
		attribute.String("terminal", sanitizeTerminal(s.name)),
		attribute.String("session_id_hash", hashID(s.id)),
		attribute.String("action", req.Action.String()),
		attribute.String("from_state", s.state.String()),
	)

	if req.Action.amountAction() {
		span.SetAttributes(attribute.Float64("amount", req.Amount))
	}

	return ctx, span
}

// finishActionSpan records the outcome of an action on its span.
func finishActionSpan(span trace.Span, res Result, err error) {
	span.SetAttributes(
		attribute.String("to_state", res.To.String()),
		attribute.Bool("handled", res.Handled),
		attribute.Int("notifications", len(res.Notices)),
	)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "completed")
	}

	span.End()
}

// hashID creates a short hash of an ID for span attributes.
func hashID(id string) string {
	if id == "" {
		return ""
	}

	h := sha256.Sum256([]byte(id))

	return hex.EncodeToString(h[:4])
}
