// Package should runs cleanup steps that are expected to succeed and logs
// the failures instead of returning them, so they fit in defer statements.
package should

import (
	"context"
	"io"

	"github.com/amp-labs/atm/logger"
)

// Close closes closer and logs msg at error level if that fails.
//
//	defer should.Close(ctx, srv, "failed to close metrics server")
func Close(ctx context.Context, closer io.Closer, msg string) {
	if closer == nil {
		return
	}

	if err := closer.Close(); err != nil {
		logger.Get(ctx).ErrorContext(ctx, msg, "error", err)
	}
}
