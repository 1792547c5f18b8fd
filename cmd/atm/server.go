package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/amp-labs/atm/should"
	"github.com/amp-labs/atm/terminal"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

// newMetricsRouter exposes Prometheus metrics and a health probe reporting the
// terminal's current state.
func newMetricsRouter(state func() terminal.State) http.Handler {
	r := chi.NewRouter()

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok " + state().String() + "\n"))
	})

	return r
}

// startMetricsServer serves the router on addr until stop is called.
func startMetricsServer(ctx context.Context, addr string, handler http.Handler) (stop func(context.Context)) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: shutdownTimeout,
	}

	go func() {
		slog.InfoContext(ctx, "Serving metrics", "addr", addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.ErrorContext(ctx, "Metrics server failed", "error", err)
		}
	}()

	return func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			slog.ErrorContext(ctx, "Graceful shutdown did not complete", "error", err)

			should.Close(ctx, srv, "Error killing server")
		}
	}
}
