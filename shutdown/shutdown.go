// Package shutdown turns SIGINT/SIGTERM into context cancellation and runs
// registered cleanup hooks exactly once.
package shutdown

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/atomic"
)

type hook struct {
	name string
	fn   func(ctx context.Context)
}

var (
	mut       sync.Mutex             //nolint:gochecknoglobals
	hooks     []hook                 //nolint:gochecknoglobals
	channel   chan os.Signal         //nolint:gochecknoglobals
	triggered = atomic.NewBool(false) //nolint:gochecknoglobals
)

// BeforeShutdown registers fn to run when shutdown begins. Hooks run in
// registration order with the still-live parent context.
func BeforeShutdown(name string, fn func(ctx context.Context)) {
	mut.Lock()
	defer mut.Unlock()

	hooks = append(hooks, hook{name: name, fn: fn})
}

// Shutdown triggers the shutdown process programmatically.
func Shutdown() {
	mut.Lock()
	ch := channel
	mut.Unlock()

	if ch != nil {
		select {
		case ch <- os.Interrupt:
		default:
		}
	}
}

// Triggered reports whether shutdown has begun.
func Triggered() bool {
	return triggered.Load()
}

// SetupHandler listens for SIGINT and SIGTERM and returns a context derived from
// parent that is canceled once the hooks have run.
func SetupHandler(parent context.Context) context.Context {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	mut.Lock()
	channel = ch
	mut.Unlock()

	ctx, cancel := context.WithCancel(parent)

	go func() {
		defer cancel()

		select {
		case sig := <-ch:
			slog.WarnContext(parent, "Received "+sig.String()+", shutting down...")
		case <-parent.Done():
		}

		signal.Stop(ch)

		mut.Lock()
		channel = nil
		mut.Unlock()

		cleanup(parent)
	}()

	return ctx
}

func cleanup(ctx context.Context) {
	if !triggered.CompareAndSwap(false, true) {
		return
	}

	mut.Lock()
	pending := hooks
	hooks = nil
	mut.Unlock()

	for _, h := range pending {
		slog.DebugContext(ctx, "Running shutdown hook", "hook", h.name)
		h.fn(ctx)
	}
}

// reset restores the package to its initial state.
func reset() {
	mut.Lock()
	defer mut.Unlock()

	hooks = nil
	channel = nil
	triggered.Store(false)
}
