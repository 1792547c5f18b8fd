package shutdown

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

func TestBeforeShutdown(t *testing.T) { //nolint:paralleltest // global hook state
	reset()

	var order []string

	BeforeShutdown("first", func(context.Context) { order = append(order, "first") })
	BeforeShutdown("second", func(context.Context) { order = append(order, "second") })

	cleanup(context.Background())
	cleanup(context.Background())

	assert.Equal(t, []string{"first", "second"}, order)
	assert.True(t, Triggered())
}

func TestSetupHandler(t *testing.T) { //nolint:paralleltest // global hook state
	reset()

	ctx := SetupHandler(context.Background())

	select {
	case <-ctx.Done():
		t.Fatal("context should not be canceled initially")
	default:
	}

	called := atomic.NewBool(false)

	BeforeShutdown("flag", func(context.Context) { called.Store(true) })

	Shutdown()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context was not canceled after shutdown")
	}

	require.True(t, called.Load())
}

func TestSetupHandlerParentCanceled(t *testing.T) { //nolint:paralleltest // global hook state
	reset()

	parent, cancel := context.WithCancel(context.Background())
	ctx := SetupHandler(parent)

	cancel()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context was not canceled with parent")
	}
}
