package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var records []map[string]any

	dec := json.NewDecoder(buf)
	for dec.More() {
		rec := map[string]any{}
		require.NoError(t, dec.Decode(&rec))

		records = append(records, rec)
	}

	return records
}

func TestLogger(t *testing.T) { //nolint:paralleltest // modifies the default slog logger
	var buf bytes.Buffer

	ConfigureLoggingWithOptions(Options{
		Subsystem: "test",
		JSON:      true,
		Output:    &buf,
	})

	Get(context.Background()).Info("default subsystem")

	ctx := WithSubsystem(context.Background(), "overridden")
	Get(ctx).Info("overridden subsystem")

	ctx = With(context.Background(), "session_id", "abc")
	ctx = With(ctx, "terminal", "lobby")
	Get(ctx).Info("with values")

	Get(WithMuted(ctx, true)).Info("never written")

	records := decodeLines(t, &buf)
	require.Len(t, records, 3)

	assert.Equal(t, "test", records[0]["subsystem"])
	assert.Equal(t, "overridden", records[1]["subsystem"])
	assert.Equal(t, "abc", records[2]["session_id"])
	assert.Equal(t, "lobby", records[2]["terminal"])
}

func TestLegacy(t *testing.T) { //nolint:paralleltest // modifies the default log logger
	var buf bytes.Buffer

	ConfigureLoggingWithOptions(Options{
		Subsystem:   "test",
		JSON:        true,
		MinLevel:    slog.LevelDebug,
		LegacyLevel: slog.LevelInfo,
		Output:      &buf,
	})

	log.Println("legacy line")

	records := decodeLines(t, &buf)
	require.Len(t, records, 1)
	assert.Equal(t, "legacy line", records[0]["msg"])
}

func TestConfigureLogging(t *testing.T) { //nolint:paralleltest // uses t.Setenv
	var buf bytes.Buffer

	t.Setenv("LOG_LEVEL", "warn")

	l, err := ConfigureLogging("atm", WithJSON(true), WithOutput(&buf))
	require.NoError(t, err)

	l.Info("filtered")
	l.Warn("kept")

	records := decodeLines(t, &buf)
	require.Len(t, records, 1)
	assert.Equal(t, "kept", records[0]["msg"])
	assert.Equal(t, "atm", GetSubsystem(context.Background()))
}

func TestConfigureLoggingInvalidEnv(t *testing.T) { //nolint:paralleltest // uses t.Setenv
	t.Setenv("LOG_OUTPUT", "syslog")

	_, err := ConfigureLogging("atm")
	require.ErrorIs(t, err, ErrInvalidLogOutput)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWithNoValuesReturnsSameContext(t *testing.T) {
	t.Parallel()

	ctx := WithSubsystem(context.Background(), "x")
	assert.Equal(t, ctx, With(ctx))
}
