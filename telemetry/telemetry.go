// Package telemetry wires the global OpenTelemetry tracer provider that the
// terminal package reports its action spans to.
package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/amp-labs/atm/envutil"
	"github.com/amp-labs/atm/errors"
	"github.com/amp-labs/atm/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
)

const (
	defaultServiceName    = "atm"
	defaultServiceVersion = "1.0.0"
	defaultTimeout        = 5 * time.Second
)

var tracerProvider *sdktrace.TracerProvider //nolint:gochecknoglobals

// Config holds the OpenTelemetry configuration.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	Endpoint       string
	Enabled        bool
	Timeout        time.Duration
}

// LoadConfigFromEnv reads OTEL_ENABLED, OTEL_SERVICE_NAME, OTEL_SERVICE_VERSION,
// OTEL_EXPORTER_OTLP_TRACES_ENDPOINT and OTEL_EXPORTER_OTLP_TRACES_TIMEOUT.
// The service name defaults to the logging subsystem.
func LoadConfigFromEnv(runningEnv string) (*Config, error) {
	enabled := envutil.Bool("OTEL_ENABLED").WithDefault(false)
	endpoint := envutil.URL("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT")
	timeout := envutil.Duration("OTEL_EXPORTER_OTLP_TRACES_TIMEOUT").WithDefault(defaultTimeout)

	var errs errors.Collection

	errs.Add(enabled.Error())
	errs.Add(endpoint.Error())
	errs.Add(timeout.Error())

	if errs.HasError() {
		return nil, errs.GetError()
	}

	serviceName := defaultServiceName
	if sub := logger.GetSubsystem(context.Background()); sub != "" {
		serviceName = sub
	}

	return &Config{
		ServiceName:    envutil.NonEmpty(envutil.String("OTEL_SERVICE_NAME")).ValueOrElse(serviceName),
		ServiceVersion: envutil.NonEmpty(envutil.String("OTEL_SERVICE_VERSION")).ValueOrElse(defaultServiceVersion),
		Environment:    runningEnv,
		Endpoint:       endpoint.ValueOrElse(""),
		Enabled:        enabled.ValueOrElse(false),
		Timeout:        timeout.ValueOrElse(defaultTimeout),
	}, nil
}

// Initialize sets up OpenTelemetry tracing with the given configuration.
// Tracing stays on the no-op global provider when disabled or when no endpoint is set.
func Initialize(ctx context.Context, config *Config) error {
	if !config.Enabled {
		slog.DebugContext(ctx, "OpenTelemetry tracing is disabled")

		return nil
	}

	if config.Endpoint == "" {
		slog.WarnContext(ctx, "OpenTelemetry endpoint not configured, tracing will be disabled")

		return nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(config.ServiceName),
			semconv.ServiceVersionKey.String(config.ServiceVersion),
			semconv.DeploymentEnvironmentKey.String(config.Environment),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(config.Endpoint),
		otlptracehttp.WithTimeout(config.Timeout),
	)
	if err != nil {
		return fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	slog.InfoContext(ctx, "OpenTelemetry tracing initialized",
		"service", config.ServiceName,
		"version", config.ServiceVersion,
		"environment", config.Environment,
		"endpoint", config.Endpoint,
	)

	return nil
}

// Shutdown flushes and stops the tracer provider, if one was started.
func Shutdown(ctx context.Context) error {
	if tracerProvider == nil {
		return nil
	}

	slog.InfoContext(ctx, "Shutting down OpenTelemetry tracer provider")

	err := tracerProvider.Shutdown(ctx)
	tracerProvider = nil

	return err
}
