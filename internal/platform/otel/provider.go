// Package otel wires OpenTelemetry tracing for the shell's processes.
package otel

import (
	"context"
	"os"
	"strings"

	"github.com/louisbranch/authshell/internal/platform/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const (
	// EndpointEnv names the OTLP HTTP collector URL. Empty disables tracing.
	EndpointEnv = config.EnvPrefix + "OTEL_ENDPOINT"
	// EnabledEnv switches tracing off when set to "false".
	EnabledEnv = config.EnvPrefix + "OTEL_ENABLED"
)

// Setup registers a global tracer provider for serviceName.
//
// Tracing is opt-in. Without an endpoint the returned shutdown is a no-op and
// the global provider stays the default no-op one, so spans started by the
// handlers cost nothing.
func Setup(ctx context.Context, serviceName string) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }

	if strings.EqualFold(strings.TrimSpace(os.Getenv(EnabledEnv)), "false") {
		return noop, nil
	}
	endpoint := strings.TrimSpace(os.Getenv(EndpointEnv))
	if endpoint == "" {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
	if err != nil {
		return noop, err
	}
	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(serviceName)))
	if err != nil {
		return noop, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}
