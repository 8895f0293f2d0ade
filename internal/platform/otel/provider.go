// Package otel wires OpenTelemetry tracing for the site's processes.
package otel

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Options controls tracing setup.
type Options struct {
	// Enabled turns tracing on. Tracing also requires an Endpoint.
	Enabled bool `env:"OTEL_ENABLED" envDefault:"false"`
	// Endpoint is the OTLP/HTTP collector URL.
	Endpoint string `env:"OTEL_ENDPOINT"`
	// SampleRatio is the fraction of root spans that are recorded.
	SampleRatio float64 `env:"OTEL_SAMPLE_RATIO" envDefault:"1"`
	// Environment tags spans with a deployment name such as "production".
	Environment string `env:"OTEL_ENVIRONMENT"`
}

// Shutdown flushes pending spans.
type Shutdown func(context.Context) error

func noop(context.Context) error { return nil }

// Setup installs the global tracer provider for service. Tracing is
// opt-in: without Enabled and an Endpoint it installs nothing and returns
// a no-op Shutdown. Callers defer the returned Shutdown.
func Setup(ctx context.Context, service string, opts Options) (Shutdown, error) {
	endpoint := strings.TrimSpace(opts.Endpoint)
	if !opts.Enabled || endpoint == "" {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
	if err != nil {
		return noop, fmt.Errorf("otlp exporter: %w", err)
	}
	res, err := resource.New(ctx, resource.WithAttributes(resourceAttributes(service, opts)...))
	if err != nil {
		return noop, fmt.Errorf("otel resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler(opts.SampleRatio)),
	)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return provider.Shutdown, nil
}

func resourceAttributes(service string, opts Options) []attribute.KeyValue {
	attrs := []attribute.KeyValue{semconv.ServiceName(service)}
	if env := strings.TrimSpace(opts.Environment); env != "" {
		attrs = append(attrs, semconv.DeploymentEnvironment(env))
	}
	return attrs
}

// sampler records everything unless a ratio strictly between 0 and 1 is
// set, in which case root spans are sampled and children follow.
func sampler(ratio float64) sdktrace.Sampler {
	if ratio <= 0 || ratio >= 1 {
		return sdktrace.AlwaysSample()
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
}
