package observe

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/deskforge/authcore/observe/exporters"
)

// Config holds configuration for the optional provider setup.
type Config struct {
	ServiceName string
	Version     string

	// TracingEnabled installs a tracer provider.
	TracingEnabled bool

	// MetricsEnabled installs a meter provider.
	MetricsEnabled bool

	// TraceExporter selects the span exporter backend: stdout, otlp, none.
	// Default: stdout.
	TraceExporter string

	// MetricExporter selects the metric backend: stdout, otlp, prometheus,
	// none. Default: stdout.
	MetricExporter string

	// Writer receives telemetry exported by the stdout backends.
	// Default: os.Stdout.
	Writer io.Writer

	// LogLevel for the logger returned by Setup. Default: "info".
	LogLevel string
}

// Provider bundles the telemetry pieces built by Setup.
type Provider struct {
	Logger  Logger
	Metrics *Metrics

	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
}

// Setup builds trace/metric providers for hosts that do not configure
// OpenTelemetry themselves, registers them globally, and returns a logger
// plus metric instruments ready to hand to the resolver. The exporter
// backends are chosen per config; the otlp backends read the standard
// OTEL_EXPORTER_OTLP_* environment variables.
func Setup(ctx context.Context, cfg Config) (*Provider, error) {
	if cfg.ServiceName == "" {
		return nil, errors.New("observe: service name is required")
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.Version),
	))
	if err != nil {
		return nil, fmt.Errorf("observe: build resource: %w", err)
	}

	p := &Provider{Logger: NewLogger(cfg.LogLevel)}

	if cfg.TracingEnabled {
		exp, err := exporters.NewTraceExporter(ctx, cfg.TraceExporter, cfg.Writer)
		if err != nil {
			return nil, fmt.Errorf("observe: trace exporter: %w", err)
		}
		p.tracerProvider = sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exp),
			sdktrace.WithResource(res),
		)
		otel.SetTracerProvider(p.tracerProvider)
	}

	if cfg.MetricsEnabled {
		reader, err := exporters.NewMetricReader(ctx, cfg.MetricExporter, cfg.Writer)
		if err != nil {
			return nil, fmt.Errorf("observe: metric reader: %w", err)
		}
		p.meterProvider = sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(reader),
			sdkmetric.WithResource(res),
		)
		otel.SetMeterProvider(p.meterProvider)

		m, err := NewMetrics(p.meterProvider.Meter("authcore"))
		if err != nil {
			return nil, fmt.Errorf("observe: instruments: %w", err)
		}
		p.Metrics = m
	}

	return p, nil
}

// Shutdown flushes and stops the providers built by Setup.
func (p *Provider) Shutdown(ctx context.Context) error {
	var errs []error
	if p.tracerProvider != nil {
		if err := p.tracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if p.meterProvider != nil {
		if err := p.meterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
