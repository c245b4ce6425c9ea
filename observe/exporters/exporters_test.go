package exporters

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestNewTraceExporter_Stdout(t *testing.T) {
	var buf bytes.Buffer
	exp, err := NewTraceExporter(context.Background(), "stdout", &buf)
	if err != nil {
		t.Fatalf("NewTraceExporter: %v", err)
	}
	if exp == nil {
		t.Fatal("nil exporter")
	}
}

func TestNewTraceExporter_DefaultsToStdout(t *testing.T) {
	var buf bytes.Buffer
	exp, err := NewTraceExporter(context.Background(), "", &buf)
	if err != nil {
		t.Fatalf("NewTraceExporter: %v", err)
	}
	if exp == nil {
		t.Fatal("nil exporter")
	}
}

func TestNewTraceExporter_UnknownName(t *testing.T) {
	_, err := NewTraceExporter(context.Background(), "carrier-pigeon", nil)
	if err == nil {
		t.Fatal("unknown exporter name accepted")
	}
	if !strings.Contains(err.Error(), "unknown trace exporter") {
		t.Errorf("err = %v", err)
	}
}

func TestNewTraceExporter_OtlpRequiresEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")

	if _, err := NewTraceExporter(context.Background(), "otlp", nil); err == nil {
		t.Fatal("otlp exporter built without an endpoint")
	}

	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4317")
	exp, err := NewTraceExporter(context.Background(), "otlp", nil)
	if err != nil {
		t.Fatalf("NewTraceExporter with endpoint: %v", err)
	}
	if exp == nil {
		t.Fatal("nil exporter")
	}
}

func TestNewTraceExporter_None(t *testing.T) {
	exp, err := NewTraceExporter(context.Background(), "none", nil)
	if err != nil {
		t.Fatalf("NewTraceExporter: %v", err)
	}
	if exp == nil {
		t.Fatal("nil exporter")
	}
}

func TestNewMetricReader_Stdout(t *testing.T) {
	var buf bytes.Buffer
	reader, err := NewMetricReader(context.Background(), "stdout", &buf)
	if err != nil {
		t.Fatalf("NewMetricReader: %v", err)
	}
	if reader == nil {
		t.Fatal("nil reader")
	}
}

func TestNewMetricReader_Prometheus(t *testing.T) {
	reader, err := NewMetricReader(context.Background(), "prometheus", nil)
	if err != nil {
		t.Fatalf("NewMetricReader: %v", err)
	}
	if reader == nil {
		t.Fatal("nil reader")
	}
}

func TestNewMetricReader_OtlpRequiresEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_METRICS_ENDPOINT", "")

	if _, err := NewMetricReader(context.Background(), "otlp", nil); err == nil {
		t.Fatal("otlp reader built without an endpoint")
	}
}

func TestNewMetricReader_UnknownName(t *testing.T) {
	_, err := NewMetricReader(context.Background(), "carrier-pigeon", nil)
	if err == nil {
		t.Fatal("unknown exporter name accepted")
	}
	if !strings.Contains(err.Error(), "unknown metric exporter") {
		t.Errorf("err = %v", err)
	}
}
