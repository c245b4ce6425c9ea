package observe

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"verbose", LevelInfo},
		{"", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithWriter("warn", &buf)
	ctx := context.Background()

	log.Debug(ctx, "dropped")
	log.Info(ctx, "dropped")
	log.Warn(ctx, "kept")
	log.Error(ctx, "kept")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("entries = %d, want 2:\n%s", len(lines), buf.String())
	}
}

func TestLogger_EntryShape(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithWriter("info", &buf)

	log.Info(context.Background(), "resolved",
		F("method", "session"),
		F("duration_ms", 3))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if entry["level"] != "info" || entry["msg"] != "resolved" {
		t.Errorf("entry = %v", entry)
	}
	if entry["method"] != "session" {
		t.Errorf("field method = %v", entry["method"])
	}
	if _, ok := entry["ts"]; !ok {
		t.Error("missing ts")
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	log := WithComponent(NewLoggerWithWriter("info", &buf), "resolver")

	log.Info(context.Background(), "hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if entry["component"] != "resolver" {
		t.Errorf("component = %v", entry["component"])
	}

	// Non-structured loggers pass through unchanged.
	if got := WithComponent(NopLogger(), "x"); got != NopLogger() {
		t.Error("WithComponent wrapped a nop logger")
	}
}
