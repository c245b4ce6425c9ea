package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/deskforge/authcore/observe"
)

func TestNewEvent(t *testing.T) {
	a, b := NewEvent(), NewEvent()
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("event ids not unique: %q %q", a.ID, b.ID)
	}
	if a.Time.IsZero() {
		t.Error("event time not set")
	}
}

func TestMemorySink(t *testing.T) {
	sink := NewMemorySink()
	ctx := context.Background()

	e := NewEvent()
	e.Principal = "user-1"
	if err := sink.Record(ctx, e); err != nil {
		t.Fatalf("Record: %v", err)
	}

	events := sink.Events()
	if len(events) != 1 || events[0].Principal != "user-1" {
		t.Fatalf("events = %+v", events)
	}

	// Returned slice is a copy.
	events[0].Principal = "mutated"
	if sink.Events()[0].Principal != "user-1" {
		t.Error("Events() exposed internal slice")
	}
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLogSink(observe.NewLoggerWithWriter("info", &buf))

	e := NewEvent()
	e.Principal = "user-1"
	e.AuthMethod = "session"
	e.Outcome = "allowed"
	if err := sink.Record(context.Background(), e); err != nil {
		t.Fatalf("Record: %v", err)
	}

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("sink wrote invalid JSON: %v", err)
	}
	if entry["principal"] != "user-1" || entry["auth_method"] != "session" || entry["outcome"] != "allowed" {
		t.Errorf("entry = %v", entry)
	}
}
