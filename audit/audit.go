package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/deskforge/authcore/observe"
)

// Event describes one authenticated request.
type Event struct {
	// ID is a unique event identifier.
	ID string

	// Time is when the event was recorded.
	Time time.Time

	// Principal is the resolved identity id.
	Principal string

	// OrganizationID is the resolved organization.
	OrganizationID string

	// AuthMethod is the scheme that authenticated the request.
	AuthMethod string

	// RequestMethod and Path identify the request.
	RequestMethod string
	Path          string

	// ClientIP and UserAgent describe the caller.
	ClientIP  string
	UserAgent string

	// Outcome is "allowed" or "rate_limited".
	Outcome string
}

// NewEvent creates an event with a fresh id and timestamp.
func NewEvent() Event {
	return Event{
		ID:   uuid.NewString(),
		Time: time.Now().UTC(),
	}
}

// Sink receives audit events.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: returned errors are logged by callers, never propagated to the
//   request.
type Sink interface {
	Record(ctx context.Context, e Event) error
}

// LogSink writes events to a structured logger.
type LogSink struct {
	log observe.Logger
}

// NewLogSink creates a sink writing to the given logger.
func NewLogSink(log observe.Logger) *LogSink {
	return &LogSink{log: log}
}

// Record logs the event at info level.
func (s *LogSink) Record(ctx context.Context, e Event) error {
	s.log.Info(ctx, "audit",
		observe.F("event_id", e.ID),
		observe.F("principal", e.Principal),
		observe.F("organization_id", e.OrganizationID),
		observe.F("auth_method", e.AuthMethod),
		observe.F("request_method", e.RequestMethod),
		observe.F("path", e.Path),
		observe.F("client_ip", e.ClientIP),
		observe.F("user_agent", e.UserAgent),
		observe.F("outcome", e.Outcome),
	)
	return nil
}

// MemorySink collects events in memory for tests.
type MemorySink struct {
	mu     sync.Mutex
	events []Event
}

// NewMemorySink creates an empty memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Record appends the event.
func (s *MemorySink) Record(_ context.Context, e Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

// Events returns a copy of the recorded events.
func (s *MemorySink) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

var (
	_ Sink = (*LogSink)(nil)
	_ Sink = (*MemorySink)(nil)
)
