package events

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Envelope is the journal representation of a domain event.
type Envelope struct {
	Topic         string          `json:"topic"`
	ID            uuid.UUID       `json:"id"`
	Type          string          `json:"type"`
	AggregateID   uuid.UUID       `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Payload       json.RawMessage `json:"payload,omitempty"`
}

// NewEnvelope wraps event for the given topic.
func NewEnvelope(topic string, event DomainEvent) Envelope {
	return Envelope{
		Topic:         topic,
		ID:            event.EventID(),
		Type:          event.EventType(),
		AggregateID:   event.AggregateID(),
		AggregateType: event.AggregateType(),
		OccurredAt:    event.OccurredAt(),
		Payload:       event.Payload(),
	}
}

// Journal publishes events as JSON lines to an append-only writer.
type Journal struct {
	mu     sync.Mutex
	w      io.Writer
	closer io.Closer
}

// NewJournal writes to w. The caller keeps ownership of w.
func NewJournal(w io.Writer) *Journal {
	return &Journal{w: w}
}

// OpenJournal appends to the file at path, creating it if needed.
func OpenJournal(path string) (*Journal, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o640)
	if err != nil {
		return nil, fmt.Errorf("failed to open event journal: %w", err)
	}
	return &Journal{w: f, closer: f}, nil
}

// Publish appends one line per event. Lines are encoded before anything is written
// so that a marshalling failure leaves the journal untouched.
func (j *Journal) Publish(ctx context.Context, topic string, evts ...DomainEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf []byte
	for _, e := range evts {
		line, err := json.Marshal(NewEnvelope(topic, e))
		if err != nil {
			return fmt.Errorf("failed to encode event %s: %w", e.EventType(), err)
		}
		buf = append(buf, line...)
		buf = append(buf, '\n')
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	if _, err := j.w.Write(buf); err != nil {
		return fmt.Errorf("failed to append to event journal: %w", err)
	}
	return nil
}

// Close closes the underlying file when the journal owns one.
func (j *Journal) Close() error {
	if j.closer == nil {
		return nil
	}
	return j.closer.Close()
}
