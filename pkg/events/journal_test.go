package events

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewBaseEvent(t *testing.T) {
	aggregateID := uuid.New()
	at := time.Date(2024, time.January, 15, 10, 0, 0, 0, time.FixedZone("CET", 3600))

	event := NewBaseEvent("transfer_file.generated", aggregateID, "TransferFile", at, []byte(`{"n":1}`))

	if event.EventID() == uuid.Nil {
		t.Error("expected non-nil event ID")
	}
	if event.EventType() != "transfer_file.generated" {
		t.Errorf("event type = %q", event.EventType())
	}
	if event.AggregateID() != aggregateID {
		t.Errorf("aggregate ID = %v, want %v", event.AggregateID(), aggregateID)
	}
	if event.AggregateType() != "TransferFile" {
		t.Errorf("aggregate type = %q", event.AggregateType())
	}
	if !event.OccurredAt().Equal(at) || event.OccurredAt().Location() != time.UTC {
		t.Errorf("occurredAt = %v, want %v in UTC", event.OccurredAt(), at)
	}
}

func TestBaseEventImplementsDomainEvent(t *testing.T) {
	var _ DomainEvent = BaseEvent{}
}

func TestJournalPublish(t *testing.T) {
	var buf bytes.Buffer
	j := NewJournal(&buf)

	batch := uuid.New()
	at := time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)
	first := NewBaseEvent("transfer_file.generated", batch, "TransferFile", at, []byte(`{"beneficiaries":2}`))
	second := NewBaseEvent("transfer_file.rejected", batch, "TransferFile", at, nil)

	if err := j.Publish(context.Background(), "sct34.transfer_files", first, second); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	var lines []Envelope
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		var env Envelope
		if err := json.Unmarshal(sc.Bytes(), &env); err != nil {
			t.Fatalf("line is not JSON: %v", err)
		}
		lines = append(lines, env)
	}
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0].Topic != "sct34.transfer_files" || lines[0].ID != first.EventID() || lines[0].AggregateID != batch {
		t.Errorf("unexpected envelope %+v", lines[0])
	}
	if string(lines[0].Payload) != `{"beneficiaries":2}` {
		t.Errorf("payload = %s", lines[0].Payload)
	}
	if lines[1].Type != "transfer_file.rejected" || lines[1].Payload != nil {
		t.Errorf("unexpected envelope %+v", lines[1])
	}
}

func TestJournalPublishCancelled(t *testing.T) {
	var buf bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewJournal(&buf).Publish(ctx, "t", NewBaseEvent("x", uuid.New(), "X", time.Now(), nil))
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if buf.Len() != 0 {
		t.Errorf("journal written despite cancellation: %q", buf.String())
	}
}

func TestOpenJournalAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.jsonl")

	for i := 0; i < 2; i++ {
		j, err := OpenJournal(path)
		if err != nil {
			t.Fatalf("OpenJournal: %v", err)
		}
		if err := j.Publish(context.Background(), "t", NewBaseEvent("x", uuid.New(), "X", time.Now(), nil)); err != nil {
			t.Fatalf("Publish: %v", err)
		}
		if err := j.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if n := bytes.Count(data, []byte("\n")); n != 2 {
		t.Errorf("journal has %d lines, want 2", n)
	}
}
