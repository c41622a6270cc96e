package port

import (
	"context"

	"github.com/bibbank/sct34/pkg/events"
)

// TransferFileStore hands a finished transfer file to whoever delivers it to the bank.
type TransferFileStore interface {
	// Save stores the payload under name and returns where it ended up.
	Save(ctx context.Context, name string, payload []byte) (string, error)
}

// BatchMetrics records the outcome of file generation.
type BatchMetrics interface {
	BatchGenerated(beneficiaries int64, totalMinorUnits int64, bytes int)
	BatchFailed(reason string)
}

// EventPublisher publishes domain events about generated and rejected files.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, events ...events.DomainEvent) error
}
