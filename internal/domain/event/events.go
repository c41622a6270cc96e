package event

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/bibbank/sct34/pkg/events"
)

const AggregateTypeTransferFile = "TransferFile"

// TransferFileGenerated is emitted once a transfer file has been stored.
type TransferFileGenerated struct {
	events.BaseEvent
	BatchID         uuid.UUID `json:"batch_id"`
	Beneficiaries   int64     `json:"beneficiaries"`
	TotalMinorUnits int64     `json:"total_minor_units"`
	Bytes           int       `json:"bytes"`
	Location        string    `json:"location"`
}

func NewTransferFileGenerated(batchID uuid.UUID, beneficiaries, totalMinorUnits int64, bytes int, location string, at time.Time) TransferFileGenerated {
	payload, _ := json.Marshal(struct {
		BatchID         uuid.UUID `json:"batch_id"`
		Beneficiaries   int64     `json:"beneficiaries"`
		TotalMinorUnits int64     `json:"total_minor_units"`
		Bytes           int       `json:"bytes"`
		Location        string    `json:"location"`
	}{batchID, beneficiaries, totalMinorUnits, bytes, location})

	return TransferFileGenerated{
		BaseEvent:       events.NewBaseEvent("transfer_file.generated", batchID, AggregateTypeTransferFile, at, payload),
		BatchID:         batchID,
		Beneficiaries:   beneficiaries,
		TotalMinorUnits: totalMinorUnits,
		Bytes:           bytes,
		Location:        location,
	}
}

// TransferFileRejected is emitted when an order could not be turned into a file.
type TransferFileRejected struct {
	events.BaseEvent
	BatchID uuid.UUID `json:"batch_id"`
	Reason  string    `json:"reason"`
	Detail  string    `json:"detail"`
}

func NewTransferFileRejected(batchID uuid.UUID, reason, detail string, at time.Time) TransferFileRejected {
	payload, _ := json.Marshal(struct {
		BatchID uuid.UUID `json:"batch_id"`
		Reason  string    `json:"reason"`
		Detail  string    `json:"detail"`
	}{batchID, reason, detail})

	return TransferFileRejected{
		BaseEvent: events.NewBaseEvent("transfer_file.rejected", batchID, AggregateTypeTransferFile, at, payload),
		BatchID:   batchID,
		Reason:    reason,
		Detail:    detail,
	}
}
