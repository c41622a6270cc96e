package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bibbank/sct34/internal/application/dto"
	"github.com/bibbank/sct34/internal/domain/event"
	"github.com/bibbank/sct34/internal/domain/port"
	"github.com/bibbank/sct34/internal/domain/service"
)

// TopicTransferFiles is the topic generation events are published under.
const TopicTransferFiles = "sct34.transfer_files"

// GenerateTransferFile renders a payment order document into a cuaderno 34.14 file
// and hands it to the store.
type GenerateTransferFile struct {
	store      port.TransferFileStore
	metrics    port.BatchMetrics   // optional, may be nil
	publisher  port.EventPublisher // optional, may be nil
	clock      func() time.Time
	offsetDays int
	logger     *slog.Logger
}

func NewGenerateTransferFile(
	store port.TransferFileStore,
	metrics port.BatchMetrics,
	publisher port.EventPublisher,
	clock func() time.Time,
	offsetDays int,
	logger *slog.Logger,
) *GenerateTransferFile {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &GenerateTransferFile{
		store:      store,
		metrics:    metrics,
		publisher:  publisher,
		clock:      clock,
		offsetDays: offsetDays,
		logger:     logger,
	}
}

func (uc *GenerateTransferFile) Execute(ctx context.Context, req dto.GenerateTransferFileRequest) (dto.GenerateTransferFileResponse, error) {
	batchID := uuid.New()
	logger := uc.logger.With("batch_id", batchID, "strict", req.Strict)

	order, err := req.Document.ToModel(batchID)
	if err != nil {
		uc.failed(ctx, logger, batchID, "invalid_document", err)
		return dto.GenerateTransferFileResponse{}, fmt.Errorf("invalid payment order document: %w", err)
	}

	renderer := service.NewTransferFileRenderer(service.BuilderConfig{
		Strict:              req.Strict,
		Clock:               uc.clock,
		ExecutionOffsetDays: uc.offsetDays,
	})
	batch, err := renderer.Render(order)
	if err != nil {
		uc.failed(ctx, logger, batchID, service.FailureReason(err), err)
		return dto.GenerateTransferFileResponse{}, fmt.Errorf("failed to render transfer file: %w", err)
	}

	name := req.OutputName
	if name == "" {
		name = fmt.Sprintf("sct34-%s.txt", batchID)
	}
	location, err := uc.store.Save(ctx, name, batch.Payload)
	if err != nil {
		uc.failed(ctx, logger, batchID, "store", err)
		return dto.GenerateTransferFileResponse{}, fmt.Errorf("failed to store transfer file: %w", err)
	}

	if uc.metrics != nil {
		uc.metrics.BatchGenerated(batch.Totals.Beneficiaries, batch.Totals.AmountMinorUnits, len(batch.Payload))
	}
	logger.Info("transfer file generated",
		"beneficiaries", batch.Totals.Beneficiaries,
		"total_minor_units", batch.Totals.AmountMinorUnits,
		"bytes", len(batch.Payload),
		"location", location,
	)

	generatedAt := uc.clock()
	if uc.publisher != nil {
		generated := event.NewTransferFileGenerated(batchID, batch.Totals.Beneficiaries, batch.Totals.AmountMinorUnits,
			len(batch.Payload), location, generatedAt)
		if err := uc.publisher.Publish(ctx, TopicTransferFiles, generated); err != nil {
			return dto.GenerateTransferFileResponse{}, fmt.Errorf("failed to publish events: %w", err)
		}
	}

	return dto.GenerateTransferFileResponse{
		GeneratedAt:     generatedAt,
		Location:        location,
		BatchID:         batch.OrderID,
		Beneficiaries:   batch.Totals.Beneficiaries,
		TotalMinorUnits: batch.Totals.AmountMinorUnits,
		Bytes:           len(batch.Payload),
	}, nil
}

func (uc *GenerateTransferFile) failed(ctx context.Context, logger *slog.Logger, batchID uuid.UUID, reason string, err error) {
	if uc.metrics != nil {
		uc.metrics.BatchFailed(reason)
	}
	logger.Error("transfer file generation failed", "reason", reason, "error", err)

	if uc.publisher != nil {
		rejected := event.NewTransferFileRejected(batchID, reason, err.Error(), uc.clock())
		if perr := uc.publisher.Publish(ctx, TopicTransferFiles, rejected); perr != nil {
			logger.Warn("rejection event not published", "error", perr)
		}
	}
}
