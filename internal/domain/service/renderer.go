package service

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/bibbank/sct34/internal/domain/model"
)

// Batch is a rendered transfer file ready to hand to the bank.
type Batch struct {
	OrderID uuid.UUID
	Payload []byte
	Totals  Totals
}

// TransferFileRenderer is a domain service that turns a payment order into a
// cuaderno 34.14 SEPA credit transfer file.
type TransferFileRenderer struct {
	cfg BuilderConfig
}

// NewTransferFileRenderer creates a TransferFileRenderer.
func NewTransferFileRenderer(cfg BuilderConfig) *TransferFileRenderer {
	return &TransferFileRenderer{cfg: cfg}
}

// Render builds the whole file with a fresh BatchBuilder. The caller gets either the
// complete payload or an error, never a partial file.
func (r *TransferFileRenderer) Render(order model.PaymentOrder) (Batch, error) {
	party, ok := order.OrderingParty()
	if !ok {
		return Batch{}, ErrMissingOrderingParty
	}
	if order.BeneficiaryCount() == 0 {
		return Batch{}, ErrMissingBeneficiaries
	}

	b := NewBatchBuilder(r.cfg)
	if err := b.EmitHeaders(party); err != nil {
		return Batch{}, err
	}
	for i, beneficiary := range order.Beneficiaries() {
		if err := b.EmitBeneficiary(beneficiary); err != nil {
			return Batch{}, fmt.Errorf("beneficiary %d: %w", i+1, err)
		}
	}
	if err := b.EmitTotals(); err != nil {
		return Batch{}, err
	}
	payload, err := b.Finalize()
	if err != nil {
		return Batch{}, err
	}

	return Batch{
		OrderID: order.ID(),
		Payload: payload,
		Totals:  b.Totals(),
	}, nil
}
