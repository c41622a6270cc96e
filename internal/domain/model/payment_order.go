package model

import (
	"slices"

	"github.com/google/uuid"
)

// PaymentOrder is one ordering party plus the ordered list of beneficiaries to pay.
// It is read-only once constructed.
type PaymentOrder struct {
	id            uuid.UUID
	orderingParty *OrderingParty
	beneficiaries []Beneficiary
}

// NewPaymentOrder assembles a payment order. Missing sections are not rejected here:
// the batch builder reports them so that every failure surfaces from a single place.
func NewPaymentOrder(party *OrderingParty, beneficiaries []Beneficiary) PaymentOrder {
	var owned *OrderingParty
	if party != nil {
		p := *party
		owned = &p
	}
	return PaymentOrder{
		id:            uuid.New(),
		orderingParty: owned,
		beneficiaries: slices.Clone(beneficiaries),
	}
}

// Reconstruct recreates a PaymentOrder with a known identifier.
func Reconstruct(id uuid.UUID, party *OrderingParty, beneficiaries []Beneficiary) PaymentOrder {
	po := NewPaymentOrder(party, beneficiaries)
	po.id = id
	return po
}

// Accessors

func (po PaymentOrder) ID() uuid.UUID                { return po.id }
func (po PaymentOrder) BeneficiaryCount() int        { return len(po.beneficiaries) }
func (po PaymentOrder) Beneficiaries() []Beneficiary { return slices.Clone(po.beneficiaries) }

// OrderingParty returns a copy of the ordering party and whether one is present.
func (po PaymentOrder) OrderingParty() (OrderingParty, bool) {
	if po.orderingParty == nil {
		return OrderingParty{}, false
	}
	return *po.orderingParty, true
}
