package model_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/sct34/internal/domain/model"
)

func TestNewPaymentOrder(t *testing.T) {
	party := &model.OrderingParty{TaxID: "A12345678", Suffix: "001", Name: "ACME SA"}
	beneficiaries := []model.Beneficiary{{Name: "Jose Nino"}, {Name: "Ana Lopez"}}

	order := model.NewPaymentOrder(party, beneficiaries)

	assert.NotEqual(t, uuid.Nil, order.ID())
	got, ok := order.OrderingParty()
	require.True(t, ok)
	assert.Equal(t, "A12345678", got.TaxID)
	assert.Equal(t, 2, order.BeneficiaryCount())
	assert.Equal(t, "Jose Nino", order.Beneficiaries()[0].Name)
}

func TestNewPaymentOrder_IsIsolatedFromCaller(t *testing.T) {
	party := &model.OrderingParty{Name: "ACME SA"}
	beneficiaries := []model.Beneficiary{{Name: "Jose Nino"}}

	order := model.NewPaymentOrder(party, beneficiaries)
	party.Name = "changed"
	beneficiaries[0].Name = "changed"

	got, _ := order.OrderingParty()
	assert.Equal(t, "ACME SA", got.Name)
	assert.Equal(t, "Jose Nino", order.Beneficiaries()[0].Name)

	order.Beneficiaries()[0].Name = "changed again"
	assert.Equal(t, "Jose Nino", order.Beneficiaries()[0].Name)
}

func TestNewPaymentOrder_MissingSections(t *testing.T) {
	order := model.NewPaymentOrder(nil, nil)

	_, ok := order.OrderingParty()
	assert.False(t, ok)
	assert.Zero(t, order.BeneficiaryCount())
}

func TestReconstruct_KeepsID(t *testing.T) {
	id := uuid.New()
	order := model.Reconstruct(id, &model.OrderingParty{}, []model.Beneficiary{{}})
	assert.Equal(t, id, order.ID())
}
