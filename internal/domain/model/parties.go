package model

import (
	"maps"
	"time"

	"github.com/bibbank/sct34/pkg/money"
)

// Names of the mandatory party fields, as reported in validation errors.
const (
	FieldTaxID          = "tax_id"
	FieldSuffix         = "suffix"
	FieldIBAN           = "iban"
	FieldName           = "name"
	FieldStreet         = "street"
	FieldPostalCodeCity = "postal_code_city"
	FieldProvince       = "province"
	FieldCountry        = "country"
	FieldReference      = "reference"
	FieldBIC            = "bic"
	FieldConcept        = "concept"
	FieldAmount         = "amount"
)

// FieldSet is a set of field names.
type FieldSet map[string]bool

// NewFieldSet returns a set holding names.
func NewFieldSet(names ...string) FieldSet {
	s := make(FieldSet, len(names))
	for _, n := range names {
		s[n] = true
	}
	return s
}

// Has reports whether name is in the set. A nil set is empty.
func (s FieldSet) Has(name string) bool { return s[name] }

// Address is the three-line postal address carried by both parties of a transfer.
type Address struct {
	Street         string // street and number
	PostalCodeCity string // postal code and city
	Province       string
}

// OrderingParty (ordenante) is the payer initiating the batch.
type OrderingParty struct {
	TaxID         string
	Suffix        string
	IBAN          string
	Name          string
	Address       Address
	Country       string
	CreationDate  *time.Time // nil means "today"
	ExecutionDate *time.Time // nil means "today plus the configured offset"
	ChargeDetails bool
	// Absent lists the fields the source order did not supply at all. A field
	// supplied with an empty value is not absent.
	Absent FieldSet
}

// Beneficiary (beneficiario) is a payee receiving one transfer of the batch.
type Beneficiary struct {
	Reference       string // ordering party's own reference for the transfer
	IBAN            string
	BIC             string
	Name            string
	Address         Address
	Country         string
	Concept         string
	Amount          *money.Money // nil when absent from the order
	TransferType    string       // empty defaults to SUPP
	TransferPurpose string       // empty defaults to SUPP
	Absent          FieldSet
}

// AbsentFields returns Absent, adding FieldAmount when Amount is nil.
func (b Beneficiary) AbsentFields() FieldSet {
	if b.Amount != nil || b.Absent.Has(FieldAmount) {
		return b.Absent
	}
	out := make(FieldSet, len(b.Absent)+1)
	maps.Copy(out, b.Absent)
	out[FieldAmount] = true
	return out
}
