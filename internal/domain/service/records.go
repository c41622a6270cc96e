package service

import (
	"strconv"

	"github.com/bibbank/sct34/internal/domain/model"
	"github.com/bibbank/sct34/internal/domain/valueobject"
)

// SchemaVersion is the cuaderno version stamped into every header and detail record.
const SchemaVersion = "34145"

const (
	accountTypeIBAN     = "A"
	expensesShared      = "3"
	defaultTransferCode = "SUPP"
	dateLayout          = "20060102"
	headerSequence      = "1"
	beneficiarySequence = "2"
	totalsFieldAmount   = "total_amount"
	totalsFieldCount    = "beneficiary_count"
	totalsFieldRecords  = "record_count"
)

// orderingHeader is the source of the 01 record: the party plus its resolved dates.
type orderingHeader struct {
	party     model.OrderingParty
	creation  string
	execution string
}

// beneficiaryLine is the source of a 03 record. amount is empty when the
// beneficiary carries no amount.
type beneficiaryLine struct {
	b      model.Beneficiary
	amount string
}

// totalsLine is the source of the 04 and 99 records.
type totalsLine struct {
	amount        int64
	beneficiaries int64
	records       int64
}

func recordCode[T any](rt valueobject.RecordType) FieldSpec[T] {
	return numeric("record_type", 2, constant[T](rt.CodeString()))
}

func operation[T any](rt valueobject.RecordType) FieldSpec[T] {
	return text("operation", 3, constant[T](rt.Operation()))
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

var orderingPartyHeaderSchema = Schema[orderingHeader]{
	Record: valueobject.RecordOrderingPartyHeader,
	Fields: []FieldSpec[orderingHeader]{
		recordCode[orderingHeader](valueobject.RecordOrderingPartyHeader),
		operation[orderingHeader](valueobject.RecordOrderingPartyHeader),
		numeric("schema_version", 5, constant[orderingHeader](SchemaVersion)),
		numeric("sequence", 3, constant[orderingHeader](headerSequence)),
		required(text(model.FieldTaxID, 9, func(h orderingHeader) string { return h.party.TaxID })),
		required(text(model.FieldSuffix, 3, func(h orderingHeader) string { return h.party.Suffix })),
		numeric("creation_date", 8, func(h orderingHeader) string { return h.creation }),
		numeric("execution_date", 8, func(h orderingHeader) string { return h.execution }),
		text("account_type", 1, constant[orderingHeader](accountTypeIBAN)),
		required(text(model.FieldIBAN, 34, func(h orderingHeader) string { return h.party.IBAN })),
		numeric("charge_details", 1, func(h orderingHeader) string {
			if h.party.ChargeDetails {
				return "1"
			}
			return "0"
		}),
		required(text(model.FieldName, 70, func(h orderingHeader) string { return h.party.Name })),
		required(text(model.FieldStreet, 50, func(h orderingHeader) string { return h.party.Address.Street })),
		required(text(model.FieldPostalCodeCity, 50, func(h orderingHeader) string { return h.party.Address.PostalCodeCity })),
		required(text(model.FieldProvince, 40, func(h orderingHeader) string { return h.party.Address.Province })),
		required(text(model.FieldCountry, 2, func(h orderingHeader) string { return h.party.Country })),
		filler[orderingHeader](311),
	},
	Absent: func(h orderingHeader) model.FieldSet { return h.party.Absent },
}

var transferHeaderSchema = Schema[model.OrderingParty]{
	Record: valueobject.RecordTransferHeader,
	Fields: []FieldSpec[model.OrderingParty]{
		recordCode[model.OrderingParty](valueobject.RecordTransferHeader),
		operation[model.OrderingParty](valueobject.RecordTransferHeader),
		numeric("schema_version", 5, constant[model.OrderingParty](SchemaVersion)),
		required(text(model.FieldTaxID, 9, func(p model.OrderingParty) string { return p.TaxID })),
		required(text(model.FieldSuffix, 3, func(p model.OrderingParty) string { return p.Suffix })),
		filler[model.OrderingParty](578),
	},
	Absent: func(p model.OrderingParty) model.FieldSet { return p.Absent },
}

var beneficiarySchema = Schema[beneficiaryLine]{
	Record: valueobject.RecordBeneficiary,
	Fields: []FieldSpec[beneficiaryLine]{
		recordCode[beneficiaryLine](valueobject.RecordBeneficiary),
		operation[beneficiaryLine](valueobject.RecordBeneficiary),
		numeric("schema_version", 5, constant[beneficiaryLine](SchemaVersion)),
		numeric("sequence", 3, constant[beneficiaryLine](beneficiarySequence)),
		required(text(model.FieldReference, 35, func(l beneficiaryLine) string { return l.b.Reference })),
		text("account_type", 1, constant[beneficiaryLine](accountTypeIBAN)),
		required(text(model.FieldIBAN, 34, func(l beneficiaryLine) string { return l.b.IBAN })),
		required(numeric(model.FieldAmount, 11, func(l beneficiaryLine) string { return l.amount })),
		numeric("expenses", 1, constant[beneficiaryLine](expensesShared)),
		required(text(model.FieldBIC, 11, func(l beneficiaryLine) string { return l.b.BIC })),
		required(text(model.FieldName, 70, func(l beneficiaryLine) string { return l.b.Name })),
		required(text(model.FieldStreet, 50, func(l beneficiaryLine) string { return l.b.Address.Street })),
		required(text(model.FieldPostalCodeCity, 50, func(l beneficiaryLine) string { return l.b.Address.PostalCodeCity })),
		required(text(model.FieldProvince, 40, func(l beneficiaryLine) string { return l.b.Address.Province })),
		required(text(model.FieldCountry, 2, func(l beneficiaryLine) string { return l.b.Country })),
		required(text(model.FieldConcept, 140, func(l beneficiaryLine) string { return l.b.Concept })),
		text("instruction_id", 35, constant[beneficiaryLine]("")),
		text("transfer_type", 4, func(l beneficiaryLine) string { return orDefault(l.b.TransferType, defaultTransferCode) }),
		text("transfer_purpose", 4, func(l beneficiaryLine) string { return orDefault(l.b.TransferPurpose, defaultTransferCode) }),
		filler[beneficiaryLine](99),
	},
	Absent: func(l beneficiaryLine) model.FieldSet { return l.b.AbsentFields() },
}

func totalsSchema(rt valueobject.RecordType) Schema[totalsLine] {
	return Schema[totalsLine]{
		Record: rt,
		Fields: []FieldSpec[totalsLine]{
			recordCode[totalsLine](rt),
			operation[totalsLine](rt),
			numeric(totalsFieldAmount, 17, func(t totalsLine) string { return strconv.FormatInt(t.amount, 10) }),
			numeric(totalsFieldCount, 8, func(t totalsLine) string { return strconv.FormatInt(t.beneficiaries, 10) }),
			numeric(totalsFieldRecords, 10, func(t totalsLine) string { return strconv.FormatInt(t.records, 10) }),
			filler[totalsLine](560),
		},
	}
}

var (
	transferTotalSchema = totalsSchema(valueobject.RecordTransferTotal)
	grandTotalSchema    = totalsSchema(valueobject.RecordGrandTotal)
)
