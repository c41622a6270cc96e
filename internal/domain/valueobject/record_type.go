package valueobject

import (
	"fmt"
	"strconv"
)

// RecordType identifies one of the five record kinds of a cuaderno 34.14 transfer file.
type RecordType struct {
	code      int
	operation string
	name      string
}

var (
	RecordOrderingPartyHeader = RecordType{1, "ORD", "ordering-party header"}
	RecordTransferHeader      = RecordType{2, "SCT", "transfer-batch header"}
	RecordBeneficiary         = RecordType{3, "SCT", "beneficiary detail"}
	RecordTransferTotal       = RecordType{4, "SCT", "batch total"}
	RecordGrandTotal          = RecordType{99, "ORD", "grand total"}
)

var recordTypesByCode = map[string]RecordType{
	"01": RecordOrderingPartyHeader,
	"02": RecordTransferHeader,
	"03": RecordBeneficiary,
	"04": RecordTransferTotal,
	"99": RecordGrandTotal,
}

// ParseRecordType resolves the two-digit code found at the start of a record line.
func ParseRecordType(code string) (RecordType, error) {
	if rt, ok := recordTypesByCode[code]; ok {
		return rt, nil
	}
	return RecordType{}, fmt.Errorf("invalid record type code: %q", code)
}

// Code returns the record type as an integer (1, 2, 3, 4 or 99).
func (r RecordType) Code() int {
	return r.code
}

// CodeString returns the record type formatted as a decimal string, unpadded.
func (r RecordType) CodeString() string {
	return strconv.Itoa(r.code)
}

// Operation returns the operation code stamped after the record type (ORD or SCT).
func (r RecordType) Operation() string {
	return r.operation
}

func (r RecordType) String() string {
	return r.name
}
