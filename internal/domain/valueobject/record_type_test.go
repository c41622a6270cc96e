package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/sct34/internal/domain/valueobject"
)

func TestParseRecordType_ValidCodes(t *testing.T) {
	tests := []struct {
		input     string
		expected  valueobject.RecordType
		operation string
	}{
		{"01", valueobject.RecordOrderingPartyHeader, "ORD"},
		{"02", valueobject.RecordTransferHeader, "SCT"},
		{"03", valueobject.RecordBeneficiary, "SCT"},
		{"04", valueobject.RecordTransferTotal, "SCT"},
		{"99", valueobject.RecordGrandTotal, "ORD"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			rt, err := valueobject.ParseRecordType(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, rt)
			assert.Equal(t, tc.operation, rt.Operation())
		})
	}
}

func TestParseRecordType_InvalidCode(t *testing.T) {
	for _, input := range []string{"", "1", "05", "98", "ORD"} {
		t.Run(input, func(t *testing.T) {
			_, err := valueobject.ParseRecordType(input)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "invalid record type code")
		})
	}
}

func TestRecordType_CodeString(t *testing.T) {
	assert.Equal(t, "1", valueobject.RecordOrderingPartyHeader.CodeString())
	assert.Equal(t, "99", valueobject.RecordGrandTotal.CodeString())
}

func TestFieldKind(t *testing.T) {
	assert.True(t, valueobject.FieldKindNumeric.IsNumeric())
	assert.False(t, valueobject.FieldKindAlphanumeric.IsNumeric())
	assert.Equal(t, "ALPHANUMERIC", valueobject.FieldKindAlphanumeric.String())
}
