package service_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/sct34/internal/domain/model"
	"github.com/bibbank/sct34/internal/domain/service"
	"github.com/bibbank/sct34/internal/domain/valueobject"
)

func renderedFile(t *testing.T, amounts ...string) []byte {
	t.Helper()
	var beneficiaries []model.Beneficiary
	for _, a := range amounts {
		beneficiaries = append(beneficiaries, joseNino(a))
	}
	batch, err := service.NewTransferFileRenderer(testConfig(true)).
		Render(model.NewPaymentOrder(ptr(acme()), beneficiaries))
	require.NoError(t, err)
	return batch.Payload
}

func TestInspectFile_ValidFile(t *testing.T) {
	summary, err := service.InspectFile(renderedFile(t, "100.00", "14.1"))
	require.NoError(t, err)

	assert.True(t, summary.Valid(), summary.Problems)
	require.Len(t, summary.Records, 6)
	assert.Equal(t, valueobject.RecordOrderingPartyHeader, summary.Records[0].Type)
	assert.Equal(t, valueobject.RecordGrandTotal, summary.Records[5].Type)
	for _, r := range summary.Records {
		assert.Equal(t, service.RecordLength, r.Length)
	}

	want := service.Totals{AmountMinorUnits: 11410, Beneficiaries: 2}
	assert.Equal(t, want, summary.Counted)
	assert.Equal(t, want, summary.Declared[4])
	assert.Equal(t, want, summary.Declared[99])
}

func TestInspectFile_DetectsTamperedTotal(t *testing.T) {
	lines := splitLines(renderedFile(t, "100.00"))
	lines[3] = lines[3][:5] + "00000000000020000" + lines[3][22:]
	payload := []byte(strings.Join(lines, "\n") + "\n")

	summary, err := service.InspectFile(payload)
	require.NoError(t, err)

	assert.False(t, summary.Valid())
	assert.Contains(t, strings.Join(summary.Problems, "\n"), "batch total amount 20000, beneficiaries add up to 10000")
}

func TestInspectFile_DetectsOrderAndWidthProblems(t *testing.T) {
	lines := splitLines(renderedFile(t, "1"))
	lines[0], lines[1] = lines[1], lines[0]
	lines[2] = lines[2][:599]
	payload := []byte(strings.Join(lines, "\n") + "\n")

	summary, err := service.InspectFile(payload)
	require.NoError(t, err)

	problems := strings.Join(summary.Problems, "\n")
	assert.Contains(t, problems, "line 1: transfer-batch header out of order")
	assert.Contains(t, problems, "line 3: 599 characters, want 600")
}

func TestInspectFile_Empty(t *testing.T) {
	summary, err := service.InspectFile(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"file is empty"}, summary.Problems)
}

func TestInspectFile_MissingGrandTotal(t *testing.T) {
	lines := splitLines(renderedFile(t, "1"))
	payload := []byte(strings.Join(lines[:4], "\n") + "\n")

	summary, err := service.InspectFile(payload)
	require.NoError(t, err)
	assert.Contains(t, summary.Problems, "file does not end with a grand total record")
}
