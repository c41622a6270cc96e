package service

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/bibbank/sct34/internal/domain/model"
	"github.com/bibbank/sct34/internal/domain/valueobject"
)

// RecordSummary describes one line of a transfer file.
type RecordSummary struct {
	Line   int
	Type   valueobject.RecordType
	Length int
}

// FileSummary is the result of checking a transfer file against its own trailers.
type FileSummary struct {
	Records []RecordSummary
	// Counted is what the beneficiary lines add up to.
	Counted Totals
	// Declared holds the totals stated by the 04 and 99 records, keyed by record code.
	Declared map[int]Totals
	Problems []string
}

// Valid reports whether no problem was found.
func (s FileSummary) Valid() bool { return len(s.Problems) == 0 }

var expectedSequence = []valueobject.RecordType{
	valueobject.RecordOrderingPartyHeader,
	valueobject.RecordTransferHeader,
	valueobject.RecordBeneficiary,
	valueobject.RecordTransferTotal,
	valueobject.RecordGrandTotal,
}

// InspectFile decodes an ISO-8859-1 transfer file and cross-checks record widths,
// record order and the trailer totals against the beneficiary lines.
func InspectFile(payload []byte) (FileSummary, error) {
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(payload)
	if err != nil {
		return FileSummary{}, fmt.Errorf("decode payload: %w", err)
	}

	summary := FileSummary{Declared: make(map[int]Totals)}
	text := strings.TrimSuffix(string(decoded), "\n")
	if text == "" {
		summary.Problems = append(summary.Problems, "file is empty")
		return summary, nil
	}

	step := -1
	for i, line := range strings.Split(text, "\n") {
		n := i + 1
		if len(line) < 2 {
			summary.Problems = append(summary.Problems, fmt.Sprintf("line %d: too short to hold a record type", n))
			continue
		}
		rt, err := valueobject.ParseRecordType(line[:2])
		if err != nil {
			summary.Problems = append(summary.Problems, fmt.Sprintf("line %d: %v", n, err))
			continue
		}

		length := utf8.RuneCountInString(line)
		summary.Records = append(summary.Records, RecordSummary{Line: n, Type: rt, Length: length})
		if length != RecordLength {
			summary.Problems = append(summary.Problems, fmt.Sprintf("line %d: %d characters, want %d", n, length, RecordLength))
		}

		next, ok := advance(step, rt)
		if !ok {
			summary.Problems = append(summary.Problems, fmt.Sprintf("line %d: %s out of order", n, rt))
		}
		step = next

		switch rt {
		case valueobject.RecordBeneficiary:
			cents, err := numericField(line, beneficiarySchema, model.FieldAmount)
			if err != nil {
				summary.Problems = append(summary.Problems, fmt.Sprintf("line %d: %v", n, err))
			}
			summary.Counted.AmountMinorUnits += cents
			summary.Counted.Beneficiaries++
		case valueobject.RecordTransferTotal, valueobject.RecordGrandTotal:
			declared, records, err := parseTotals(line, rt)
			if err != nil {
				summary.Problems = append(summary.Problems, fmt.Sprintf("line %d: %v", n, err))
				continue
			}
			summary.Declared[rt.Code()] = declared
			summary.Problems = append(summary.Problems, checkTotals(n, rt, declared, records, summary.Counted)...)
		}
	}

	if step != len(expectedSequence)-1 {
		summary.Problems = append(summary.Problems, "file does not end with a grand total record")
	}
	return summary, nil
}

// advance moves through expectedSequence, where beneficiary records may repeat.
// When rt cannot follow step it reports false and resynchronises on rt.
func advance(step int, rt valueobject.RecordType) (int, bool) {
	if step >= 0 && expectedSequence[step] == valueobject.RecordBeneficiary && rt == valueobject.RecordBeneficiary {
		return step, true
	}
	if step+1 < len(expectedSequence) && expectedSequence[step+1] == rt {
		return step + 1, true
	}
	for i, want := range expectedSequence {
		if want == rt {
			return i, false
		}
	}
	return step, false
}

func parseTotals(line string, rt valueobject.RecordType) (Totals, int64, error) {
	schema := transferTotalSchema
	if rt == valueobject.RecordGrandTotal {
		schema = grandTotalSchema
	}
	amount, err := numericField(line, schema, totalsFieldAmount)
	if err != nil {
		return Totals{}, 0, err
	}
	count, err := numericField(line, schema, totalsFieldCount)
	if err != nil {
		return Totals{}, 0, err
	}
	records, err := numericField(line, schema, totalsFieldRecords)
	if err != nil {
		return Totals{}, 0, err
	}
	return Totals{AmountMinorUnits: amount, Beneficiaries: count}, records, nil
}

func checkTotals(n int, rt valueobject.RecordType, declared Totals, records int64, counted Totals) []string {
	extra := int64(transferTotalExtraRecords)
	if rt == valueobject.RecordGrandTotal {
		extra = grandTotalExtraRecords
	}

	var problems []string
	if declared.AmountMinorUnits != counted.AmountMinorUnits {
		problems = append(problems, fmt.Sprintf("line %d: %s amount %d, beneficiaries add up to %d",
			n, rt, declared.AmountMinorUnits, counted.AmountMinorUnits))
	}
	if declared.Beneficiaries != counted.Beneficiaries {
		problems = append(problems, fmt.Sprintf("line %d: %s declares %d beneficiaries, found %d",
			n, rt, declared.Beneficiaries, counted.Beneficiaries))
	}
	if records != declared.Beneficiaries+extra {
		problems = append(problems, fmt.Sprintf("line %d: %s record count %d, want %d",
			n, rt, records, declared.Beneficiaries+extra))
	}
	return problems
}

func numericField[T any](line string, schema Schema[T], name string) (int64, error) {
	start, width, ok := schema.Offset(name)
	if !ok {
		return 0, fmt.Errorf("unknown field %s", name)
	}
	chars := []rune(line)
	if len(chars) < start+width {
		return 0, fmt.Errorf("%s: record too short", name)
	}
	raw := string(chars[start : start+width])
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: not numeric: %q", name, raw)
	}
	return v, nil
}
