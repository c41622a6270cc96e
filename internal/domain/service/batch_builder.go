package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"

	"github.com/bibbank/sct34/internal/domain/model"
	"github.com/bibbank/sct34/pkg/money"
)

// DefaultExecutionOffsetDays is how far after today the execution date falls when
// the ordering party does not give one.
const DefaultExecutionOffsetDays = 3

// Records around the beneficiary lines counted by each trailer.
const (
	transferTotalExtraRecords = 2 // transfer header + transfer total
	grandTotalExtraRecords    = 4 // plus ordering-party header + grand total
)

// BuilderConfig controls a batch build.
type BuilderConfig struct {
	// Strict rejects orders with absent mandatory fields instead of encoding blanks.
	Strict              bool
	Clock               func() time.Time
	ExecutionOffsetDays int
}

// DefaultBuilderConfig returns a strict configuration using the wall clock.
func DefaultBuilderConfig() BuilderConfig {
	return BuilderConfig{
		Strict:              true,
		Clock:               time.Now,
		ExecutionOffsetDays: DefaultExecutionOffsetDays,
	}
}

type builderState int

const (
	stateCreated builderState = iota
	stateHeadersEmitted
	stateBeneficiaryEmitted
	stateTotalsEmitted
	stateFinalized
	stateFailed
)

var stateNames = map[builderState]string{
	stateCreated:            "created",
	stateHeadersEmitted:     "headers emitted",
	stateBeneficiaryEmitted: "beneficiary emitted",
	stateTotalsEmitted:      "totals emitted",
	stateFinalized:          "finalized",
	stateFailed:             "failed",
}

func (s builderState) String() string { return stateNames[s] }

// Totals is a snapshot of the amounts accumulated over the beneficiary records.
type Totals struct {
	AmountMinorUnits int64
	Beneficiaries    int64
}

// BatchBuilder writes one transfer file. Records must be emitted in order:
// headers, one or more beneficiaries, totals, then Finalize. Any error leaves the
// builder failed; a builder is never reused.
type BatchBuilder struct {
	cfg    BuilderConfig
	state  builderState
	totals Totals
	buf    strings.Builder
}

// NewBatchBuilder creates a builder in the created state.
func NewBatchBuilder(cfg BuilderConfig) *BatchBuilder {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &BatchBuilder{cfg: cfg}
}

// Totals returns the running totals accumulated so far.
func (b *BatchBuilder) Totals() Totals {
	return b.totals
}

// EmitHeaders writes the ordering-party header (01) and the transfer-batch header (02).
func (b *BatchBuilder) EmitHeaders(party model.OrderingParty) error {
	if err := b.expect("emit headers", stateCreated); err != nil {
		return err
	}

	now := b.cfg.Clock()
	header := orderingHeader{
		party:     party,
		creation:  formatDate(party.CreationDate, now),
		execution: formatDate(party.ExecutionDate, now.AddDate(0, 0, b.cfg.ExecutionOffsetDays)),
	}

	ordering, err := orderingPartyHeaderSchema.Assemble(header, b.cfg.Strict)
	if err != nil {
		return b.fail(err)
	}
	transfer, err := transferHeaderSchema.Assemble(party, b.cfg.Strict)
	if err != nil {
		return b.fail(err)
	}

	b.writeLine(ordering)
	b.writeLine(transfer)
	b.state = stateHeadersEmitted
	return nil
}

// EmitBeneficiary writes one beneficiary detail record (03) and adds its amount to
// the running totals.
func (b *BatchBuilder) EmitBeneficiary(beneficiary model.Beneficiary) error {
	if err := b.expect("emit beneficiary", stateHeadersEmitted, stateBeneficiaryEmitted); err != nil {
		return err
	}

	line := beneficiaryLine{b: beneficiary}
	var cents int64
	if beneficiary.Amount != nil {
		var err error
		if cents, err = ToMinorUnits(*beneficiary.Amount); err != nil {
			return b.fail(err)
		}
		line.amount = strconv.FormatInt(cents, 10)
	}

	fields, err := beneficiarySchema.Assemble(line, b.cfg.Strict)
	if err != nil {
		return b.fail(err)
	}

	next := Totals{
		AmountMinorUnits: b.totals.AmountMinorUnits + cents,
		Beneficiaries:    b.totals.Beneficiaries + 1,
	}
	if d := money.Digits(next.AmountMinorUnits); d > MaxTotalAmountDigits {
		return b.fail(&OverflowError{Field: "batch total amount", Digits: d, Limit: MaxTotalAmountDigits})
	}
	if d := money.Digits(next.Beneficiaries); d > MaxBeneficiaryDigits {
		return b.fail(&OverflowError{Field: "beneficiary count", Digits: d, Limit: MaxBeneficiaryDigits})
	}

	b.writeLine(fields)
	b.totals = next
	b.state = stateBeneficiaryEmitted
	return nil
}

// EmitTotals writes the batch total (04) and the grand total (99).
func (b *BatchBuilder) EmitTotals() error {
	if err := b.expect("emit totals", stateBeneficiaryEmitted); err != nil {
		return err
	}

	for _, rec := range []struct {
		schema Schema[totalsLine]
		extra  int64
	}{
		{transferTotalSchema, transferTotalExtraRecords},
		{grandTotalSchema, grandTotalExtraRecords},
	} {
		fields, err := rec.schema.Assemble(totalsLine{
			amount:        b.totals.AmountMinorUnits,
			beneficiaries: b.totals.Beneficiaries,
			records:       b.totals.Beneficiaries + rec.extra,
		}, b.cfg.Strict)
		if err != nil {
			return b.fail(err)
		}
		b.writeLine(fields)
	}

	b.state = stateTotalsEmitted
	return nil
}

// Finalize transcodes the complete text to ISO-8859-1 and returns it. The builder
// is spent afterwards.
func (b *BatchBuilder) Finalize() ([]byte, error) {
	if err := b.expect("finalize", stateTotalsEmitted); err != nil {
		return nil, err
	}

	payload, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(b.buf.String()))
	if err != nil {
		return nil, b.fail(fmt.Errorf("%w: %v", ErrEncoding, err))
	}

	b.buf.Reset()
	b.state = stateFinalized
	return payload, nil
}

func (b *BatchBuilder) writeLine(fields []Field) {
	b.buf.WriteString(Render(fields))
	b.buf.WriteByte('\n')
}

func (b *BatchBuilder) expect(op string, allowed ...builderState) error {
	for _, s := range allowed {
		if b.state == s {
			return nil
		}
	}
	return fmt.Errorf("%w: cannot %s in state %q", ErrBuilderState, op, b.state)
}

func (b *BatchBuilder) fail(err error) error {
	b.state = stateFailed
	b.buf.Reset()
	return err
}

func formatDate(given *time.Time, fallback time.Time) string {
	if given != nil {
		return given.Format(dateLayout)
	}
	return fallback.Format(dateLayout)
}
