package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingOrderingParty  = errors.New("payment order has no ordering party")
	ErrMissingBeneficiaries  = errors.New("payment order has no beneficiaries")
	ErrMissingMandatoryField = errors.New("mandatory field is missing")
	ErrAmountOverflow        = errors.New("amount exceeds field width")
	ErrInvalidAmount         = errors.New("invalid transfer amount")
	ErrEncoding              = errors.New("payload cannot be represented in ISO-8859-1")
	ErrBuilderState          = errors.New("invalid batch builder transition")
)

// ValidationError lists the mandatory fields of a record that are empty.
type ValidationError struct {
	Record string
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v: %s", e.Record, ErrMissingMandatoryField, strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrMissingMandatoryField }

// OverflowError reports a numeric value that does not fit its declared digit count.
type OverflowError struct {
	Field  string
	Digits int
	Limit  int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("%v: %s needs %d digits, maximum is %d", ErrAmountOverflow, e.Field, e.Digits, e.Limit)
}

func (e *OverflowError) Unwrap() error { return ErrAmountOverflow }

// FailureReason maps an error returned by the builder to a short stable label.
func FailureReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingOrderingParty):
		return "missing_ordering_party"
	case errors.Is(err, ErrMissingBeneficiaries):
		return "missing_beneficiaries"
	case errors.Is(err, ErrMissingMandatoryField):
		return "missing_mandatory_field"
	case errors.Is(err, ErrAmountOverflow):
		return "amount_overflow"
	case errors.Is(err, ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, ErrEncoding):
		return "encoding_error"
	case errors.Is(err, ErrBuilderState):
		return "builder_state"
	default:
		return "other"
	}
}
