package service

import (
	"fmt"

	"github.com/bibbank/sct34/pkg/money"
)

// Digit limits of the numeric amount and counter fields.
const (
	MaxAmountDigits      = 11
	MaxTotalAmountDigits = 17
	MaxBeneficiaryDigits = 8
)

// ToMinorUnits converts a transfer amount into cents using exact decimal arithmetic
// and rejects values that do not fit the 11-digit amount field.
func ToMinorUnits(amount money.Money) (int64, error) {
	if amount.Currency() != money.EUR {
		return 0, fmt.Errorf("%w: %s is not in EUR", ErrInvalidAmount, amount)
	}
	if amount.IsNegative() {
		return 0, fmt.Errorf("%w: %s is negative", ErrInvalidAmount, amount)
	}
	// Measured on the decimal so that huge inputs never reach int64 conversion.
	cents := amount.Amount().Shift(2).Round(0)
	if digits := cents.NumDigits(); digits > MaxAmountDigits {
		return 0, &OverflowError{Field: "transfer amount", Digits: digits, Limit: MaxAmountDigits}
	}
	return amount.MinorUnits(), nil
}
