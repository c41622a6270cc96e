package service_test

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bibbank/sct34/internal/domain/model"
	"github.com/bibbank/sct34/internal/domain/service"
	"github.com/bibbank/sct34/pkg/money"
)

var fixedNow = time.Date(2024, time.January, 15, 9, 30, 0, 0, time.UTC)

func testConfig(strict bool) service.BuilderConfig {
	return service.BuilderConfig{
		Strict:              strict,
		Clock:               func() time.Time { return fixedNow },
		ExecutionOffsetDays: service.DefaultExecutionOffsetDays,
	}
}

func amount(s string) *money.Money {
	m := money.New(decimal.RequireFromString(s), money.EUR)
	return &m
}

func acme() model.OrderingParty {
	return model.OrderingParty{
		TaxID:  "A12345678",
		Suffix: "001",
		IBAN:   "ES0000000000000000000000",
		Name:   "ACME SA",
		Address: model.Address{
			Street:         "Calle Mayor 1",
			PostalCodeCity: "28001 Madrid",
			Province:       "Madrid",
		},
		Country: "ES",
	}
}

func joseNino(value string) model.Beneficiary {
	return model.Beneficiary{
		Reference: "FACT-2024-001",
		IBAN:      "ES9999999999999999999999",
		BIC:       "CAIXESBBXXX",
		Name:      "José Niño",
		Address: model.Address{
			Street:         "Rua Nova 2",
			PostalCodeCity: "08001 Barcelona",
			Province:       "Barcelona",
		},
		Country: "ES",
		Concept: "Factura enero",
		Amount:  amount(value),
	}
}

func padRight(s string, n int) string { return s + strings.Repeat(" ", n-len(s)) }

func blanks(n int) string { return strings.Repeat(" ", n) }

func splitLines(payload []byte) []string {
	return strings.Split(strings.TrimSuffix(string(payload), "\n"), "\n")
}
