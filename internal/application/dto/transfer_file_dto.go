package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/bibbank/sct34/internal/domain/model"
	"github.com/bibbank/sct34/pkg/money"
)

// PaymentOrderDocument is the payment order as it arrives in a JSON or YAML document.
// Field names follow the bank's cuaderno vocabulary.
type PaymentOrderDocument struct {
	OrderingParty *OrderingPartyDocument `json:"ordenante" yaml:"ordenante"`
	Beneficiaries []BeneficiaryDocument  `json:"beneficiarios" yaml:"beneficiarios"`
}

// OrderingPartyDocument is the ordenante section.
type OrderingPartyDocument struct {
	TaxID          string `json:"nif_ordenante" yaml:"nif_ordenante"`
	Suffix         string `json:"sufijo_ordenante" yaml:"sufijo_ordenante"`
	IBAN           string `json:"iban_ordenante" yaml:"iban_ordenante"`
	Name           string `json:"nombre_ordenante" yaml:"nombre_ordenante"`
	Street         string `json:"direccion_via_y_numero" yaml:"direccion_via_y_numero"`
	PostalCodeCity string `json:"direccion_cp_y_poblacion" yaml:"direccion_cp_y_poblacion"`
	Province       string `json:"direccion_provincia" yaml:"direccion_provincia"`
	Country        string `json:"pais_ordenante" yaml:"pais_ordenante"`
	CreationDate   string `json:"fecha_creacion" yaml:"fecha_creacion"`
	ExecutionDate  string `json:"fecha_ejecucion" yaml:"fecha_ejecucion"`
	ChargeDetails  bool   `json:"detalle_cargo" yaml:"detalle_cargo"`

	keys keySet // keys present in the decoded document, nil when built in code
}

// BeneficiaryDocument is one entry of the beneficiarios list.
type BeneficiaryDocument struct {
	Reference       string      `json:"referencia_ordenante" yaml:"referencia_ordenante"`
	IBAN            string      `json:"iban_beneficiario" yaml:"iban_beneficiario"`
	BIC             string      `json:"bic_beneficiario" yaml:"bic_beneficiario"`
	Name            string      `json:"nombre_beneficiario" yaml:"nombre_beneficiario"`
	Street          string      `json:"direccion_via_y_numero" yaml:"direccion_via_y_numero"`
	PostalCodeCity  string      `json:"direccion_cp_y_poblacion" yaml:"direccion_cp_y_poblacion"`
	Province        string      `json:"direccion_provincia" yaml:"direccion_provincia"`
	Country         string      `json:"pais_beneficiario" yaml:"pais_beneficiario"`
	Concept         string      `json:"concepto" yaml:"concepto"`
	Amount          DecimalText `json:"importe_transferencia" yaml:"importe_transferencia"`
	TransferType    string      `json:"tipo_transferencia" yaml:"tipo_transferencia"`
	TransferPurpose string      `json:"proposito_transferencia" yaml:"proposito_transferencia"`

	keys keySet
}

// Document keys of the mandatory fields and the model field each one feeds.
var (
	orderingPartyKeys = map[string]string{
		"nif_ordenante":            model.FieldTaxID,
		"sufijo_ordenante":         model.FieldSuffix,
		"iban_ordenante":           model.FieldIBAN,
		"nombre_ordenante":         model.FieldName,
		"direccion_via_y_numero":   model.FieldStreet,
		"direccion_cp_y_poblacion": model.FieldPostalCodeCity,
		"direccion_provincia":      model.FieldProvince,
		"pais_ordenante":           model.FieldCountry,
	}
	beneficiaryKeys = map[string]string{
		"referencia_ordenante":     model.FieldReference,
		"iban_beneficiario":        model.FieldIBAN,
		"bic_beneficiario":         model.FieldBIC,
		"nombre_beneficiario":      model.FieldName,
		"direccion_via_y_numero":   model.FieldStreet,
		"direccion_cp_y_poblacion": model.FieldPostalCodeCity,
		"direccion_provincia":      model.FieldProvince,
		"pais_beneficiario":        model.FieldCountry,
		"concepto":                 model.FieldConcept,
		"importe_transferencia":    model.FieldAmount,
	}
)

// keySet records which keys a decoded mapping carried, null-valued ones included.
// A nil keySet treats every key as present.
type keySet map[string]bool

func (k keySet) has(key string) bool { return k == nil || k[key] }

// absent maps the mandatory keys missing from k to model field names.
func (k keySet) absent(mandatory map[string]string) model.FieldSet {
	var out model.FieldSet
	for key, field := range mandatory {
		if k.has(key) {
			continue
		}
		if out == nil {
			out = model.FieldSet{}
		}
		out[field] = true
	}
	return out
}

func jsonKeys(data []byte) (keySet, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	keys := make(keySet, len(raw))
	for k := range raw {
		keys[k] = true
	}
	return keys, nil
}

func yamlKeys(node *yaml.Node) keySet {
	keys := keySet{}
	if node.Kind != yaml.MappingNode {
		return keys
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		keys[node.Content[i].Value] = true
	}
	return keys
}

// Method-free copies used to decode the plain fields.
type (
	orderingPartyFields OrderingPartyDocument
	beneficiaryFields   BeneficiaryDocument
)

func (o *OrderingPartyDocument) UnmarshalJSON(data []byte) error {
	keys, err := jsonKeys(data)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, (*orderingPartyFields)(o)); err != nil {
		return err
	}
	o.keys = keys
	return nil
}

func (o *OrderingPartyDocument) UnmarshalYAML(node *yaml.Node) error {
	if err := node.Decode((*orderingPartyFields)(o)); err != nil {
		return err
	}
	o.keys = yamlKeys(node)
	return nil
}

func (b *BeneficiaryDocument) UnmarshalJSON(data []byte) error {
	keys, err := jsonKeys(data)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, (*beneficiaryFields)(b)); err != nil {
		return err
	}
	b.keys = keys
	return nil
}

func (b *BeneficiaryDocument) UnmarshalYAML(node *yaml.Node) error {
	if err := node.Decode((*beneficiaryFields)(b)); err != nil {
		return err
	}
	b.keys = yamlKeys(node)
	return nil
}

// DecimalText keeps an amount as the literal text of the document so it is never
// routed through float64. Numbers and strings are both accepted.
type DecimalText string

func (d *DecimalText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = DecimalText(strings.TrimSpace(s))
		return nil
	}
	*d = DecimalText(data)
	return nil
}

func (d *DecimalText) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: amount must be a scalar", node.Line)
	}
	if node.Tag == "!!null" {
		*d = ""
		return nil
	}
	*d = DecimalText(strings.TrimSpace(node.Value))
	return nil
}

var dateLayouts = []string{"2006-01-02", "20060102"}

// ToModel converts the document into a payment order. Absent sections and keys stay
// absent so that the renderer can report them; malformed amounts and dates fail here.
func (doc PaymentOrderDocument) ToModel(id uuid.UUID) (model.PaymentOrder, error) {
	var party *model.OrderingParty
	if doc.OrderingParty != nil {
		p, err := doc.OrderingParty.toModel()
		if err != nil {
			return model.PaymentOrder{}, fmt.Errorf("ordenante: %w", err)
		}
		party = &p
	}

	beneficiaries := make([]model.Beneficiary, 0, len(doc.Beneficiaries))
	for i, b := range doc.Beneficiaries {
		ben, err := b.toModel()
		if err != nil {
			return model.PaymentOrder{}, fmt.Errorf("beneficiario %d: %w", i+1, err)
		}
		beneficiaries = append(beneficiaries, ben)
	}

	return model.Reconstruct(id, party, beneficiaries), nil
}

func (o OrderingPartyDocument) toModel() (model.OrderingParty, error) {
	created, err := parseDate("fecha_creacion", o.CreationDate)
	if err != nil {
		return model.OrderingParty{}, err
	}
	executes, err := parseDate("fecha_ejecucion", o.ExecutionDate)
	if err != nil {
		return model.OrderingParty{}, err
	}
	return model.OrderingParty{
		TaxID:  o.TaxID,
		Suffix: o.Suffix,
		IBAN:   o.IBAN,
		Name:   o.Name,
		Address: model.Address{
			Street:         o.Street,
			PostalCodeCity: o.PostalCodeCity,
			Province:       o.Province,
		},
		Country:       o.Country,
		CreationDate:  created,
		ExecutionDate: executes,
		ChargeDetails: o.ChargeDetails,
		Absent:        o.keys.absent(orderingPartyKeys),
	}, nil
}

// toModel leaves Amount nil only when importe_transferencia is absent. A null or
// empty amount is a zero amount.
func (b BeneficiaryDocument) toModel() (model.Beneficiary, error) {
	var amount *money.Money
	switch {
	case b.Amount != "":
		m, err := money.NewFromString(string(b.Amount), money.EUR)
		if err != nil {
			return model.Beneficiary{}, fmt.Errorf("importe_transferencia: %w", err)
		}
		amount = &m
	case b.keys.has("importe_transferencia"):
		m := money.New(decimal.Zero, money.EUR)
		amount = &m
	}
	return model.Beneficiary{
		Reference: b.Reference,
		IBAN:      b.IBAN,
		BIC:       b.BIC,
		Name:      b.Name,
		Address: model.Address{
			Street:         b.Street,
			PostalCodeCity: b.PostalCodeCity,
			Province:       b.Province,
		},
		Country:         b.Country,
		Concept:         b.Concept,
		Amount:          amount,
		TransferType:    b.TransferType,
		TransferPurpose: b.TransferPurpose,
		Absent:          b.keys.absent(beneficiaryKeys),
	}, nil
}

func parseDate(field, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%s: invalid date %q, want YYYY-MM-DD", field, value)
}

// GenerateTransferFileRequest is the input DTO for generating a transfer file.
type GenerateTransferFileRequest struct {
	Document PaymentOrderDocument
	// OutputName overrides the default file name sct34-<batch id>.txt.
	OutputName string
	Strict     bool
}

// GenerateTransferFileResponse is the output DTO after a transfer file is generated.
type GenerateTransferFileResponse struct {
	GeneratedAt     time.Time
	Location        string
	BatchID         uuid.UUID
	Beneficiaries   int64
	TotalMinorUnits int64
	Bytes           int
}

// InspectTransferFileResponse summarises a transfer file read back from disk.
type InspectTransferFileResponse struct {
	Records  []RecordLine
	Problems []string
	// Totals declared by the trailer records, keyed by record code (4 and 99).
	Declared        map[int]int64
	Beneficiaries   int64
	TotalMinorUnits int64
	Valid           bool
}

// RecordLine describes one record of an inspected file.
type RecordLine struct {
	Line   int
	Code   int
	Type   string
	Length int
}
