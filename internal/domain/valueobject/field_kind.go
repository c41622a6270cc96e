package valueobject

// FieldKind declares how a fixed-width field is packed.
type FieldKind struct {
	value string
}

var (
	// FieldKindNumeric fields are left-padded with zeros.
	FieldKindNumeric = FieldKind{"NUMERIC"}
	// FieldKindAlphanumeric fields are sanitized and right-padded with spaces.
	FieldKindAlphanumeric = FieldKind{"ALPHANUMERIC"}
)

func (k FieldKind) String() string {
	return k.value
}

// IsNumeric reports whether the field is zero-filled.
func (k FieldKind) IsNumeric() bool {
	return k == FieldKindNumeric
}
