package service

import (
	"strings"

	"github.com/bibbank/sct34/internal/domain/model"
	"github.com/bibbank/sct34/internal/domain/valueobject"
)

// RecordLength is the width of every record line, terminator excluded.
const RecordLength = 600

// FieldSpec declares one fixed-width field of a record and how to read its value from T.
type FieldSpec[T any] struct {
	Name     string
	Width    int
	Kind     valueobject.FieldKind
	Required bool
	Value    func(T) string
}

// Field is a field spec resolved against a concrete source value.
type Field struct {
	Name  string
	Value string
	Width int
	Kind  valueobject.FieldKind
}

// Encode packs the field to its width.
func (f Field) Encode() string {
	return EncodeField(f.Value, f.Width, f.Kind)
}

// Schema is the ordered field layout of one record type. Absent reports which
// fields the source did not supply; nil means every field was supplied.
type Schema[T any] struct {
	Record valueobject.RecordType
	Fields []FieldSpec[T]
	Absent func(T) model.FieldSet
}

// Width returns the sum of all field widths.
func (s Schema[T]) Width() int {
	total := 0
	for _, f := range s.Fields {
		total += f.Width
	}
	return total
}

// Offset returns the starting column (0-based) and width of the named field.
func (s Schema[T]) Offset(name string) (start, width int, ok bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return start, f.Width, true
		}
		start += f.Width
	}
	return 0, 0, false
}

// Assemble resolves every field against src. In strict mode an absent required field
// fails the whole record with a *ValidationError naming all missing fields. A required
// field supplied empty is not missing. Outside strict mode absent values encode as
// zeros or blanks.
func (s Schema[T]) Assemble(src T, strict bool) ([]Field, error) {
	var absent model.FieldSet
	if s.Absent != nil {
		absent = s.Absent(src)
	}
	fields := make([]Field, 0, len(s.Fields))
	var missing []string
	for _, spec := range s.Fields {
		value := spec.Value(src)
		if spec.Required && absent.Has(spec.Name) {
			missing = append(missing, spec.Name)
		}
		fields = append(fields, Field{Name: spec.Name, Value: value, Width: spec.Width, Kind: spec.Kind})
	}
	if strict && len(missing) > 0 {
		return nil, &ValidationError{Record: s.Record.String(), Fields: missing}
	}
	return fields, nil
}

// Render concatenates the encoded fields into one record line.
func Render(fields []Field) string {
	var b strings.Builder
	b.Grow(RecordLength)
	for _, f := range fields {
		b.WriteString(f.Encode())
	}
	return b.String()
}

// Helpers for declaring schemas.

func numeric[T any](name string, width int, value func(T) string) FieldSpec[T] {
	return FieldSpec[T]{Name: name, Width: width, Kind: valueobject.FieldKindNumeric, Value: value}
}

func text[T any](name string, width int, value func(T) string) FieldSpec[T] {
	return FieldSpec[T]{Name: name, Width: width, Kind: valueobject.FieldKindAlphanumeric, Value: value}
}

func required[T any](spec FieldSpec[T]) FieldSpec[T] {
	spec.Required = true
	return spec
}

func constant[T any](v string) func(T) string {
	return func(T) string { return v }
}

func filler[T any](width int) FieldSpec[T] {
	return text("filler", width, constant[T](""))
}
