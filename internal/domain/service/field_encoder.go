package service

import (
	"strings"
	"unicode/utf8"

	"github.com/bibbank/sct34/internal/domain/valueobject"
)

// EncodeField packs value into exactly width characters.
//
// A raw value longer than the field is cut to its first width characters and
// written as is: no padding, no zero fill and no sanitizing. Shorter numeric values
// are left-padded with '0'; shorter alphanumeric values are sanitized and then
// right-padded with spaces. Lengths are counted in characters, not bytes.
func EncodeField(value string, width int, kind valueobject.FieldKind) string {
	if width <= 0 {
		return ""
	}
	if utf8.RuneCountInString(value) > width {
		return truncate(value, width)
	}

	if kind.IsNumeric() {
		return strings.Repeat("0", width-utf8.RuneCountInString(value)) + value
	}

	clean := Sanitize(value)
	// Substitutions such as & -> and can lengthen the text past the field.
	if len(clean) > width {
		return clean[:width]
	}
	return clean + strings.Repeat(" ", width-len(clean))
}

// truncate returns the first n characters of s.
func truncate(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
