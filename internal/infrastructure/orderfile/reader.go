// Package orderfile reads payment order documents from JSON or YAML files.
package orderfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bibbank/sct34/internal/application/dto"
)

// Format is the serialization of an order document.
type Format string

const (
	FormatAuto Format = ""
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml", "yml" or "" (detect from the file name).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return FormatAuto, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return FormatAuto, fmt.Errorf("unsupported order format %q", s)
	}
}

// DetectFormat picks the format from the file extension. Unknown extensions are read
// as JSON.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Read loads the document at path. "-" reads standard input.
func Read(path string, format Format) (dto.PaymentOrderDocument, error) {
	if format == FormatAuto {
		format = DetectFormat(path)
	}

	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return dto.PaymentOrderDocument{}, fmt.Errorf("failed to open order file: %w", err)
		}
		defer f.Close()
		r = f
	}
	return Decode(r, format)
}

// Decode parses a document from r. An empty input is an empty document, which the
// renderer rejects for its missing sections.
func Decode(r io.Reader, format Format) (dto.PaymentOrderDocument, error) {
	var doc dto.PaymentOrderDocument

	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return dto.PaymentOrderDocument{}, fmt.Errorf("failed to decode yaml order: %w", err)
		}
	case FormatJSON, FormatAuto:
		if err := json.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return dto.PaymentOrderDocument{}, fmt.Errorf("failed to decode json order: %w", err)
		}
	default:
		return dto.PaymentOrderDocument{}, fmt.Errorf("unsupported order format %q", format)
	}
	return doc, nil
}
