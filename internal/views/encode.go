package views

import (
	"fmt"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Format names an output encoding for views.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json" or "yaml".
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatYAML:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported output format %q", s)
	}
}

// Marshal encodes v as compact JSON.
func Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// MarshalIndent encodes v as indented JSON.
func MarshalIndent(v interface{}) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// MarshalYAML encodes v as YAML.
func MarshalYAML(v interface{}) ([]byte, error) {
	return yaml.Marshal(v)
}

// Encode renders v in the given format. JSON output is indented and ends in a newline.
func Encode(format Format, v interface{}) ([]byte, error) {
	switch format {
	case FormatYAML:
		return MarshalYAML(v)
	case FormatJSON, "":
		out, err := MarshalIndent(v)
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}
