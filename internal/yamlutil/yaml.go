// Package yamlutil converts between YAML and JSON and decodes configuration
// files, keeping goccy/go-yaml behind a small surface.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/parser"
)

// Input limits. Decks carry inline HTML for every slide; configs do not.
var (
	MaxConfigSize   = 1 << 20
	MaxDocumentSize = 4 << 20
)

var (
	ErrNilData           = errors.New("yamlutil: nil or empty data")
	ErrNilDestination    = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge     = errors.New("yamlutil: input exceeds maximum size")
	ErrMultipleDocuments = errors.New("yamlutil: more than one YAML document")
)

func checkSize(data []byte, limit int) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > limit {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), limit)
	}
	return nil
}

// describe renders a goccy error with the offending source line.
func describe(err error) error {
	return fmt.Errorf("yamlutil: %s", yaml.FormatError(err, false, true))
}

// DecodeStrict decodes a configuration file into v, rejecting unknown fields.
func DecodeStrict(data []byte, v any) error {
	if err := checkSize(data, MaxConfigSize); err != nil {
		return err
	}
	if v == nil {
		return ErrNilDestination
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return describe(err)
	}
	return nil
}

// ToJSON converts a single YAML document to JSON. A stream holding more than
// one document is rejected rather than silently truncated.
func ToJSON(data []byte) ([]byte, error) {
	if err := checkSize(data, MaxDocumentSize); err != nil {
		return nil, err
	}
	file, err := parser.ParseBytes(data, 0)
	if err != nil {
		return nil, describe(err)
	}
	docs := 0
	for _, doc := range file.Docs {
		if doc.Body != nil {
			docs++
		}
	}
	if docs > 1 {
		return nil, fmt.Errorf("%w: found %d", ErrMultipleDocuments, docs)
	}
	out, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, describe(err)
	}
	return out, nil
}

// FromJSON converts a JSON document to block-style YAML.
func FromJSON(data []byte) ([]byte, error) {
	if err := checkSize(data, MaxDocumentSize); err != nil {
		return nil, err
	}
	out, err := yaml.JSONToYAML(data)
	if err != nil {
		return nil, describe(err)
	}
	return out, nil
}
