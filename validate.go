package lessondeck

import (
	"encoding/json"

	"github.com/alnah/go-lessondeck/internal/schema"
)

// ValidationResult reports whether a document matches the deck schema.
type ValidationResult struct {
	Valid bool
	// Errors lists every violation, ordered by location then message.
	Errors []FieldError
}

// Validate checks a JSON or YAML deck document against the deck schema.
// A document that cannot be parsed returns ErrMalformedDocument instead of a
// result. Validation covers the document envelope only; per-layout content is
// checked by Renderer.Render.
func Validate(raw []byte) (*ValidationResult, error) {
	_, result, err := validateDocument(raw)
	return result, err
}

// SchemaJSON returns the embedded deck schema.
func SchemaJSON() []byte {
	return schema.Source()
}

// validateDocument returns the JSON form of raw along with its validation.
func validateDocument(raw []byte) ([]byte, *ValidationResult, error) {
	doc, err := schema.ToJSON(raw)
	if err != nil {
		return nil, nil, wrapError(ErrMalformedDocument, err)
	}

	violations, err := schema.Validate(doc)
	if err != nil {
		if isError(err, schema.ErrCompile) {
			return nil, nil, err
		}
		return nil, nil, wrapError(ErrMalformedDocument, err)
	}

	result := &ValidationResult{Valid: len(violations) == 0}
	for _, v := range violations {
		result.Errors = append(result.Errors, FieldError{Location: v.Location, Message: v.Message})
	}
	return doc, result, nil
}

// parseDeck validates raw and decodes it. Schema violations are returned as
// a *ValidationError.
func parseDeck(raw []byte) (*Deck, error) {
	doc, result, err := validateDocument(raw)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, &ValidationError{Errors: result.Errors}
	}

	var deck Deck
	if err := json.Unmarshal(doc, &deck); err != nil {
		return nil, wrapError(ErrMalformedDocument, err)
	}
	return &deck, nil
}
