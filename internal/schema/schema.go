// Package schema validates the envelope of a deck document against the
// embedded JSON Schema. Per-layout slide content is not constrained here.
package schema

import (
	"bytes"
	"cmp"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/alnah/go-lessondeck/internal/yamlutil"
)

//go:embed deck.schema.json
var deckSchema []byte

// RootLocation is the location reported for violations on the document itself.
const RootLocation = "(root)"

// Sentinel errors for schema operations.
var (
	ErrMalformed = errors.New("malformed document")
	ErrCompile   = errors.New("compiling deck schema")
)

// Violation is one schema finding.
type Violation struct {
	Location string
	Message  string
}

var (
	compileOnce sync.Once
	compiled    *gojsonschema.Schema
	compileErr  error
)

func compiledSchema() (*gojsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiled, compileErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(deckSchema))
		if compileErr != nil {
			compileErr = fmt.Errorf("%w: %v", ErrCompile, compileErr)
		}
	})
	return compiled, compileErr
}

// Source returns the embedded schema document.
func Source() []byte {
	return bytes.Clone(deckSchema)
}

// ToJSON normalizes raw deck bytes to JSON. Input that starts like JSON must be
// valid JSON; anything else is parsed as YAML.
func ToJSON(raw []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrMalformed)
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		if !json.Valid(trimmed) {
			var v any
			err := json.Unmarshal(trimmed, &v)
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return trimmed, nil
	}
	out, err := yamlutil.ToJSON(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return out, nil
}

// Validate checks a JSON document against the deck schema and returns every
// violation, ordered by location then message. A nil slice means the document
// is valid.
func Validate(doc []byte) ([]Violation, error) {
	s, err := compiledSchema()
	if err != nil {
		return nil, err
	}

	result, err := s.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if result.Valid() {
		return nil, nil
	}

	violations := make([]Violation, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		violations = append(violations, translate(re))
	}

	slices.SortFunc(violations, func(a, b Violation) int {
		return cmp.Or(
			cmp.Compare(sortKey(a.Location), sortKey(b.Location)),
			cmp.Compare(a.Message, b.Message),
		)
	})
	return slices.Compact(violations), nil
}

func translate(re gojsonschema.ResultError) Violation {
	loc := Location(re.Field())

	switch re.Type() {
	case "required", "additional_property_not_allowed":
		if prop, ok := re.Details()["property"].(string); ok && prop != "" {
			loc = appendProperty(loc, prop)
		}
	}

	return Violation{Location: loc, Message: re.Description()}
}

// Location translates a dotted validator path ("slides.2.layout") into
// bracketed form ("slides[2].layout"). The document root stays "(root)".
func Location(field string) string {
	if field == "" || field == RootLocation {
		return RootLocation
	}
	field = strings.TrimPrefix(field, RootLocation+".")

	var b strings.Builder
	for i, seg := range strings.Split(field, ".") {
		if _, err := strconv.Atoi(seg); err == nil {
			b.WriteString("[" + seg + "]")
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	}
	return b.String()
}

func appendProperty(loc, prop string) string {
	if loc == RootLocation {
		return prop
	}
	return loc + "." + prop
}

var indexPattern = regexp.MustCompile(`\[(\d+)\]`)

// sortKey pads array indices so slides[10] sorts after slides[9].
func sortKey(loc string) string {
	return indexPattern.ReplaceAllStringFunc(loc, func(m string) string {
		n, _ := strconv.Atoi(m[1 : len(m)-1])
		return fmt.Sprintf("[%08d]", n)
	})
}
