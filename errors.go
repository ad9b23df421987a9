package lessondeck

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for library operations.
var (
	// Document rejection.
	ErrMalformedDocument = errors.New("malformed deck document")
	ErrSchemaViolation   = errors.New("deck does not match schema")
	ErrContentContract   = errors.New("slide content contract violated")
	ErrUnknownLayout     = errors.New("unknown layout")
	ErrInvalidContent    = errors.New("invalid slide content")

	// Asset errors.
	ErrAssetUnresolved  = errors.New("asset reference unresolved")
	ErrInvalidAssetPath = errors.New("invalid asset path")
	ErrStyleNotFound    = errors.New("style not found")
	ErrScriptNotFound   = errors.New("script not found")
	ErrTemplateNotFound = errors.New("template not found")

	// Rendering errors.
	ErrSlideRender = errors.New("slide rendering failed")
	ErrShellRender = errors.New("document assembly failed")
)

// FieldError is one schema violation.
type FieldError struct {
	// Location is the path of the offending value, e.g. "slides[2].layout".
	// The document root is "(root)".
	Location string
	Message  string
}

func (f FieldError) String() string {
	return f.Location + ": " + f.Message
}

// ValidationError carries every schema violation of a rejected document.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	items := make([]string, len(e.Errors))
	for i, f := range e.Errors {
		items[i] = f.String()
	}
	return fmt.Sprintf("%s: %s", ErrSchemaViolation, strings.Join(items, "; "))
}

// Unwrap returns ErrSchemaViolation for errors.Is matching.
func (e *ValidationError) Unwrap() error {
	return ErrSchemaViolation
}

// SlideIssue is a content-contract violation of one slide.
type SlideIssue struct {
	Index  int
	Layout string
	// Missing names the required content fields that are absent or empty.
	Missing []string
	// Err is set when the slide could not be decoded at all, for example
	// ErrUnknownLayout.
	Err error
}

func (i SlideIssue) String() string {
	prefix := fmt.Sprintf("slides[%d] (%s)", i.Index, i.Layout)
	if i.Err != nil {
		return prefix + ": " + i.Err.Error()
	}
	return prefix + ": missing " + strings.Join(i.Missing, ", ")
}

// ContentError carries every content-contract violation of a deck.
type ContentError struct {
	Issues []SlideIssue
}

func (e *ContentError) Error() string {
	items := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		items[i] = issue.String()
	}
	return fmt.Sprintf("%s: %s", ErrContentContract, strings.Join(items, "; "))
}

// Unwrap exposes ErrContentContract and the distinct causes of the issues.
func (e *ContentError) Unwrap() []error {
	errs := []error{ErrContentContract}
	for _, issue := range e.Issues {
		if issue.Err != nil {
			errs = append(errs, issue.Err)
		}
	}
	return errs
}
