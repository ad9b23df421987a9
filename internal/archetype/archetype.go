// Package archetype is the closed registry of slide layouts. Each layout pairs
// a typed content struct, which knows its own content contract, with an
// html/template renderer. Adding a layout means adding both halves here.
package archetype

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"reflect"
	"slices"
	"strings"
)

// Sentinel errors for layout operations.
var (
	ErrUnknownLayout   = errors.New("unknown layout")
	ErrInvalidContent  = errors.New("invalid slide content")
	ErrContentMismatch = errors.New("content does not match layout")
	ErrRender          = errors.New("rendering slide")
)

// Kind identifies a layout.
type Kind string

const (
	HeroTitle             Kind = "hero-title"
	FramedList            Kind = "framed-list"
	TwoColumnDetail       Kind = "two-column-detail"
	FullText              Kind = "full-text"
	DiscussionTable       Kind = "discussion-table"
	AnalysisTable         Kind = "analysis-table"
	ImagePrompt           Kind = "image-prompt"
	Checklist             Kind = "checklist"
	TaskPreparation       Kind = "task-preparation"
	Worksheet             Kind = "worksheet"
	MatchingTask          Kind = "matching-task"
	GapFill               Kind = "gap-fill"
	Storyboard            Kind = "storyboard"
	AudioComprehension    Kind = "audio-comprehension"
	ReportingPrompt       Kind = "reporting-prompt"
	FeedbackColumns       Kind = "feedback-columns"
	ThreeColumnReflection Kind = "three-column-reflection"
	ImageMatching         Kind = "image-matching"
	CenteredText          Kind = "centered-text"
)

// Content is the decoded, layout-specific body of a slide.
type Content interface {
	// Missing names every required field that is absent or empty.
	Missing() []string
	// ImageSlots returns pointers to the slide's image slots, in markup order.
	ImageSlots() []*ImageRef
	link(Linker) error
}

// Linker rewrites references and renders markup embedded in slide content.
type Linker interface {
	// Href maps a logical asset reference to the href the document uses.
	Href(ref string) string
	// HTML rewrites relative src and href attributes in a trusted fragment.
	HTML(fragment string) string
	// Markdown converts a markdown source to trusted HTML.
	Markdown(src string) (string, error)
}

type entry struct {
	newContent func() Content
	required   []string
}

var registry = map[Kind]entry{
	HeroTitle:             {func() Content { return &HeroTitleContent{} }, []string{"title"}},
	FramedList:            {func() Content { return &FramedListContent{} }, []string{"title", "listItems"}},
	TwoColumnDetail:       {func() Content { return &TwoColumnDetailContent{} }, []string{"title", "leftHtml", "rightHtml"}},
	FullText:              {func() Content { return &FullTextContent{} }, []string{"title", "bodyHtml|bodyMarkdown"}},
	DiscussionTable:       {func() Content { return &DiscussionTableContent{} }, []string{"title", "prompts"}},
	AnalysisTable:         {func() Content { return &AnalysisTableContent{} }, []string{"title", "headers", "rows"}},
	ImagePrompt:           {func() Content { return &ImagePromptContent{} }, []string{"title", "promptHtml"}},
	Checklist:             {func() Content { return &ChecklistContent{} }, []string{"title", "items"}},
	TaskPreparation:       {func() Content { return &TaskPreparationContent{} }, []string{"title", "taskHtml"}},
	Worksheet:             {func() Content { return &WorksheetContent{} }, []string{"title", "sections[].heading"}},
	MatchingTask:          {func() Content { return &MatchingTaskContent{} }, []string{"title", "pairs[].left", "pairs[].right"}},
	GapFill:               {func() Content { return &GapFillContent{} }, []string{"title", "text"}},
	Storyboard:            {func() Content { return &StoryboardContent{} }, []string{"title", "frames|frameCount"}},
	AudioComprehension:    {func() Content { return &AudioComprehensionContent{} }, []string{"title", "audioSrc"}},
	ReportingPrompt:       {func() Content { return &ReportingPromptContent{} }, []string{"title", "promptHtml"}},
	FeedbackColumns:       {func() Content { return &FeedbackColumnsContent{} }, []string{"title", "columns[].heading"}},
	ThreeColumnReflection: {func() Content { return &ThreeColumnReflectionContent{} }, []string{"title", "columns[3].heading"}},
	ImageMatching:         {func() Content { return &ImageMatchingContent{} }, []string{"title", "items[].label"}},
	CenteredText:          {func() Content { return &CenteredTextContent{} }, []string{"text"}},
}

// aliases maps alternate layout ids onto a registered kind.
var aliases = map[Kind]Kind{
	"simple-centered-text": CenteredText,
}

// Canonical returns the registered kind an id stands for. Unknown ids are
// returned unchanged.
func Canonical(kind Kind) Kind {
	if k, ok := aliases[kind]; ok {
		return k
	}
	return kind
}

func lookup(kind Kind) (entry, Kind, bool) {
	kind = Canonical(kind)
	e, ok := registry[kind]
	return e, kind, ok
}

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))

// Kinds returns every registered layout, sorted. Aliases are not listed.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(registry))
	for k := range registry {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// Known reports whether kind is registered.
func Known(kind Kind) bool {
	_, _, ok := lookup(kind)
	return ok
}

// Required lists the required content fields of kind, for display.
func Required(kind Kind) []string {
	e, _, _ := lookup(kind)
	return slices.Clone(e.required)
}

// Decode parses raw slide content into the typed content of kind.
// Keys the layout does not know are ignored.
func Decode(kind Kind, raw []byte) (Content, error) {
	e, _, ok := lookup(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLayout, kind)
	}
	c := e.newContent()
	if len(bytes.TrimSpace(raw)) == 0 {
		return c, nil
	}
	if err := json.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}
	return c, nil
}

// Link resolves references in c and renders any markdown it carries.
func Link(c Content, l Linker) error {
	return c.link(l)
}

// Render produces the markup of one slide body.
func Render(kind Kind, c Content) (string, error) {
	e, kind, ok := lookup(kind)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownLayout, kind)
	}
	if c == nil || reflect.TypeOf(c) != reflect.TypeOf(e.newContent()) {
		return "", fmt.Errorf("%w: %s got %T", ErrContentMismatch, kind, c)
	}

	var buf strings.Builder
	if err := templates.ExecuteTemplate(&buf, string(kind)+".html", c); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRender, kind, err)
	}
	return strings.TrimSpace(buf.String()), nil
}
