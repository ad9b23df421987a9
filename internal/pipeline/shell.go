package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// Sentinel errors for shell assembly.
var (
	// ErrShellTemplate indicates the shell template failed to parse.
	ErrShellTemplate = errors.New("invalid shell template")

	// ErrShellRender indicates the shell template failed to execute.
	ErrShellRender = errors.New("shell rendering failed")
)

// ShellData is everything the document shell displays.
// Hrefs must already be resolved; bodies are trusted HTML.
type ShellData struct {
	Lang         string
	Title        string
	Generator    string
	DeckID       string
	DeckSlug     string
	DeckVersion  string
	DeckLevel    string
	CoverImage   string
	Stylesheets  []string
	InlineStyles []string
	Script       string
	InlineScript string
	Slides       []SlideView
	Contributors []ContributorView
}

// SlideView is one rendered slide inside the shell.
type SlideView struct {
	Index  int
	Layout string
	Body   string
	Notes  string
}

// ContributorView is one entry of the contributors footer.
type ContributorView struct {
	Name string
	Role string
	URL  string
}

// shellView is ShellData with template-typed values.
type shellView struct {
	ShellData
	InlineStyles []template.CSS
	InlineScript template.JS
	Slides       []slideView
	SlideCount   int
}

type slideView struct {
	Index  int
	Number int
	Layout string
	Body   template.HTML
	Notes  string
}

// Shell assembles full documents from a parsed shell template.
type Shell struct {
	tmpl *template.Template
}

// NewShell parses the shell template source.
func NewShell(src string) (*Shell, error) {
	if strings.TrimSpace(src) == "" {
		return nil, fmt.Errorf("%w: empty template", ErrShellTemplate)
	}
	tmpl, err := template.New("shell").Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShellTemplate, err)
	}
	return &Shell{tmpl: tmpl}, nil
}

// Render executes the shell with data. Slides appear in input order.
func (s *Shell) Render(data ShellData) (string, error) {
	view := shellView{
		ShellData:    data,
		InlineScript: template.JS(sanitizeEmbedded(data.InlineScript)), // #nosec G203 -- asset content, closing tags escaped
		Slides:       make([]slideView, len(data.Slides)),
		SlideCount:   len(data.Slides),
	}
	for _, css := range data.InlineStyles {
		view.InlineStyles = append(view.InlineStyles, template.CSS(sanitizeEmbedded(css))) // #nosec G203 -- asset content, closing tags escaped
	}
	for i, sl := range data.Slides {
		view.Slides[i] = slideView{
			Index:  sl.Index,
			Number: sl.Index + 1,
			Layout: sl.Layout,
			Body:   template.HTML(sl.Body), // #nosec G203 -- rendered by the layout templates
			Notes:  sl.Notes,
		}
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("%w: %v", ErrShellRender, err)
	}
	return buf.String(), nil
}

// sanitizeEmbedded prevents inline CSS or JS from closing its element early.
// "<\/" is read as "</" by both CSS and JS string parsers.
func sanitizeEmbedded(content string) string {
	return strings.ReplaceAll(content, "</", `<\/`)
}
