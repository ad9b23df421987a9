package lessondeck

import "encoding/json"

// Deck is a lesson deck document.
type Deck struct {
	ID           string        `json:"id"`
	Slug         string        `json:"slug"`
	Title        string        `json:"title"`
	Language     string        `json:"language"`
	Version      string        `json:"version"`
	Level        string        `json:"level"`
	CoverImage   *CoverImage   `json:"coverImage,omitempty"`
	Contributors []Contributor `json:"contributors,omitempty"`
	Assets       *DeckAssets   `json:"assets,omitempty"`
	Slides       []Slide       `json:"slides"`
}

// Slide is one typed slide descriptor. Content is layout-specific and is
// decoded against the layout's content contract during rendering.
type Slide struct {
	Layout  string          `json:"layout"`
	Content json.RawMessage `json:"content"`
	Notes   string          `json:"notes,omitempty"`
}

// CoverImage is the deck-level image. URL wins over Query.
type CoverImage struct {
	URL    string `json:"url,omitempty"`
	Query  string `json:"query,omitempty"`
	Alt    string `json:"alt,omitempty"`
	Credit string `json:"credit,omitempty"`
}

// Contributor is listed in the document footer.
type Contributor struct {
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
	URL  string `json:"url,omitempty"`
}

// DeckAssets are per-deck asset settings.
type DeckAssets struct {
	// Theme selects css/themes/{theme}.css in addition to the deck stylesheet.
	Theme string `json:"theme,omitempty"`
	// Stylesheets are extra logical references, linked after the theme.
	Stylesheets []string `json:"stylesheets,omitempty"`
	// ImageProviderKey is used only when no override or environment key exists.
	ImageProviderKey string `json:"imageProviderKey,omitempty"`
}

// Input contains per-render parameters.
type Input struct {
	// Document is the deck as JSON or YAML.
	Document []byte

	// OutputPath is where the caller will write the result. It is only used
	// to compute relative hrefs; nothing is written. Empty means the working
	// directory.
	OutputPath string

	// AssetRoot is the directory logical asset references live in.
	// Empty means DefaultAssetRoot.
	AssetRoot string

	// AssetPaths pins the href of individual logical references.
	AssetPaths map[string]string

	// InlineAssets embeds the stylesheet, theme and script contents instead
	// of linking them. Extra deck stylesheets are still linked.
	InlineAssets bool

	// Image holds the search parameters used for image enrichment.
	Image ImageOptions
}

// Result is the output of a successful render.
type Result struct {
	// HTML is the complete document.
	HTML string

	// Slides is the number of rendered slides.
	Slides int

	// ImagesResolved counts image slots filled by enrichment.
	ImagesResolved int

	// Warnings lists degradations that did not fail the render, such as
	// dropped stylesheets or image queries without a result.
	Warnings []string
}

// LayoutInfo describes a registered layout.
type LayoutInfo struct {
	ID       string
	Required []string
}
