package archetype

import "strings"

// ImageRef is an image slot. An explicit ImageURL always wins over ImageQuery.
type ImageRef struct {
	ImageURL    string `json:"imageUrl,omitempty"`
	ImageQuery  string `json:"imageQuery,omitempty"`
	ImageAlt    string `json:"imageAlt,omitempty"`
	ImageCredit string `json:"imageCredit,omitempty"`
}

// NeedsLookup reports whether the slot has a query and no explicit URL.
func (r *ImageRef) NeedsLookup() bool {
	return strings.TrimSpace(r.ImageURL) == "" && strings.TrimSpace(r.ImageQuery) != ""
}

// Fill sets the slot from a lookup result. Authored alt text and credit are kept.
func (r *ImageRef) Fill(url, alt, credit string) {
	if !r.NeedsLookup() || url == "" {
		return
	}
	r.ImageURL = url
	if r.ImageAlt == "" {
		r.ImageAlt = alt
	}
	if r.ImageAlt == "" {
		r.ImageAlt = strings.TrimSpace(r.ImageQuery)
	}
	if r.ImageCredit == "" {
		r.ImageCredit = credit
	}
}

// HasImage reports whether the slot renders an image.
func (r *ImageRef) HasImage() bool {
	return strings.TrimSpace(r.ImageURL) != ""
}

func (r *ImageRef) link(l Linker) {
	if r.HasImage() {
		r.ImageURL = l.Href(strings.TrimSpace(r.ImageURL))
	}
}
