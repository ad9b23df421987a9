package lessondeck

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/alnah/go-lessondeck/internal/assets"
)

// shellAssets are the resolved document-level assets.
type shellAssets struct {
	stylesheets  []string
	inlineStyles []string
	script       string
	inlineScript string
	cover        string
}

// resolveShellAssets resolves or loads the shell-level assets. The deck
// stylesheet and script are required; a theme, extra stylesheets or a cover
// image that cannot be resolved is dropped with a warning.
func (r *Renderer) resolveShellAssets(deck *Deck, input Input, hrefs HrefOptions, res *Result) (*shellAssets, error) {
	var out shellAssets
	var theme string
	var extra []string
	if deck.Assets != nil {
		theme = deck.Assets.Theme
		extra = deck.Assets.Stylesheets
	}

	if input.InlineAssets {
		css, err := r.loader.LoadStyle(assets.DefaultStyleName)
		if err != nil {
			return nil, fmt.Errorf("loading stylesheet: %w", convertAssetError(err))
		}
		out.inlineStyles = append(out.inlineStyles, css)

		if theme != "" {
			if themeCSS, err := r.loader.LoadStyle(theme); err != nil {
				r.warn(res, "theme dropped", theme, err)
			} else {
				out.inlineStyles = append(out.inlineStyles, themeCSS)
			}
		}

		js, err := r.loader.LoadScript(assets.DefaultScriptName)
		if err != nil {
			return nil, fmt.Errorf("loading script: %w", convertAssetError(err))
		}
		out.inlineScript = js
	} else {
		href, err := ResolveAssetHref(input.OutputPath, StylesheetRef, hrefs)
		if err != nil {
			return nil, fmt.Errorf("resolving stylesheet: %w", err)
		}
		out.stylesheets = append(out.stylesheets, href)

		if theme != "" {
			r.appendOptional(&out.stylesheets, input.OutputPath, assets.ThemeRef(theme), hrefs, res)
		}

		out.script, err = ResolveAssetHref(input.OutputPath, ScriptRef, hrefs)
		if err != nil {
			return nil, fmt.Errorf("resolving script: %w", err)
		}
	}

	for _, ref := range extra {
		r.appendOptional(&out.stylesheets, input.OutputPath, ref, hrefs, res)
	}

	if deck.CoverImage != nil && deck.CoverImage.URL != "" {
		var cover []string
		r.appendOptional(&cover, input.OutputPath, deck.CoverImage.URL, hrefs, res)
		if len(cover) == 1 {
			out.cover = cover[0]
		}
	}

	return &out, nil
}

// appendOptional resolves ref and appends it to dst, or records a warning.
func (r *Renderer) appendOptional(dst *[]string, outputPath, ref string, hrefs HrefOptions, res *Result) {
	href, err := ResolveAssetHref(outputPath, ref, hrefs)
	if err != nil {
		r.warn(res, "asset dropped", ref, err)
		return
	}
	*dst = append(*dst, href)
}

// warn logs a dropped asset and records it in the result.
func (r *Renderer) warn(res *Result, msg, ref string, err error) {
	r.logger.Warn(msg, zap.String("ref", ref), zap.Error(err))
	res.Warnings = append(res.Warnings, fmt.Sprintf("%s %q: %v", msg, ref, err))
}
