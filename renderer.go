package lessondeck

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/alnah/go-lessondeck/internal/archetype"
	"github.com/alnah/go-lessondeck/internal/assets"
	"github.com/alnah/go-lessondeck/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownConverter = (*pipeline.GoldmarkConverter)(nil)
	_ assets.AssetLoader         = (*assets.Layers)(nil)
)

// Renderer turns deck documents into self-contained HTML documents.
// Create with NewRenderer; a Renderer is safe for concurrent use.
type Renderer struct {
	cfg      rendererConfig
	logger   *zap.Logger
	images   ImageFinder
	loader   assets.AssetLoader
	markdown pipeline.MarkdownConverter
	shell    *pipeline.Shell
}

// NewRenderer creates a Renderer. Without options it uses the embedded
// assets, logs nothing and enriches images through a default ImageService
// that reads its key from the environment.
// Returns ErrInvalidAssetPath when WithAssetPath names an unusable directory.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		cfg:      rendererConfig{generator: DefaultGenerator},
		logger:   zap.NewNop(),
		loader:   assets.Embedded(),
		markdown: pipeline.NewGoldmarkConverter(),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.cfg.assetPath != "" {
		overlay, err := assets.Overlay(r.cfg.assetPath)
		if err != nil {
			return nil, convertAssetError(err)
		}
		r.loader = overlay
	}

	switch {
	case r.cfg.imagesDisabled:
		r.images = nil
	case !r.cfg.imagesSet:
		r.images = NewImageService(
			WithImageLogger(r.logger),
			WithImageHTTPClient(r.cfg.httpClient),
		)
	}

	src, err := r.loader.LoadTemplate(assets.ShellTemplateName)
	if err != nil {
		return nil, fmt.Errorf("loading shell template: %w", convertAssetError(err))
	}
	r.shell, err = pipeline.NewShell(src)
	if err != nil {
		return nil, wrapError(ErrShellRender, err)
	}

	return r, nil
}

// decodedSlide is a slide whose content passed its contract.
type decodedSlide struct {
	index   int
	kind    archetype.Kind
	content archetype.Content
	notes   string
}

// Render validates input.Document and renders it. Stages run in order:
//  1. schema validation; a failure returns *ValidationError with every
//     violation, or ErrMalformedDocument when the document does not parse
//  2. content contracts of every slide; a failure returns *ContentError
//     with every issue
//  3. image enrichment for slots with a query and no URL; never fails
//  4. shell asset resolution; only the deck stylesheet and script are fatal
//  5. slide rendering and document assembly
//
// Nothing is fetched before stages 1 and 2 pass, and no partial document is
// ever returned. The same input and options always produce the same bytes.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (r *Renderer) Render(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = fmt.Errorf("internal error: %v", rec)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	deck, err := parseDeck(input.Document)
	if err != nil {
		return nil, err
	}
	slides, err := decodeSlides(deck.Slides)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("deck accepted", zap.String("deck", deck.ID), zap.Int("slides", len(slides)))

	res := &Result{Slides: len(slides)}
	r.enrich(ctx, deck, slides, input.Image, res)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hrefs := input.hrefOptions()
	shellAssets, err := r.resolveShellAssets(deck, input, hrefs, res)
	if err != nil {
		return nil, err
	}

	linker := &slideLinker{
		ctx:        ctx,
		outputPath: input.OutputPath,
		hrefs:      hrefs,
		markdown:   r.markdown,
		logger:     r.logger,
	}
	views, err := renderSlides(ctx, slides, linker)
	if err != nil {
		return nil, err
	}

	html, err := r.shell.Render(pipeline.ShellData{
		Lang:         deck.Language,
		Title:        deck.Title,
		Generator:    r.cfg.generator,
		DeckID:       deck.ID,
		DeckSlug:     deck.Slug,
		DeckVersion:  deck.Version,
		DeckLevel:    deck.Level,
		CoverImage:   shellAssets.cover,
		Stylesheets:  shellAssets.stylesheets,
		InlineStyles: shellAssets.inlineStyles,
		Script:       shellAssets.script,
		InlineScript: shellAssets.inlineScript,
		Slides:       views,
		Contributors: contributorViews(deck.Contributors),
	})
	if err != nil {
		return nil, wrapError(ErrShellRender, err)
	}

	res.HTML = html
	return res, nil
}

// decodeSlides decodes every slide and checks its content contract,
// collecting every issue before failing.
func decodeSlides(in []Slide) ([]decodedSlide, error) {
	out := make([]decodedSlide, 0, len(in))
	var issues []SlideIssue

	for i, s := range in {
		kind := archetype.Canonical(archetype.Kind(s.Layout))
		content, err := archetype.Decode(kind, s.Content)
		if err != nil {
			issues = append(issues, SlideIssue{Index: i, Layout: s.Layout, Err: convertLayoutError(err)})
			continue
		}
		if missing := content.Missing(); len(missing) > 0 {
			issues = append(issues, SlideIssue{Index: i, Layout: s.Layout, Missing: missing})
			continue
		}
		out = append(out, decodedSlide{index: i, kind: kind, content: content, notes: s.Notes})
	}

	if len(issues) > 0 {
		return nil, &ContentError{Issues: issues}
	}
	return out, nil
}

// renderSlides links and renders every slide in input order.
func renderSlides(ctx context.Context, slides []decodedSlide, linker archetype.Linker) ([]pipeline.SlideView, error) {
	views := make([]pipeline.SlideView, 0, len(slides))
	for _, s := range slides {
		if err := archetype.Link(s.content, linker); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, fmt.Errorf("slides[%d] (%s): %w", s.index, s.kind, wrapError(ErrSlideRender, err))
		}
		body, err := archetype.Render(s.kind, s.content)
		if err != nil {
			return nil, fmt.Errorf("slides[%d] (%s): %w", s.index, s.kind, wrapError(ErrSlideRender, err))
		}
		views = append(views, pipeline.SlideView{
			Index:  s.index,
			Layout: string(s.kind),
			Body:   body,
			Notes:  s.notes,
		})
	}
	return views, nil
}

func contributorViews(in []Contributor) []pipeline.ContributorView {
	if len(in) == 0 {
		return nil
	}
	out := make([]pipeline.ContributorView, len(in))
	for i, c := range in {
		out[i] = pipeline.ContributorView{Name: c.Name, Role: c.Role, URL: c.URL}
	}
	return out
}

func (in Input) hrefOptions() HrefOptions {
	root := in.AssetRoot
	if root == "" {
		root = DefaultAssetRoot
	}
	return HrefOptions{AssetRoot: root, AssetPaths: in.AssetPaths}
}
