package lessondeck

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-lessondeck/internal/archetype"
	"github.com/alnah/go-lessondeck/internal/imagesearch"
)

// maxImageLookups bounds concurrent lookups within one render.
const maxImageLookups = 8

// enrich fills every image slot that has a query and no URL, including the
// cover image. Slots are gathered across the whole deck, each distinct query
// is looked up once, and all lookups finish before enrich returns.
func (r *Renderer) enrich(ctx context.Context, deck *Deck, slides []decodedSlide, opts ImageOptions, res *Result) {
	var slots []*archetype.ImageRef
	for _, s := range slides {
		for _, slot := range s.content.ImageSlots() {
			if slot.NeedsLookup() {
				slots = append(slots, slot)
			}
		}
	}

	var cover *archetype.ImageRef
	if deck.CoverImage != nil {
		cover = &archetype.ImageRef{
			ImageURL:    deck.CoverImage.URL,
			ImageQuery:  deck.CoverImage.Query,
			ImageAlt:    deck.CoverImage.Alt,
			ImageCredit: deck.CoverImage.Credit,
		}
		if cover.NeedsLookup() {
			slots = append(slots, cover)
		}
	}

	if len(slots) == 0 {
		return
	}
	if r.images == nil {
		r.logger.Debug("image enrichment disabled", zap.Int("slots", len(slots)))
		return
	}

	if opts.MetadataKey == "" && deck.Assets != nil {
		opts.MetadataKey = deck.Assets.ImageProviderKey
	}

	var queries []string
	index := make(map[string]int)
	for _, slot := range slots {
		q := imagesearch.NormalizeQuery(slot.ImageQuery)
		if _, ok := index[q]; !ok {
			index[q] = len(queries)
			queries = append(queries, q)
		}
	}

	found := make([]*ImageCandidate, len(queries))
	var g errgroup.Group
	g.SetLimit(maxImageLookups)
	for i, q := range queries {
		g.Go(func() error {
			found[i] = r.images.FetchImage(ctx, q, opts)
			return nil
		})
	}
	_ = g.Wait()

	for _, slot := range slots {
		q := imagesearch.NormalizeQuery(slot.ImageQuery)
		c := found[index[q]]
		if c == nil || c.URL == "" {
			r.logger.Debug("no image for query", zap.String("query", q))
			res.Warnings = append(res.Warnings, fmt.Sprintf("no image for query %q", q))
			continue
		}
		slot.Fill(c.URL, c.Alt, c.Photographer)
		res.ImagesResolved++
	}

	if cover != nil {
		deck.CoverImage.URL = cover.ImageURL
		deck.CoverImage.Alt = cover.ImageAlt
		deck.CoverImage.Credit = cover.ImageCredit
	}

	r.logger.Debug("images enriched",
		zap.Int("slots", len(slots)),
		zap.Int("queries", len(queries)),
		zap.Int("resolved", res.ImagesResolved),
	)
}
