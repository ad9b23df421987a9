package lessondeck

import (
	"context"

	"go.uber.org/zap"

	"github.com/alnah/go-lessondeck/internal/archetype"
	"github.com/alnah/go-lessondeck/internal/pipeline"
)

// slideLinker resolves per-slide references against the output location.
// A reference that cannot be resolved is kept as written.
type slideLinker struct {
	ctx        context.Context
	outputPath string
	hrefs      HrefOptions
	markdown   pipeline.MarkdownConverter
	logger     *zap.Logger
}

func (l *slideLinker) Href(ref string) string {
	href, err := ResolveAssetHref(l.outputPath, ref, l.hrefs)
	if err != nil {
		l.logger.Debug("asset reference kept as written", zap.String("ref", ref), zap.Error(err))
		return ref
	}
	return href
}

func (l *slideLinker) HTML(fragment string) string {
	out, err := pipeline.RewriteRefs(fragment, func(ref string) (string, bool) {
		href := l.Href(ref)
		return href, href != ref
	})
	if err != nil {
		l.logger.Debug("fragment kept as written", zap.Error(err))
		return fragment
	}
	return out
}

func (l *slideLinker) Markdown(src string) (string, error) {
	return l.markdown.ToHTML(l.ctx, src)
}

// Compile-time interface check.
var _ archetype.Linker = (*slideLinker)(nil)
