package lessondeck

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-lessondeck/internal/imagesearch"
)

// Environment variables consulted for the image provider key, in order.
const (
	EnvImageKey  = imagesearch.EnvKey
	EnvPexelsKey = imagesearch.EnvPexelsKey
)

// ImageCandidate is an image chosen for a query.
type ImageCandidate struct {
	URL          string
	Alt          string
	Photographer string
}

// ImageOptions are per-lookup search parameters. Zero values use the
// defaults: landscape orientation, one result per page, large size.
type ImageOptions struct {
	Orientation string
	PerPage     int
	Size        string
	// Variant is the preferred photo source; large2x, large, original and
	// medium are tried after it.
	Variant string
	// MetadataKey is the page-level provider key, used only when neither an
	// override nor an environment key exists. Render fills it from the deck.
	MetadataKey string
}

func (o ImageOptions) internal() imagesearch.Options {
	return imagesearch.Options{
		Orientation: o.Orientation,
		PerPage:     o.PerPage,
		Size:        o.Size,
		Variant:     o.Variant,
		MetadataKey: o.MetadataKey,
	}
}

// ImageFinder looks up one image per query. Implementations must be safe for
// concurrent use and must not fail: a miss is nil.
type ImageFinder interface {
	FetchImage(ctx context.Context, query string, opts ImageOptions) *ImageCandidate
}

// ImageService finds stock photos through a Pexels-compatible provider.
//
// The provider key is resolved once, on first use: WithImageKey, then
// LESSONDECK_IMAGE_KEY, then PEXELS_API_KEY, then the page-level key. Every
// response is cached for the lifetime of the service and concurrent identical
// lookups share one request. Provider problems never surface as errors: the
// lookup returns nil and a warning is logged once per distinct cause.
//
// Share one ImageService across renders to share its cache.
type ImageService struct {
	svc *imagesearch.Service
}

// ImageServiceOption configures an ImageService.
type ImageServiceOption func(*imageServiceConfig)

type imageServiceConfig struct {
	opts []imagesearch.Option
}

func (c *imageServiceConfig) add(opt imagesearch.Option) {
	c.opts = append(c.opts, opt)
}

// WithImageKey sets the provider key. It wins over environment and page keys.
func WithImageKey(key string) ImageServiceOption {
	return func(c *imageServiceConfig) { c.add(imagesearch.WithAPIKey(key)) }
}

// WithImageEndpoint sets the provider base URL.
func WithImageEndpoint(endpoint string) ImageServiceOption {
	return func(c *imageServiceConfig) { c.add(imagesearch.WithEndpoint(endpoint)) }
}

// WithImageHTTPClient sets the HTTP client used for provider requests.
func WithImageHTTPClient(client *http.Client) ImageServiceOption {
	return func(c *imageServiceConfig) { c.add(imagesearch.WithHTTPClient(client)) }
}

// WithImageTimeout sets the per-request timeout of the default HTTP client.
func WithImageTimeout(d time.Duration) ImageServiceOption {
	return func(c *imageServiceConfig) { c.add(imagesearch.WithTimeout(d)) }
}

// WithImageRateInterval spaces provider requests at least d apart.
func WithImageRateInterval(d time.Duration) ImageServiceOption {
	return func(c *imageServiceConfig) { c.add(imagesearch.WithRateInterval(d)) }
}

// WithImageLogger sets the logger for degradation warnings.
func WithImageLogger(logger *zap.Logger) ImageServiceOption {
	return func(c *imageServiceConfig) { c.add(imagesearch.WithLogger(logger)) }
}

// WithImageEnv replaces os.LookupEnv for key resolution.
func WithImageEnv(lookup func(string) (string, bool)) ImageServiceOption {
	return func(c *imageServiceConfig) { c.add(imagesearch.WithEnvLookup(lookup)) }
}

// NewImageService creates an ImageService.
func NewImageService(opts ...ImageServiceOption) *ImageService {
	var cfg imageServiceConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return &ImageService{svc: imagesearch.New(cfg.opts...)}
}

// FetchImage returns the best image for query, or nil.
func (s *ImageService) FetchImage(ctx context.Context, query string, opts ImageOptions) *ImageCandidate {
	c := s.svc.FetchImage(ctx, query, opts.internal())
	if c == nil {
		return nil
	}
	return &ImageCandidate{URL: c.URL, Alt: c.Alt, Photographer: c.Photographer}
}

// FetchImages looks up every query concurrently. The result keeps input order
// and omits queries without an image.
func (s *ImageService) FetchImages(ctx context.Context, queries []string, opts ImageOptions) []ImageCandidate {
	found := s.svc.FetchImages(ctx, queries, opts.internal())
	out := make([]ImageCandidate, len(found))
	for i, c := range found {
		out[i] = ImageCandidate{URL: c.URL, Alt: c.Alt, Photographer: c.Photographer}
	}
	return out
}

// Compile-time interface check.
var _ ImageFinder = (*ImageService)(nil)
