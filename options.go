package lessondeck

import (
	"net/http"

	"go.uber.org/zap"
)

// DefaultGenerator is the generator meta value of rendered documents.
const DefaultGenerator = "lessondeck"

// Option configures a Renderer.
type Option func(*Renderer)

// rendererConfig holds construction-time settings.
type rendererConfig struct {
	assetPath      string
	generator      string
	httpClient     *http.Client
	imagesSet      bool
	imagesDisabled bool
}

// WithLogger sets the logger for render progress and degradation warnings.
// The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithImageService sets the image finder used for enrichment. Passing the same
// ImageService to several renderers shares its cache and warnings.
// A nil finder disables enrichment.
func WithImageService(finder ImageFinder) Option {
	return func(r *Renderer) {
		r.cfg.imagesSet = true
		r.images = finder
	}
}

// WithoutImages disables image enrichment. Slots with an explicit URL still
// render; slots with only a query render without an image.
func WithoutImages() Option {
	return func(r *Renderer) {
		r.cfg.imagesDisabled = true
	}
}

// WithAssetPath sets a directory whose styles/, scripts/ and templates/ take
// precedence over the embedded assets.
func WithAssetPath(path string) Option {
	return func(r *Renderer) {
		r.cfg.assetPath = path
	}
}

// WithHTTPClient sets the HTTP client of the default image service.
// Ignored when WithImageService is used.
func WithHTTPClient(client *http.Client) Option {
	return func(r *Renderer) {
		r.cfg.httpClient = client
	}
}

// WithGenerator sets the generator meta value.
func WithGenerator(name string) Option {
	return func(r *Renderer) {
		if name != "" {
			r.cfg.generator = name
		}
	}
}
