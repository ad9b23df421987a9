package imagesearch

import (
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Default search parameters.
const (
	DefaultEndpoint    = "https://api.pexels.com/v1"
	DefaultOrientation = "landscape"
	DefaultPerPage     = 1
	DefaultSize        = "large"
	DefaultTimeout     = 10 * time.Second
	defaultConcurrency = 8
)

// Environment variables consulted for the provider key, in order.
const (
	EnvKey       = "LESSONDECK_IMAGE_KEY"
	EnvPexelsKey = "PEXELS_API_KEY"
)

// fallbackVariants is the src preference after an explicitly requested variant.
var fallbackVariants = []string{"large2x", "large", "original", "medium"}

// Options are per-lookup search parameters. Field order is fixed because the
// JSON encoding is part of the cache key.
type Options struct {
	Orientation string `json:"orientation"`
	PerPage     int    `json:"perPage"`
	Size        string `json:"size"`
	Variant     string `json:"variant"`

	// MetadataKey is the page-level provider key, used when neither an
	// override nor an environment key is available.
	MetadataKey string `json:"-"`
}

func (o Options) withDefaults() Options {
	if o.Orientation == "" {
		o.Orientation = DefaultOrientation
	}
	if o.PerPage <= 0 {
		o.PerPage = DefaultPerPage
	}
	if o.Size == "" {
		o.Size = DefaultSize
	}
	return o
}

// Option configures a Service.
type Option func(*Service)

// WithAPIKey sets the in-process override key. It wins over every other source.
func WithAPIKey(key string) Option {
	return func(s *Service) { s.overrideKey = key }
}

// WithEnvLookup replaces os.LookupEnv for key resolution.
func WithEnvLookup(lookup func(string) (string, bool)) Option {
	return func(s *Service) {
		if lookup != nil {
			s.lookupEnv = lookup
		}
	}
}

// WithHTTPClient sets the HTTP client used for provider requests.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Service) {
		if client != nil {
			s.client = client
		}
	}
}

// WithTimeout sets the timeout of the default HTTP client.
// Ignored when WithHTTPClient supplies a client.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithEndpoint sets the provider base URL.
func WithEndpoint(endpoint string) Option {
	return func(s *Service) {
		if endpoint != "" {
			s.endpoint = endpoint
		}
	}
}

// WithLogger sets the logger used for degradation warnings.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRateInterval spaces provider requests at least d apart, with a burst of 2.
// Zero leaves requests unpaced.
func WithRateInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.limiter = rate.NewLimiter(rate.Every(d), 2)
		}
	}
}
