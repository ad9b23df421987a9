// Package imagesearch looks up stock photos for free-text queries.
//
// A Service resolves its provider key once, caches every provider response for
// its lifetime, shares concurrent identical lookups, and never fails: every
// problem degrades to a nil result and a warning logged once per cause.
package imagesearch

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/alnah/go-lessondeck/internal/logging"
)

// Candidate is an image chosen for a query.
type Candidate struct {
	URL          string
	Alt          string
	Photographer string
}

// Service is safe for concurrent use.
type Service struct {
	endpoint    string
	client      *http.Client
	timeout     time.Duration
	logger      *zap.Logger
	lookupEnv   func(string) (string, bool)
	overrideKey string
	limiter     *rate.Limiter

	responses *cache.Cache
	inflight  singleflight.Group

	mu          sync.Mutex
	keyResolved bool
	key         string
	warned      map[string]struct{}
}

// New creates a Service. Without options it talks to the public provider,
// reads the key from the environment and logs nothing.
func New(opts ...Option) *Service {
	s := &Service{
		endpoint:  DefaultEndpoint,
		timeout:   DefaultTimeout,
		logger:    zap.NewNop(),
		lookupEnv: os.LookupEnv,
		limiter:   rate.NewLimiter(rate.Inf, 1),
		responses: cache.New(cache.NoExpiration, 0),
		warned:    make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		s.client = &http.Client{Timeout: s.timeout}
	}
	return s
}

// FetchImage returns the best image for query, or nil when the lookup
// cannot produce one.
func (s *Service) FetchImage(ctx context.Context, query string, opts Options) *Candidate {
	q := NormalizeQuery(query)
	if q == "" {
		return nil
	}
	opts = opts.withDefaults()

	key := s.resolveKey(opts.MetadataKey)
	if key == "" {
		return nil
	}

	resp, err := s.lookup(ctx, key, q, opts)
	if err != nil {
		s.warnOnce(err, zap.String("query", q))
		return nil
	}

	c, err := pick(resp, opts.Variant)
	if err != nil {
		s.warnOnce(err, zap.String("query", q))
		return nil
	}
	return c
}

// FetchImages looks up every query concurrently. The result keeps input order
// and omits queries that produced no image.
func (s *Service) FetchImages(ctx context.Context, queries []string, opts Options) []Candidate {
	results := make([]*Candidate, len(queries))

	var g errgroup.Group
	g.SetLimit(defaultConcurrency)
	for i, q := range queries {
		g.Go(func() error {
			results[i] = s.FetchImage(ctx, q, opts)
			return nil
		})
	}
	_ = g.Wait()

	out := make([]Candidate, 0, len(results))
	for _, c := range results {
		if c != nil {
			out = append(out, *c)
		}
	}
	return out
}

// lookup serves a provider response from cache, sharing in-flight requests.
func (s *Service) lookup(ctx context.Context, key, query string, opts Options) (*searchResponse, error) {
	ck := cacheKey(query, opts)
	if v, ok := s.responses.Get(ck); ok {
		return v.(*searchResponse), nil
	}

	v, err, _ := s.inflight.Do(ck, func() (any, error) {
		// Another caller may have filled the cache while this one waited.
		if v, ok := s.responses.Get(ck); ok {
			return v, nil
		}
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, errors.Join(ErrNetwork, err)
		}
		resp, err := s.search(ctx, key, query, opts)
		if err != nil {
			return nil, err
		}
		s.responses.Set(ck, resp, cache.NoExpiration)
		s.logger.Debug("image provider response cached",
			zap.String("query", query), zap.Int("photos", len(resp.Photos)))
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*searchResponse), nil
}

// resolveKey picks the provider key the first time it is called and keeps
// that answer for the lifetime of the service.
func (s *Service) resolveKey(metadataKey string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.keyResolved {
		return s.key
	}
	s.keyResolved = true

	source := ""
	switch {
	case strings.TrimSpace(s.overrideKey) != "":
		s.key, source = strings.TrimSpace(s.overrideKey), "override"
	case s.envKey() != "":
		s.key, source = s.envKey(), "environment"
	case strings.TrimSpace(metadataKey) != "":
		s.key, source = strings.TrimSpace(metadataKey), "metadata"
	}

	if s.key == "" {
		s.warnLocked(ErrNoKey, zap.Strings("tried", []string{"override", EnvKey, EnvPexelsKey, "metadata"}))
		return ""
	}
	s.logger.Debug("image provider key resolved",
		zap.String("source", source), logging.Secret("key", s.key))
	return s.key
}

func (s *Service) envKey() string {
	for _, name := range []string{EnvKey, EnvPexelsKey} {
		if v, ok := s.lookupEnv(name); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func (s *Service) warnOnce(err error, fields ...zap.Field) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warnLocked(err, fields...)
}

func (s *Service) warnLocked(err error, fields ...zap.Field) {
	cause := causeOf(err)
	if _, seen := s.warned[cause]; seen {
		return
	}
	s.warned[cause] = struct{}{}
	s.logger.Warn("image enrichment degraded",
		append([]zap.Field{zap.String("cause", cause), zap.Error(err)}, fields...)...)
}

// causeOf groups errors so each kind of failure is reported once.
func causeOf(err error) string {
	var se *StatusError
	switch {
	case errors.As(err, &se):
		return "status " + strconv.Itoa(se.Code)
	case errors.Is(err, ErrNoKey):
		return "no key"
	case errors.Is(err, ErrNetwork):
		return "network"
	case errors.Is(err, ErrDecode):
		return "decode"
	case errors.Is(err, ErrNoResults):
		return "no results"
	default:
		return "unknown"
	}
}

// NormalizeQuery trims, lower-cases and collapses inner whitespace.
func NormalizeQuery(q string) string {
	return strings.Join(strings.Fields(strings.ToLower(q)), " ")
}

func cacheKey(query string, opts Options) string {
	b, _ := json.Marshal(opts) // Options holds only strings and ints
	return query + "\x00" + string(b)
}
