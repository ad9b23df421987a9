package imagesearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// maxResponseSize bounds provider response bodies.
const maxResponseSize = 4 << 20

type searchResponse struct {
	Photos []photo `json:"photos"`
}

type photo struct {
	Alt          string            `json:"alt"`
	Photographer string            `json:"photographer"`
	Src          map[string]string `json:"src"`
}

// search performs one provider request.
func (s *Service) search(ctx context.Context, key, query string, opts Options) (*searchResponse, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("orientation", opts.Orientation)
	params.Set("per_page", strconv.Itoa(opts.PerPage))
	params.Set("size", opts.Size)

	reqURL := strings.TrimRight(s.endpoint, "/") + "/search?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	req.Header.Set("Authorization", key)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))
		return nil, err
	}

	var out searchResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return &out, nil
}

func checkStatus(code int) error {
	if code >= 200 && code < 300 {
		return nil
	}
	return &StatusError{Code: code}
}

// StatusError reports a non-2xx provider response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d %s", ErrProviderStatus, e.Code, http.StatusText(e.Code))
}

func (e *StatusError) Unwrap() error { return ErrProviderStatus }

// pick returns the first photo's best source for the requested variant.
func pick(resp *searchResponse, variant string) (*Candidate, error) {
	if resp == nil || len(resp.Photos) == 0 {
		return nil, ErrNoResults
	}
	p := resp.Photos[0]

	order := fallbackVariants
	if variant != "" {
		order = append([]string{variant}, fallbackVariants...)
	}
	for _, v := range order {
		if src := strings.TrimSpace(p.Src[v]); src != "" {
			return &Candidate{URL: src, Alt: p.Alt, Photographer: p.Photographer}, nil
		}
	}
	return nil, ErrNoResults
}
