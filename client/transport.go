package client

import (
	"fmt"
	"net/http"
	"path"

	"golang.org/x/time/rate"

	"github.com/researchaccelerator-hub/video-aggregator/metrics"
)

// apiKeyTransport authenticates every Data API request with the key query
// parameter and paces requests through an optional limiter.
//
// option.WithAPIKey is ignored by the API library once option.WithHTTPClient
// is supplied, so the key has to be attached here.
type apiKeyTransport struct {
	apiKey  string
	base    http.RoundTripper
	limiter *rate.Limiter
	metrics *metrics.Metrics
}

func newAPIKeyTransport(apiKey string, limiter *rate.Limiter, m *metrics.Metrics) *apiKeyTransport {
	return &apiKeyTransport{
		apiKey:  apiKey,
		base:    http.DefaultTransport,
		limiter: limiter,
		metrics: m,
	}
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(req.Context()); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	// RoundTrippers must not modify the caller's request
	r := req.Clone(req.Context())
	q := r.URL.Query()
	q.Set("key", t.apiKey)
	r.URL.RawQuery = q.Encode()

	t.metrics.ExternalCall(path.Base(r.URL.Path))
	return t.base.RoundTrip(r)
}

// newLimiter returns nil when rps is zero, meaning unlimited
func newLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}
