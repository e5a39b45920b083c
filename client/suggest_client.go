package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog/log"

	"github.com/researchaccelerator-hub/video-aggregator/metrics"
)

const (
	resourceSuggestions = "suggestions"

	// DefaultSuggestEndpoint is the public autocomplete endpoint
	DefaultSuggestEndpoint = "https://suggestqueries.google.com/complete/search"
)

// SuggestClient fetches search completions from the autocomplete provider
type SuggestClient struct {
	endpoint   string
	httpClient *http.Client
	metrics    *metrics.Metrics

	maxTries        uint
	initialInterval time.Duration
	maxElapsed      time.Duration
}

// NewSuggestClient creates a suggestion client. An empty endpoint selects
// DefaultSuggestEndpoint.
func NewSuggestClient(endpoint string, timeout time.Duration, m *metrics.Metrics) *SuggestClient {
	if endpoint == "" {
		endpoint = DefaultSuggestEndpoint
	}
	return &SuggestClient{
		endpoint:        endpoint,
		httpClient:      &http.Client{Timeout: timeout},
		metrics:         m,
		maxTries:        3,
		initialInterval: 500 * time.Millisecond,
		maxElapsed:      10 * time.Second,
	}
}

// Suggestions returns completions for a partial query in provider order.
// A blank query returns an empty list without a call.
func (c *SuggestClient) Suggestions(ctx context.Context, query string) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []string{}, nil
	}

	params := url.Values{}
	params.Set("client", "youtube")
	params.Set("hl", "en")
	params.Set("q", query)
	reqURL := c.endpoint + "?" + params.Encode()

	operation := func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}

		c.metrics.ExternalCall(resourceSuggestions)
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return nil, fmt.Errorf("status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return nil, backoff.Permanent(fmt.Errorf("status %d", resp.StatusCode))
		}

		return io.ReadAll(resp.Body)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.initialInterval
	bo.MaxInterval = 4 * c.initialInterval

	body, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(c.maxTries),
		backoff.WithMaxElapsedTime(c.maxElapsed))
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("Failed to fetch search suggestions")
		return nil, NewTransport(resourceSuggestions, query, err)
	}

	suggestions, err := parseSuggestions(body)
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("Malformed suggestion response")
		return nil, NewTransport(resourceSuggestions, query, err)
	}
	return suggestions, nil
}

// parseSuggestions decodes `["query", [...]]`, optionally wrapped in a JSONP
// callback. Entries of the second element are either plain strings or
// arrays whose first element is the suggestion text.
func parseSuggestions(body []byte) ([]string, error) {
	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] != '[' {
		start := bytes.IndexByte(body, '(')
		end := bytes.LastIndexByte(body, ')')
		if start < 0 || end <= start {
			return nil, fmt.Errorf("unrecognized suggestion payload")
		}
		body = body[start+1 : end]
	}

	var outer []json.RawMessage
	if err := json.Unmarshal(body, &outer); err != nil {
		return nil, fmt.Errorf("failed to decode suggestions: %w", err)
	}
	if len(outer) < 2 {
		return []string{}, nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(outer[1], &entries); err != nil {
		return nil, fmt.Errorf("failed to decode suggestion list: %w", err)
	}

	suggestions := make([]string, 0, len(entries))
	for _, entry := range entries {
		var text string
		if err := json.Unmarshal(entry, &text); err == nil {
			suggestions = append(suggestions, text)
			continue
		}

		var tuple []json.RawMessage
		if err := json.Unmarshal(entry, &tuple); err != nil || len(tuple) == 0 {
			continue
		}
		if err := json.Unmarshal(tuple[0], &text); err == nil {
			suggestions = append(suggestions, text)
		}
	}
	return suggestions, nil
}
