package client

import (
	"context"
	"fmt"

	"github.com/researchaccelerator-hub/video-aggregator/config"
	"github.com/researchaccelerator-hub/video-aggregator/metrics"
)

// NewClients creates and connects the Data API client and the suggestion
// client described by cfg
func NewClients(ctx context.Context, cfg *config.Config, m *metrics.Metrics) (*YouTubeDataClient, *SuggestClient, error) {
	yt, err := NewYouTubeDataClient(cfg, WithMetrics(m))
	if err != nil {
		return nil, nil, err
	}
	if err := yt.Connect(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to connect YouTube client: %w", err)
	}

	suggest := NewSuggestClient(cfg.SuggestEndpoint, cfg.RequestTimeout, m)
	return yt, suggest, nil
}
