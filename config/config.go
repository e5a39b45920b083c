// Package config provides the configuration consumed by the fetch aggregator
package config

import (
	"fmt"
	"time"

	"github.com/researchaccelerator-hub/video-aggregator/model/youtube"
)

// Config holds everything the aggregator needs at construction time.
// There is no package-level instance; each Aggregator gets its own.
type Config struct {
	// Credential sent as the key query parameter on every Data API call
	APIKey string `yaml:"api_key" json:"-"`

	RegionCode        string        `yaml:"region_code" json:"region_code"`
	RequestTimeout    time.Duration `yaml:"request_timeout" json:"request_timeout"`       // Upper bound per external call
	RequestsPerSecond float64       `yaml:"requests_per_second" json:"requests_per_second"` // 0 disables rate limiting
	RateBurst         int           `yaml:"rate_burst" json:"rate_burst"`

	// Cache lifetimes and batch sizes
	DefaultTTL               time.Duration                          `yaml:"default_ttl" json:"default_ttl"`
	TTLByResourceKind        map[youtube.ResourceKind]time.Duration `yaml:"ttl" json:"ttl"`
	BatchLimitByResourceKind map[youtube.ResourceKind]int           `yaml:"batch_limit" json:"batch_limit"`

	MaxResults MaxResultsConfig `yaml:"max_results" json:"max_results"`
	Shorts     ShortsConfig     `yaml:"shorts" json:"shorts"`
	Cache      CacheConfig      `yaml:"cache" json:"cache"`

	// Endpoint overrides, empty means the public endpoints
	APIEndpoint     string `yaml:"api_endpoint" json:"api_endpoint,omitempty"`
	SuggestEndpoint string `yaml:"suggest_endpoint" json:"suggest_endpoint,omitempty"`
}

// MaxResultsConfig sets how many items each primary call asks for
type MaxResultsConfig struct {
	Search        int64 `yaml:"search" json:"search"`
	Shorts        int64 `yaml:"shorts" json:"shorts"`
	Category      int64 `yaml:"category" json:"category"`
	Related       int64 `yaml:"related" json:"related"`
	Comments      int64 `yaml:"comments" json:"comments"`
	ChannelVideos int64 `yaml:"channel_videos" json:"channel_videos"`
}

// ShortsConfig controls the shorts derivation
type ShortsConfig struct {
	Query       string        `yaml:"query" json:"query"`
	MaxDuration time.Duration `yaml:"max_duration" json:"max_duration"`
}

// CacheConfig selects the cache backends
type CacheConfig struct {
	Size     int    `yaml:"size" json:"size"`                     // In-memory LRU entries
	RedisURL string `yaml:"redis_url" json:"redis_url,omitempty"` // Optional shared L2 tier
}

// Data API ceiling for ids per videos.list / channels.list call and for maxResults
const apiMaxBatch = 50

// DefaultTTLs mirrors how stale each kind of data may get before it is refetched.
// Category lists barely change; comments and suggestions churn quickly.
func DefaultTTLs() map[youtube.ResourceKind]time.Duration {
	return map[youtube.ResourceKind]time.Duration{
		youtube.KindCategories:       60 * time.Minute,
		youtube.KindCategory:         5 * time.Minute,
		youtube.KindVideosByCategory: 5 * time.Minute,
		youtube.KindSearch:           5 * time.Minute,
		youtube.KindSuggestions:      2 * time.Minute,
		youtube.KindShorts:           30 * time.Minute,
		youtube.KindVideoDetails:     5 * time.Minute,
		youtube.KindRelatedVideos:    10 * time.Minute,
		youtube.KindComments:         2 * time.Minute,
		youtube.KindChannelDetails:   10 * time.Minute,
		youtube.KindChannelByName:    10 * time.Minute,
		youtube.KindChannelVideos:    5 * time.Minute,
	}
}

// DefaultConfig returns a configuration with sensible defaults. APIKey is left empty.
func DefaultConfig() *Config {
	return &Config{
		RegionCode:        "US",
		RequestTimeout:    15 * time.Second,
		RequestsPerSecond: 0,
		RateBurst:         1,
		DefaultTTL:        5 * time.Minute,
		TTLByResourceKind: DefaultTTLs(),
		BatchLimitByResourceKind: map[youtube.ResourceKind]int{
			youtube.KindVideosByID: apiMaxBatch,
			youtube.KindChannels:   apiMaxBatch,
		},
		MaxResults: MaxResultsConfig{
			Search:        50,
			Shorts:        30,
			Category:      50,
			Related:       10,
			Comments:      20,
			ChannelVideos: 20,
		},
		Shorts: ShortsConfig{
			Query:       "shorts",
			MaxDuration: 60 * time.Second,
		},
		Cache: CacheConfig{
			Size: 1024,
		},
	}
}

// TTL returns the cache lifetime for kind, falling back to DefaultTTL
func (c *Config) TTL(kind youtube.ResourceKind) time.Duration {
	if ttl, ok := c.TTLByResourceKind[kind]; ok {
		return ttl
	}
	return c.DefaultTTL
}

// BatchLimit returns the maximum ids per call for kind, capped at the API maximum
func (c *Config) BatchLimit(kind youtube.ResourceKind) int {
	limit, ok := c.BatchLimitByResourceKind[kind]
	if !ok || limit <= 0 || limit > apiMaxBatch {
		return apiMaxBatch
	}
	return limit
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("api_key is required")
	}

	if c.RegionCode == "" {
		return fmt.Errorf("region_code cannot be empty")
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}

	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second cannot be negative")
	}

	if c.RequestsPerSecond > 0 && c.RateBurst < 1 {
		return fmt.Errorf("rate_burst must be at least 1 when rate limiting is enabled")
	}

	if c.DefaultTTL < 0 {
		return fmt.Errorf("default_ttl cannot be negative")
	}

	for kind, ttl := range c.TTLByResourceKind {
		if ttl < 0 {
			return fmt.Errorf("ttl.%s cannot be negative", kind)
		}
	}

	for kind, limit := range c.BatchLimitByResourceKind {
		if limit < 1 || limit > apiMaxBatch {
			return fmt.Errorf("batch_limit.%s must be between 1 and %d, got %d", kind, apiMaxBatch, limit)
		}
	}

	results := map[string]int64{
		"search":         c.MaxResults.Search,
		"shorts":         c.MaxResults.Shorts,
		"category":       c.MaxResults.Category,
		"related":        c.MaxResults.Related,
		"comments":       c.MaxResults.Comments,
		"channel_videos": c.MaxResults.ChannelVideos,
	}
	for name, n := range results {
		if n < 1 || n > apiMaxBatch {
			return fmt.Errorf("max_results.%s must be between 1 and %d, got %d", name, apiMaxBatch, n)
		}
	}

	if c.Shorts.Query == "" {
		return fmt.Errorf("shorts.query cannot be empty")
	}

	if c.Shorts.MaxDuration <= 0 {
		return fmt.Errorf("shorts.max_duration must be positive")
	}

	if c.Cache.Size < 1 {
		return fmt.Errorf("cache.size must be at least 1")
	}

	return nil
}
