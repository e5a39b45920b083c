package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/researchaccelerator-hub/video-aggregator/model/youtube"
)

// EnvPrefix is prepended to every environment variable override, e.g. YTAGG_API_KEY
const EnvPrefix = "YTAGG"

// SetDefaults registers DefaultConfig's values on v so that environment
// variables and config files can override any of them
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("region_code", d.RegionCode)
	v.SetDefault("request_timeout", d.RequestTimeout)
	v.SetDefault("requests_per_second", d.RequestsPerSecond)
	v.SetDefault("rate_burst", d.RateBurst)
	v.SetDefault("default_ttl", d.DefaultTTL)

	for kind, ttl := range d.TTLByResourceKind {
		v.SetDefault("ttl."+kind.String(), ttl)
	}
	for kind, limit := range d.BatchLimitByResourceKind {
		v.SetDefault("batch_limit."+kind.String(), limit)
	}

	v.SetDefault("max_results.search", d.MaxResults.Search)
	v.SetDefault("max_results.shorts", d.MaxResults.Shorts)
	v.SetDefault("max_results.category", d.MaxResults.Category)
	v.SetDefault("max_results.related", d.MaxResults.Related)
	v.SetDefault("max_results.comments", d.MaxResults.Comments)
	v.SetDefault("max_results.channel_videos", d.MaxResults.ChannelVideos)

	v.SetDefault("shorts.query", d.Shorts.Query)
	v.SetDefault("shorts.max_duration", d.Shorts.MaxDuration)

	v.SetDefault("cache.size", d.Cache.Size)
	v.SetDefault("cache.redis_url", "")

	v.SetDefault("api_key", "")
	v.SetDefault("api_endpoint", "")
	v.SetDefault("suggest_endpoint", "")
}

// BindEnv wires YTAGG_* environment variables into v. Nested keys use
// underscores, e.g. YTAGG_TTL_VIDEO_DETAILS or YTAGG_CACHE_REDIS_URL.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

// Load builds a Config from v. Defaults must already be registered with SetDefaults.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		APIKey:                   v.GetString("api_key"),
		RegionCode:               v.GetString("region_code"),
		RequestTimeout:           v.GetDuration("request_timeout"),
		RequestsPerSecond:        v.GetFloat64("requests_per_second"),
		RateBurst:                v.GetInt("rate_burst"),
		DefaultTTL:               v.GetDuration("default_ttl"),
		TTLByResourceKind:        make(map[youtube.ResourceKind]time.Duration),
		BatchLimitByResourceKind: make(map[youtube.ResourceKind]int),
		MaxResults: MaxResultsConfig{
			Search:        v.GetInt64("max_results.search"),
			Shorts:        v.GetInt64("max_results.shorts"),
			Category:      v.GetInt64("max_results.category"),
			Related:       v.GetInt64("max_results.related"),
			Comments:      v.GetInt64("max_results.comments"),
			ChannelVideos: v.GetInt64("max_results.channel_videos"),
		},
		Shorts: ShortsConfig{
			Query:       v.GetString("shorts.query"),
			MaxDuration: v.GetDuration("shorts.max_duration"),
		},
		Cache: CacheConfig{
			Size:     v.GetInt("cache.size"),
			RedisURL: v.GetString("cache.redis_url"),
		},
		APIEndpoint:     v.GetString("api_endpoint"),
		SuggestEndpoint: v.GetString("suggest_endpoint"),
	}

	// Looked up key by key so that env overrides of individual kinds apply
	for _, kind := range youtube.AggregateKinds {
		if key := "ttl." + kind.String(); v.IsSet(key) {
			cfg.TTLByResourceKind[kind] = v.GetDuration(key)
		}
	}
	for _, kind := range youtube.BatchKinds {
		if key := "batch_limit." + kind.String(); v.IsSet(key) {
			cfg.BatchLimitByResourceKind[kind] = v.GetInt(key)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
