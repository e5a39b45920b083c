package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"

	"github.com/researchaccelerator-hub/video-aggregator/common"
	"github.com/researchaccelerator-hub/video-aggregator/config"
	"github.com/researchaccelerator-hub/video-aggregator/metrics"
	"github.com/researchaccelerator-hub/video-aggregator/model/youtube"
)

// API resource names, used in FetchError.Resource and log fields
const (
	resourceVideos          = "videos"
	resourceChannels        = "channels"
	resourceSearch          = "search"
	resourceVideoCategories = "videoCategories"
	resourceCommentThreads  = "commentThreads"
)

var (
	videoParts    = []string{"snippet", "contentDetails", "statistics"}
	channelParts  = []string{"snippet", "statistics", "brandingSettings"}
	categoryParts = []string{"snippet"}
	searchParts   = []string{"snippet"}
	commentParts  = []string{"snippet", "replies"}
)

var errNotConnected = errors.New("YouTube client not connected")

// Id shapes the provider hands out. A mismatch is only logged: the provider
// stays the authority on whether an id resolves.
var (
	videoIDShape   = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
	channelIDShape = regexp.MustCompile(`^UC[A-Za-z0-9_-]{22}$`)
)

func looksLikeVideoID(id string) bool   { return videoIDShape.MatchString(id) }
func looksLikeChannelID(id string) bool { return channelIDShape.MatchString(id) }

// YouTubeDataClient implements ResourceClient against the YouTube Data API v3
type YouTubeDataClient struct {
	service *ytapi.Service

	apiKey       string
	endpoint     string
	timeout      time.Duration
	videoBatch   int
	channelBatch int
	limiter      *rate.Limiter
	metrics      *metrics.Metrics
}

// Option customizes a YouTubeDataClient
type Option func(*YouTubeDataClient)

// WithMetrics records one external call per outgoing request
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *YouTubeDataClient) {
		c.metrics = m
	}
}

// WithEndpoint overrides the API base URL, e.g. an httptest server
func WithEndpoint(endpoint string) Option {
	return func(c *YouTubeDataClient) {
		c.endpoint = endpoint
	}
}

// NewYouTubeDataClient creates a new YouTube data client. Call Connect before use.
func NewYouTubeDataClient(cfg *config.Config, opts ...Option) (*YouTubeDataClient, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("YouTube API key is required")
	}

	c := &YouTubeDataClient{
		apiKey:       cfg.APIKey,
		endpoint:     cfg.APIEndpoint,
		timeout:      cfg.RequestTimeout,
		videoBatch:   cfg.BatchLimit(youtube.KindVideosByID),
		channelBatch: cfg.BatchLimit(youtube.KindChannels),
		limiter:      newLimiter(cfg.RequestsPerSecond, cfg.RateBurst),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Connect creates the underlying API service
func (c *YouTubeDataClient) Connect(ctx context.Context) error {
	log.Info().Str("endpoint", c.endpoint).Msg("Connecting to YouTube API")

	httpClient := &http.Client{
		Transport: newAPIKeyTransport(c.apiKey, c.limiter, c.metrics),
	}

	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if c.endpoint != "" {
		opts = append(opts, option.WithEndpoint(c.endpoint))
	}

	service, err := ytapi.NewService(ctx, opts...)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create YouTube service")
		return fmt.Errorf("failed to create YouTube service: %w", err)
	}

	c.service = service
	log.Info().Msg("Connected to YouTube API successfully")
	return nil
}

// Disconnect releases the API service
func (c *YouTubeDataClient) Disconnect(ctx context.Context) error {
	c.service = nil
	return nil
}

// callContext bounds a single external call by the configured timeout
func (c *YouTubeDataClient) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

// ListCategories returns the video categories for a region
func (c *YouTubeDataClient) ListCategories(ctx context.Context, regionCode string) ([]youtube.Category, error) {
	if c.service == nil {
		return nil, NewTransport(resourceVideoCategories, regionCode, errNotConnected)
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.service.VideoCategories.List(categoryParts).RegionCode(regionCode).Context(callCtx).Do()
	if err != nil {
		log.Error().Err(err).Str("region_code", regionCode).Msg("Failed to list video categories")
		return nil, classify(resourceVideoCategories, regionCode, err)
	}

	categories := make([]youtube.Category, 0, len(resp.Items))
	for _, item := range resp.Items {
		categories = append(categories, convertCategory(item))
	}
	return categories, nil
}

// GetCategory returns a single category
func (c *YouTubeDataClient) GetCategory(ctx context.Context, id string) (*youtube.Category, error) {
	if id == "" {
		return nil, NewNotFound(resourceVideoCategories, id)
	}
	if c.service == nil {
		return nil, NewTransport(resourceVideoCategories, id, errNotConnected)
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.service.VideoCategories.List(categoryParts).Id(id).Context(callCtx).Do()
	if err != nil {
		log.Error().Err(err).Str("category_id", id).Msg("Failed to get video category")
		return nil, classify(resourceVideoCategories, id, err)
	}
	if len(resp.Items) == 0 {
		return nil, NewNotFound(resourceVideoCategories, id)
	}

	category := convertCategory(resp.Items[0])
	return &category, nil
}

// Search runs search.list restricted to videos
func (c *YouTubeDataClient) Search(ctx context.Context, query SearchQuery) (*SearchPage, error) {
	if c.service == nil {
		return nil, NewTransport(resourceSearch, query.Query, errNotConnected)
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	call := c.service.Search.List(searchParts).Type("video")
	if query.Query != "" {
		call = call.Q(query.Query)
	}
	if query.ChannelID != "" {
		call = call.ChannelId(query.ChannelID)
	}
	if query.Order != "" {
		call = call.Order(query.Order)
	}
	if query.RegionCode != "" {
		call = call.RegionCode(query.RegionCode)
	}
	if query.PageToken != "" {
		call = call.PageToken(query.PageToken)
	}
	if query.MaxResults > 0 {
		call = call.MaxResults(query.MaxResults)
	}

	resp, err := call.Context(callCtx).Do()
	if err != nil {
		log.Error().Err(err).Str("query", query.Query).Str("channel_id", query.ChannelID).Msg("Search failed")
		return nil, classify(resourceSearch, query.Query, err)
	}

	page := &SearchPage{
		Items:         make([]youtube.SearchItem, 0, len(resp.Items)),
		NextPageToken: resp.NextPageToken,
	}
	for _, item := range resp.Items {
		// search can return channels or playlists despite the type filter
		if item.Id == nil || item.Id.VideoId == "" {
			continue
		}
		page.Items = append(page.Items, convertSearchResult(item))
	}

	log.Debug().
		Str("query", query.Query).
		Str("channel_id", query.ChannelID).
		Int("count", len(page.Items)).
		Msg("Search returned")
	return page, nil
}

// VideosByID fetches full video resources in batches of at most the
// configured limit, concatenating results in request order
func (c *YouTubeDataClient) VideosByID(ctx context.Context, ids []string) ([]youtube.YouTubeVideo, error) {
	if len(ids) == 0 {
		return []youtube.YouTubeVideo{}, nil
	}
	if c.service == nil {
		return nil, NewTransport(resourceVideos, "", errNotConnected)
	}

	videos := make([]youtube.YouTubeVideo, 0, len(ids))
	for _, batch := range common.Chunk(ids, c.videoBatch) {
		callCtx, cancel := c.callContext(ctx)
		resp, err := c.service.Videos.List(videoParts).Id(batch...).Context(callCtx).Do()
		cancel()
		if err != nil {
			log.Error().Err(err).Strs("video_ids", batch).Msg("Failed to get videos")
			return nil, classify(resourceVideos, "", err)
		}
		for _, item := range resp.Items {
			videos = append(videos, convertVideo(item))
		}
	}

	log.Debug().Int("requested", len(ids)).Int("count", len(videos)).Msg("Videos retrieved by id")
	return videos, nil
}

// VideosByCategory returns the mostPopular chart for a category in a region
func (c *YouTubeDataClient) VideosByCategory(ctx context.Context, categoryID, regionCode string, maxResults int64) (*VideoPage, error) {
	if c.service == nil {
		return nil, NewTransport(resourceVideos, categoryID, errNotConnected)
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	call := c.service.Videos.List(videoParts).Chart("mostPopular")
	if categoryID != "" {
		call = call.VideoCategoryId(categoryID)
	}
	if regionCode != "" {
		call = call.RegionCode(regionCode)
	}
	if maxResults > 0 {
		call = call.MaxResults(maxResults)
	}

	resp, err := call.Context(callCtx).Do()
	if err != nil {
		log.Error().Err(err).Str("category_id", categoryID).Str("region_code", regionCode).Msg("Failed to get videos by category")
		return nil, classify(resourceVideos, categoryID, err)
	}

	page := &VideoPage{
		Items:         make([]youtube.YouTubeVideo, 0, len(resp.Items)),
		NextPageToken: resp.NextPageToken,
	}
	for _, item := range resp.Items {
		page.Items = append(page.Items, convertVideo(item))
	}
	return page, nil
}

// VideoDetails fetches one video
func (c *YouTubeDataClient) VideoDetails(ctx context.Context, id string) (*youtube.YouTubeVideo, error) {
	if id == "" {
		return nil, NewNotFound(resourceVideos, id)
	}
	if !looksLikeVideoID(id) {
		log.Warn().Str("video_id", id).Msg("Video id is not 11 url-safe characters, querying anyway")
	}

	videos, err := c.VideosByID(ctx, []string{id})
	if err != nil {
		var fe *FetchError
		if errors.As(err, &fe) {
			fe.ID = id
		}
		return nil, err
	}
	if len(videos) == 0 {
		log.Info().Str("video_id", id).Msg("Video not found on YouTube")
		return nil, NewNotFound(resourceVideos, id)
	}
	return &videos[0], nil
}

// ChannelsByID fetches channels in batches of at most the configured limit
func (c *YouTubeDataClient) ChannelsByID(ctx context.Context, ids []string) ([]youtube.YouTubeChannel, error) {
	if len(ids) == 0 {
		return []youtube.YouTubeChannel{}, nil
	}
	if c.service == nil {
		return nil, NewTransport(resourceChannels, "", errNotConnected)
	}

	channels := make([]youtube.YouTubeChannel, 0, len(ids))
	for _, batch := range common.Chunk(ids, c.channelBatch) {
		callCtx, cancel := c.callContext(ctx)
		resp, err := c.service.Channels.List(channelParts).Id(batch...).Context(callCtx).Do()
		cancel()
		if err != nil {
			log.Error().Err(err).Strs("channel_ids", batch).Msg("Failed to get channels from YouTube API")
			return nil, classify(resourceChannels, "", err)
		}
		for _, item := range resp.Items {
			channels = append(channels, convertChannel(item))
		}
	}
	return channels, nil
}

// ChannelDetails fetches one channel by id
func (c *YouTubeDataClient) ChannelDetails(ctx context.Context, id string) (*youtube.YouTubeChannel, error) {
	if id == "" {
		return nil, NewNotFound(resourceChannels, id)
	}
	if !looksLikeChannelID(id) {
		log.Warn().Str("channel_id", id).Msg("Channel id is not UC plus 22 url-safe characters, querying anyway")
	}

	channels, err := c.ChannelsByID(ctx, []string{id})
	if err != nil {
		var fe *FetchError
		if errors.As(err, &fe) {
			fe.ID = id
		}
		return nil, err
	}
	if len(channels) == 0 {
		log.Info().Str("channel_id", id).Msg("Channel not found on YouTube")
		return nil, NewNotFound(resourceChannels, id)
	}

	log.Info().
		Str("channel_id", channels[0].ID).
		Str("title", channels[0].Title).
		Uint64("subscribers", channels[0].SubscriberCount).
		Msg("YouTube channel info retrieved")
	return &channels[0], nil
}

// ChannelByCustomName resolves a legacy custom/user name
func (c *YouTubeDataClient) ChannelByCustomName(ctx context.Context, name string) (*youtube.YouTubeChannel, error) {
	if name == "" {
		return nil, NewNotFound(resourceChannels, name)
	}
	if c.service == nil {
		return nil, NewTransport(resourceChannels, name, errNotConnected)
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.service.Channels.List(channelParts).ForUsername(name).MaxResults(1).Context(callCtx).Do()
	if err != nil {
		log.Error().Err(err).Str("custom_name", name).Msg("Failed to get channel by custom name")
		return nil, classify(resourceChannels, name, err)
	}
	if len(resp.Items) == 0 {
		log.Info().Str("custom_name", name).Msg("Channel not found on YouTube")
		return nil, NewNotFound(resourceChannels, name)
	}

	channel := convertChannel(resp.Items[0])
	return &channel, nil
}

// CommentThreads lists top-level comments with replies for a video
func (c *YouTubeDataClient) CommentThreads(ctx context.Context, videoID string, maxResults int64) ([]youtube.CommentThread, error) {
	if c.service == nil {
		return nil, NewTransport(resourceCommentThreads, videoID, errNotConnected)
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	call := c.service.CommentThreads.List(commentParts).VideoId(videoID)
	if maxResults > 0 {
		call = call.MaxResults(maxResults)
	}

	resp, err := call.Context(callCtx).Do()
	if err != nil {
		log.Error().Err(err).Str("video_id", videoID).Msg("Failed to list comment threads")
		return nil, classify(resourceCommentThreads, videoID, err)
	}

	threads := make([]youtube.CommentThread, 0, len(resp.Items))
	for _, item := range resp.Items {
		threads = append(threads, convertCommentThread(item))
	}
	return threads, nil
}
