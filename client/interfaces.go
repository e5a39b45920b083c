package client

import (
	"context"

	"github.com/researchaccelerator-hub/video-aggregator/model/youtube"
)

// SearchQuery describes a search.list call
type SearchQuery struct {
	Query      string
	ChannelID  string
	Order      string // "relevance" when empty
	RegionCode string
	PageToken  string
	MaxResults int64
}

// SearchPage is one page of search results
type SearchPage struct {
	Items         []youtube.SearchItem
	NextPageToken string
}

// VideoPage is one page of full video resources
type VideoPage struct {
	Items         []youtube.YouTubeVideo
	NextPageToken string
}

// ResourceClient issues one external call per resource kind and returns the
// items in the order the provider sent them. Zero matches on a list call is an
// empty slice, not an error. Every failure is a *FetchError.
type ResourceClient interface {
	// ListCategories returns the video categories for a region
	ListCategories(ctx context.Context, regionCode string) ([]youtube.Category, error)

	// GetCategory returns a single category, NotFound when the id does not resolve
	GetCategory(ctx context.Context, id string) (*youtube.Category, error)

	// Search runs a video search
	Search(ctx context.Context, query SearchQuery) (*SearchPage, error)

	// VideosByID fetches full video resources, chunking ids over the batch limit
	VideosByID(ctx context.Context, ids []string) ([]youtube.YouTubeVideo, error)

	// VideosByCategory returns the most popular videos of a category in a region
	VideosByCategory(ctx context.Context, categoryID, regionCode string, maxResults int64) (*VideoPage, error)

	// VideoDetails fetches one video, NotFound when the id does not resolve
	VideoDetails(ctx context.Context, id string) (*youtube.YouTubeVideo, error)

	// ChannelsByID fetches channels, chunking ids over the batch limit
	ChannelsByID(ctx context.Context, ids []string) ([]youtube.YouTubeChannel, error)

	// ChannelDetails fetches one channel, NotFound when the id does not resolve
	ChannelDetails(ctx context.Context, id string) (*youtube.YouTubeChannel, error)

	// ChannelByCustomName resolves a legacy custom/user name to its channel
	ChannelByCustomName(ctx context.Context, name string) (*youtube.YouTubeChannel, error)

	// CommentThreads lists top-level comments with their loaded replies
	CommentThreads(ctx context.Context, videoID string, maxResults int64) ([]youtube.CommentThread, error)
}

// SuggestionClient wraps the autocomplete provider
type SuggestionClient interface {
	Suggestions(ctx context.Context, query string) ([]string, error)
}
