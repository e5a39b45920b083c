package aggregator

import (
	"context"
	"strings"

	"github.com/researchaccelerator-hub/video-aggregator/cache"
	"github.com/researchaccelerator-hub/video-aggregator/client"
	"github.com/researchaccelerator-hub/video-aggregator/model/youtube"
)

// Categories lists the video categories of the configured region
func (a *Aggregator) Categories(ctx context.Context) *AggregateResult[youtube.Category] {
	region := a.cfg.RegionCode
	key := cache.Key(youtube.KindCategories, region)

	return runList[youtube.Category](ctx, a, youtube.KindCategories, key, func(ctx context.Context, r *run) ([]youtube.Category, string, error) {
		categories, err := a.client.ListCategories(ctx, region)
		return categories, "", err
	})
}

// Category returns one category, NotFound when id does not resolve
func (a *Aggregator) Category(ctx context.Context, id string) (*youtube.Category, error) {
	key := cache.Key(youtube.KindCategory, id)

	return runSingle[youtube.Category](ctx, a, youtube.KindCategory, key, func(ctx context.Context, r *run) (*youtube.Category, error) {
		if id == "" {
			return nil, client.NewNotFound("videoCategories", id)
		}
		return a.client.GetCategory(ctx, id)
	})
}

// VideosByCategory returns the most popular videos of a category, each
// carrying its channel's avatar
func (a *Aggregator) VideosByCategory(ctx context.Context, categoryID string) *AggregateResult[youtube.YouTubeVideo] {
	region := a.cfg.RegionCode
	key := cache.Key(youtube.KindVideosByCategory, categoryID, region)

	return runList[youtube.YouTubeVideo](ctx, a, youtube.KindVideosByCategory, key, func(ctx context.Context, r *run) ([]youtube.YouTubeVideo, string, error) {
		page, err := a.client.VideosByCategory(ctx, categoryID, region, a.cfg.MaxResults.Category)
		if err != nil {
			return nil, "", err
		}
		return enrich(ctx, r, page.Items), page.NextPageToken, nil
	})
}

// Search runs a free-text video search. A blank query returns an empty
// result without any call.
func (a *Aggregator) Search(ctx context.Context, query string) *AggregateResult[youtube.SearchItem] {
	query = strings.TrimSpace(query)
	if query == "" {
		return newResult[youtube.SearchItem](a.begin(youtube.KindSearch), nil, "")
	}
	key := cache.Key(youtube.KindSearch, query)

	return runList[youtube.SearchItem](ctx, a, youtube.KindSearch, key, func(ctx context.Context, r *run) ([]youtube.SearchItem, string, error) {
		page, err := a.client.Search(ctx, client.SearchQuery{
			Query:      query,
			MaxResults: a.cfg.MaxResults.Search,
		})
		if err != nil {
			return nil, "", err
		}
		return enrich(ctx, r, page.Items), page.NextPageToken, nil
	})
}

// Suggestions returns autocomplete suggestions for a partial query
func (a *Aggregator) Suggestions(ctx context.Context, query string) *AggregateResult[string] {
	query = strings.TrimSpace(query)
	if query == "" || a.suggest == nil {
		return newResult[string](a.begin(youtube.KindSuggestions), nil, "")
	}
	key := cache.Key(youtube.KindSuggestions, query)

	return runList[string](ctx, a, youtube.KindSuggestions, key, func(ctx context.Context, r *run) ([]string, string, error) {
		suggestions, err := a.suggest.Suggestions(ctx, query)
		return suggestions, "", err
	})
}

// Shorts derives short videos: a search for the configured query, full
// details for the hits, channel enrichment, then a duration cut at
// shorts.max_duration. This is a heuristic, not the platform's own notion
// of a short.
func (a *Aggregator) Shorts(ctx context.Context) *AggregateResult[youtube.YouTubeVideo] {
	query := a.cfg.Shorts.Query
	key := cache.Key(youtube.KindShorts, query, a.cfg.Shorts.MaxDuration.String())

	return runList[youtube.YouTubeVideo](ctx, a, youtube.KindShorts, key, func(ctx context.Context, r *run) ([]youtube.YouTubeVideo, string, error) {
		page, err := a.client.Search(ctx, client.SearchQuery{
			Query:      query,
			MaxResults: a.cfg.MaxResults.Shorts,
		})
		if err != nil {
			return nil, "", err
		}

		videos, err := a.client.VideosByID(ctx, searchVideoIDs(page.Items))
		if err != nil {
			return nil, "", err
		}

		enriched := enrich(ctx, r, videos)

		r.to(StageDerivedFiltering)
		shorts := FilterShorts(enriched, a.cfg.Shorts.MaxDuration)
		r.log.Debug().Int("candidates", len(enriched)).Int("shorts", len(shorts)).Msg("Filtered shorts by duration")
		return shorts, page.NextPageToken, nil
	})
}

// VideoDetails returns one video with its channel avatar. NotFound when the
// id does not resolve; a failed channel lookup leaves the avatar unset.
func (a *Aggregator) VideoDetails(ctx context.Context, id string) (*youtube.YouTubeVideo, error) {
	key := cache.Key(youtube.KindVideoDetails, id)

	return runSingle[youtube.YouTubeVideo](ctx, a, youtube.KindVideoDetails, key, func(ctx context.Context, r *run) (*youtube.YouTubeVideo, error) {
		if id == "" {
			return nil, client.NewNotFound("videos", id)
		}
		video, err := a.client.VideoDetails(ctx, id)
		if err != nil {
			return nil, err
		}
		enriched := enrich(ctx, r, []youtube.YouTubeVideo{*video})
		return &enriched[0], nil
	})
}

// RelatedVideos returns popular videos sharing the source video's category,
// without the source itself
func (a *Aggregator) RelatedVideos(ctx context.Context, id string) *AggregateResult[youtube.YouTubeVideo] {
	region := a.cfg.RegionCode
	key := cache.Key(youtube.KindRelatedVideos, id, region)

	return runList[youtube.YouTubeVideo](ctx, a, youtube.KindRelatedVideos, key, func(ctx context.Context, r *run) ([]youtube.YouTubeVideo, string, error) {
		if id == "" {
			return nil, "", client.NewNotFound("videos", id)
		}
		source, err := a.client.VideoDetails(ctx, id)
		if err != nil {
			return nil, "", err
		}
		if source.CategoryID == "" {
			r.log.Info().Str("video_id", id).Msg("Source video has no category, nothing related")
			return []youtube.YouTubeVideo{}, "", nil
		}

		// one extra so that removing the source still leaves a full page
		page, err := a.client.VideosByCategory(ctx, source.CategoryID, region, min(a.cfg.MaxResults.Related+1, 50))
		if err != nil {
			return nil, "", err
		}

		enriched := enrich(ctx, r, page.Items)

		r.to(StageDerivedFiltering)
		related := RemoveFirst(enriched, id)
		if limit := int(a.cfg.MaxResults.Related); len(related) > limit {
			related = related[:limit]
		}
		return related, page.NextPageToken, nil
	})
}

// Comments lists comment threads with replies for a video. A blank id
// returns an empty result without any call.
func (a *Aggregator) Comments(ctx context.Context, videoID string) *AggregateResult[youtube.CommentThread] {
	if videoID == "" {
		return newResult[youtube.CommentThread](a.begin(youtube.KindComments), nil, "")
	}
	key := cache.Key(youtube.KindComments, videoID)

	return runList[youtube.CommentThread](ctx, a, youtube.KindComments, key, func(ctx context.Context, r *run) ([]youtube.CommentThread, string, error) {
		threads, err := a.client.CommentThreads(ctx, videoID, a.cfg.MaxResults.Comments)
		return threads, "", err
	})
}

// ChannelDetails returns one channel, NotFound when id does not resolve
func (a *Aggregator) ChannelDetails(ctx context.Context, id string) (*youtube.YouTubeChannel, error) {
	key := cache.Key(youtube.KindChannelDetails, id)

	return runSingle[youtube.YouTubeChannel](ctx, a, youtube.KindChannelDetails, key, func(ctx context.Context, r *run) (*youtube.YouTubeChannel, error) {
		if id == "" {
			return nil, client.NewNotFound("channels", id)
		}
		return a.client.ChannelDetails(ctx, id)
	})
}

// ChannelByCustomName resolves a legacy custom name to its channel
func (a *Aggregator) ChannelByCustomName(ctx context.Context, name string) (*youtube.YouTubeChannel, error) {
	key := cache.Key(youtube.KindChannelByName, name)

	return runSingle[youtube.YouTubeChannel](ctx, a, youtube.KindChannelByName, key, func(ctx context.Context, r *run) (*youtube.YouTubeChannel, error) {
		if name == "" {
			return nil, client.NewNotFound("channels", name)
		}
		return a.client.ChannelByCustomName(ctx, name)
	})
}

// ChannelVideos returns a channel's latest uploads with full details. A blank
// id returns an empty result without any call.
func (a *Aggregator) ChannelVideos(ctx context.Context, channelID string) *AggregateResult[youtube.YouTubeVideo] {
	if channelID == "" {
		return newResult[youtube.YouTubeVideo](a.begin(youtube.KindChannelVideos), nil, "")
	}
	key := cache.Key(youtube.KindChannelVideos, channelID)

	return runList[youtube.YouTubeVideo](ctx, a, youtube.KindChannelVideos, key, func(ctx context.Context, r *run) ([]youtube.YouTubeVideo, string, error) {
		page, err := a.client.Search(ctx, client.SearchQuery{
			ChannelID:  channelID,
			Order:      "date",
			MaxResults: a.cfg.MaxResults.ChannelVideos,
		})
		if err != nil {
			return nil, "", err
		}

		videos, err := a.client.VideosByID(ctx, searchVideoIDs(page.Items))
		if err != nil {
			return nil, "", err
		}
		return enrich(ctx, r, videos), page.NextPageToken, nil
	})
}

func searchVideoIDs(items []youtube.SearchItem) []string {
	return ExtractRefs(items, func(item youtube.SearchItem) string { return item.VideoID })
}
