package client

import (
	"time"

	"github.com/rs/zerolog/log"
	ytapi "google.golang.org/api/youtube/v3"

	"github.com/researchaccelerator-hub/video-aggregator/model/youtube"
)

func parsePublished(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		log.Debug().Err(err).Str("date", value).Msg("Failed to parse published date")
		return time.Time{}
	}
	return t
}

func convertThumbnails(details *ytapi.ThumbnailDetails) youtube.Thumbnails {
	if details == nil {
		return nil
	}

	thumbnails := make(youtube.Thumbnails)
	add := func(tier string, thumb *ytapi.Thumbnail) {
		if thumb == nil || thumb.Url == "" {
			return
		}
		thumbnails[tier] = youtube.Thumbnail{URL: thumb.Url, Width: thumb.Width, Height: thumb.Height}
	}
	add("default", details.Default)
	add("medium", details.Medium)
	add("high", details.High)
	add("standard", details.Standard)
	add("maxres", details.Maxres)

	if len(thumbnails) == 0 {
		return nil
	}
	return thumbnails
}

// convertVideo maps a videos.list item. Statistics arrive as decimal strings
// and are parsed by the API library's JSON decoding.
func convertVideo(item *ytapi.Video) youtube.YouTubeVideo {
	video := youtube.YouTubeVideo{ID: item.Id}

	if s := item.Snippet; s != nil {
		video.ChannelID = s.ChannelId
		video.ChannelTitle = s.ChannelTitle
		video.CategoryID = s.CategoryId
		video.Title = s.Title
		video.Description = s.Description
		video.PublishedAt = parsePublished(s.PublishedAt)
		video.Thumbnails = convertThumbnails(s.Thumbnails)
		video.Tags = s.Tags
		video.LiveBroadcastContent = s.LiveBroadcastContent
	}
	if cd := item.ContentDetails; cd != nil {
		video.Duration = cd.Duration
	}
	if st := item.Statistics; st != nil {
		video.ViewCount = st.ViewCount
		video.LikeCount = st.LikeCount
		video.CommentCount = st.CommentCount
	}
	return video
}

func convertSearchResult(item *ytapi.SearchResult) youtube.SearchItem {
	result := youtube.SearchItem{}
	if item.Id != nil {
		result.VideoID = item.Id.VideoId
	}
	if s := item.Snippet; s != nil {
		result.ChannelID = s.ChannelId
		result.ChannelTitle = s.ChannelTitle
		result.Title = s.Title
		result.Description = s.Description
		result.PublishedAt = parsePublished(s.PublishedAt)
		result.Thumbnails = convertThumbnails(s.Thumbnails)
		result.LiveBroadcastContent = s.LiveBroadcastContent
	}
	return result
}

func convertChannel(item *ytapi.Channel) youtube.YouTubeChannel {
	channel := youtube.YouTubeChannel{ID: item.Id}

	if s := item.Snippet; s != nil {
		channel.Title = s.Title
		channel.Description = s.Description
		channel.CustomURL = s.CustomUrl
		channel.Country = s.Country
		channel.PublishedAt = parsePublished(s.PublishedAt)
		channel.Thumbnails = convertThumbnails(s.Thumbnails)
	}
	if st := item.Statistics; st != nil {
		channel.SubscriberCount = st.SubscriberCount
		channel.HiddenSubscriberCount = st.HiddenSubscriberCount
		channel.ViewCount = st.ViewCount
		channel.VideoCount = st.VideoCount
	}
	if b := item.BrandingSettings; b != nil {
		if b.Channel != nil {
			channel.Keywords = b.Channel.Keywords
		}
		if b.Image != nil {
			channel.BannerURL = b.Image.BannerExternalUrl
		}
	}
	return channel
}

func convertCategory(item *ytapi.VideoCategory) youtube.Category {
	category := youtube.Category{ID: item.Id}
	if s := item.Snippet; s != nil {
		category.Title = s.Title
		category.Assignable = s.Assignable
		category.ChannelID = s.ChannelId
	}
	return category
}

func convertComment(item *ytapi.Comment) youtube.Comment {
	comment := youtube.Comment{ID: item.Id}
	if s := item.Snippet; s != nil {
		comment.VideoID = s.VideoId
		comment.AuthorDisplayName = s.AuthorDisplayName
		comment.AuthorProfileImageURL = s.AuthorProfileImageUrl
		comment.AuthorChannelURL = s.AuthorChannelUrl
		if s.AuthorChannelId != nil {
			comment.AuthorChannelID = s.AuthorChannelId.Value
		}
		comment.TextDisplay = s.TextDisplay
		comment.TextOriginal = s.TextOriginal
		comment.LikeCount = s.LikeCount
		comment.PublishedAt = parsePublished(s.PublishedAt)
		comment.UpdatedAt = parsePublished(s.UpdatedAt)
	}
	return comment
}

func convertCommentThread(item *ytapi.CommentThread) youtube.CommentThread {
	thread := youtube.CommentThread{ID: item.Id}
	if s := item.Snippet; s != nil {
		thread.VideoID = s.VideoId
		thread.CanReply = s.CanReply
		thread.TotalReplyCount = s.TotalReplyCount
		thread.IsPublic = s.IsPublic
		if s.TopLevelComment != nil {
			thread.TopLevelComment = convertComment(s.TopLevelComment)
		}
	}
	if item.Replies != nil {
		for _, reply := range item.Replies.Comments {
			thread.Replies = append(thread.Replies, convertComment(reply))
		}
	}
	return thread
}
