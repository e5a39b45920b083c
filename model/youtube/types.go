// Package youtube contains YouTube-specific data models
package youtube

import (
	"time"
)

// Thumbnail is a single image variant
type Thumbnail struct {
	URL    string `json:"url"`
	Width  int64  `json:"width,omitempty"`
	Height int64  `json:"height,omitempty"`
}

// Thumbnails holds image variants keyed by resolution tier
// ("default", "medium", "high", "standard", "maxres")
type Thumbnails map[string]Thumbnail

// Resolution tiers, best first
var thumbnailTiers = []string{"maxres", "standard", "high", "medium", "default"}

// Best returns the URL of the highest resolution variant available
func (t Thumbnails) Best() string {
	for _, tier := range thumbnailTiers {
		if thumb, ok := t[tier]; ok && thumb.URL != "" {
			return thumb.URL
		}
	}
	return ""
}

// YouTubeVideo represents a YouTube video (a MediaItem).
// Values are never mutated after construction; enrichment returns a copy.
type YouTubeVideo struct {
	ID                   string     `json:"id"`
	ChannelID            string     `json:"channel_id"`
	ChannelTitle         string     `json:"channel_title"`
	CategoryID           string     `json:"category_id,omitempty"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	PublishedAt          time.Time  `json:"published_at"`
	Duration             string     `json:"duration,omitempty"`
	ViewCount            uint64     `json:"view_count"`
	LikeCount            uint64     `json:"like_count"`
	CommentCount         uint64     `json:"comment_count"`
	Thumbnails           Thumbnails `json:"thumbnails,omitempty"`
	Tags                 []string   `json:"tags,omitempty"`
	LiveBroadcastContent string     `json:"live_broadcast_content,omitempty"`

	// ChannelThumbnails is the enrichment field; nil until a channel lookup resolves
	ChannelThumbnails Thumbnails `json:"channel_thumbnails,omitempty"`
}

// ChannelRef returns the owning channel identifier
func (v YouTubeVideo) ChannelRef() string {
	return v.ChannelID
}

// WithChannelThumbnails returns a copy of v carrying the given channel avatar
func (v YouTubeVideo) WithChannelThumbnails(thumbs Thumbnails) YouTubeVideo {
	v.ChannelThumbnails = thumbs
	return v
}

// SearchItem is the lightweight reference returned by search.list
type SearchItem struct {
	VideoID              string     `json:"video_id"`
	ChannelID            string     `json:"channel_id"`
	ChannelTitle         string     `json:"channel_title"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	PublishedAt          time.Time  `json:"published_at"`
	Thumbnails           Thumbnails `json:"thumbnails,omitempty"`
	LiveBroadcastContent string     `json:"live_broadcast_content,omitempty"`

	ChannelThumbnails Thumbnails `json:"channel_thumbnails,omitempty"`
}

// ChannelRef returns the owning channel identifier
func (s SearchItem) ChannelRef() string {
	return s.ChannelID
}

// WithChannelThumbnails returns a copy of s carrying the given channel avatar
func (s SearchItem) WithChannelThumbnails(thumbs Thumbnails) SearchItem {
	s.ChannelThumbnails = thumbs
	return s
}

// YouTubeChannel represents a YouTube channel (a ChannelSummary)
type YouTubeChannel struct {
	ID                    string     `json:"id"`
	Title                 string     `json:"title"`
	Description           string     `json:"description"`
	CustomURL             string     `json:"custom_url,omitempty"`
	Country               string     `json:"country,omitempty"`
	PublishedAt           time.Time  `json:"published_at"`
	Thumbnails            Thumbnails `json:"thumbnails,omitempty"`
	SubscriberCount       uint64     `json:"subscriber_count"`
	HiddenSubscriberCount bool       `json:"hidden_subscriber_count,omitempty"`
	ViewCount             uint64     `json:"view_count"`
	VideoCount            uint64     `json:"video_count"`
	BannerURL             string     `json:"banner_url,omitempty"`
	Keywords              string     `json:"keywords,omitempty"`
}

// AvatarURL returns the image used when a channel is shown next to its videos
func (c YouTubeChannel) AvatarURL() string {
	if thumb, ok := c.Thumbnails["high"]; ok && thumb.URL != "" {
		return thumb.URL
	}
	if thumb, ok := c.Thumbnails["default"]; ok {
		return thumb.URL
	}
	return ""
}

// Category is a video category as listed for a region
type Category struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Assignable bool   `json:"assignable"`
	ChannelID  string `json:"channel_id,omitempty"`
}

// Comment is a single top-level comment or reply
type Comment struct {
	ID                    string    `json:"id"`
	VideoID               string    `json:"video_id,omitempty"`
	AuthorDisplayName     string    `json:"author_display_name"`
	AuthorProfileImageURL string    `json:"author_profile_image_url,omitempty"`
	AuthorChannelURL      string    `json:"author_channel_url,omitempty"`
	AuthorChannelID       string    `json:"author_channel_id,omitempty"`
	TextDisplay           string    `json:"text_display"`
	TextOriginal          string    `json:"text_original"`
	LikeCount             int64     `json:"like_count"`
	PublishedAt           time.Time `json:"published_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// CommentThread is a top-level comment with its loaded replies
type CommentThread struct {
	ID              string    `json:"id"`
	VideoID         string    `json:"video_id"`
	TopLevelComment Comment   `json:"top_level_comment"`
	CanReply        bool      `json:"can_reply"`
	TotalReplyCount int64     `json:"total_reply_count"`
	IsPublic        bool      `json:"is_public"`
	Replies         []Comment `json:"replies,omitempty"`
}
