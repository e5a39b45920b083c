package aggregator

import (
	"github.com/researchaccelerator-hub/video-aggregator/model/youtube"
)

// ChannelAvatarSize is the display size given to the synthesized channel avatar
const ChannelAvatarSize = 800

// Enrichable is an item that can carry its channel's avatar
type Enrichable[T any] interface {
	ChannelReferencer
	WithChannelThumbnails(youtube.Thumbnails) T
}

// ChannelThumbnails synthesizes the enrichment value for a channel: its
// avatar at the fixed display size, or nil when the channel has none
func ChannelThumbnails(ch youtube.YouTubeChannel) youtube.Thumbnails {
	avatar := ch.AvatarURL()
	if avatar == "" {
		return nil
	}
	return youtube.Thumbnails{
		"high": {URL: avatar, Width: ChannelAvatarSize, Height: ChannelAvatarSize},
	}
}

// Merge attaches resolved channel avatars onto items. It makes no calls and
// does not modify its inputs: the result is a new slice in input order, and
// items whose channel is absent from lookup come back with no enrichment.
func Merge[T Enrichable[T]](items []T, lookup LookupMap) []T {
	merged := make([]T, 0, len(items))
	for _, item := range items {
		var thumbs youtube.Thumbnails
		if ch, ok := lookup[item.ChannelRef()]; ok {
			thumbs = ChannelThumbnails(ch)
		}
		merged = append(merged, item.WithChannelThumbnails(thumbs))
	}
	return merged
}
