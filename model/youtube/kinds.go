package youtube

// ResourceKind names a cacheable request type. Kinds double as cache key
// prefixes and as configuration keys (ttl.<kind>, batch_limit.<kind>).
type ResourceKind string

const (
	KindCategories       ResourceKind = "categories"
	KindCategory         ResourceKind = "category"
	KindVideosByCategory ResourceKind = "videos"
	KindSearch           ResourceKind = "search"
	KindSuggestions      ResourceKind = "search-suggestions"
	KindShorts           ResourceKind = "shorts"
	KindVideoDetails     ResourceKind = "video-details"
	KindRelatedVideos    ResourceKind = "related-videos"
	KindComments         ResourceKind = "video-comments"
	KindChannelDetails   ResourceKind = "channel-details"
	KindChannelByName    ResourceKind = "channel-custom"
	KindChannelVideos    ResourceKind = "channel-videos"

	// Batched lookups issued by the resolver and the id-list calls
	KindVideosByID ResourceKind = "videos-by-id"
	KindChannels   ResourceKind = "channels"
)

// AggregateKinds lists every kind served by an aggregate operation
var AggregateKinds = []ResourceKind{
	KindCategories,
	KindCategory,
	KindVideosByCategory,
	KindSearch,
	KindSuggestions,
	KindShorts,
	KindVideoDetails,
	KindRelatedVideos,
	KindComments,
	KindChannelDetails,
	KindChannelByName,
	KindChannelVideos,
}

// BatchKinds lists the kinds that take a list of ids per call
var BatchKinds = []ResourceKind{KindVideosByID, KindChannels}

func (k ResourceKind) String() string {
	return string(k)
}
