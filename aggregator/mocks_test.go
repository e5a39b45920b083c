package aggregator

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/researchaccelerator-hub/video-aggregator/client"
	"github.com/researchaccelerator-hub/video-aggregator/model/youtube"
)

// MockResourceClient is a testify mock of client.ResourceClient
type MockResourceClient struct {
	mock.Mock
}

func (m *MockResourceClient) ListCategories(ctx context.Context, regionCode string) ([]youtube.Category, error) {
	args := m.Called(ctx, regionCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]youtube.Category), args.Error(1)
}

func (m *MockResourceClient) GetCategory(ctx context.Context, id string) (*youtube.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*youtube.Category), args.Error(1)
}

func (m *MockResourceClient) Search(ctx context.Context, query client.SearchQuery) (*client.SearchPage, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.SearchPage), args.Error(1)
}

func (m *MockResourceClient) VideosByID(ctx context.Context, ids []string) ([]youtube.YouTubeVideo, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]youtube.YouTubeVideo), args.Error(1)
}

func (m *MockResourceClient) VideosByCategory(ctx context.Context, categoryID, regionCode string, maxResults int64) (*client.VideoPage, error) {
	args := m.Called(ctx, categoryID, regionCode, maxResults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.VideoPage), args.Error(1)
}

func (m *MockResourceClient) VideoDetails(ctx context.Context, id string) (*youtube.YouTubeVideo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*youtube.YouTubeVideo), args.Error(1)
}

func (m *MockResourceClient) ChannelsByID(ctx context.Context, ids []string) ([]youtube.YouTubeChannel, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]youtube.YouTubeChannel), args.Error(1)
}

func (m *MockResourceClient) ChannelDetails(ctx context.Context, id string) (*youtube.YouTubeChannel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*youtube.YouTubeChannel), args.Error(1)
}

func (m *MockResourceClient) ChannelByCustomName(ctx context.Context, name string) (*youtube.YouTubeChannel, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*youtube.YouTubeChannel), args.Error(1)
}

func (m *MockResourceClient) CommentThreads(ctx context.Context, videoID string, maxResults int64) ([]youtube.CommentThread, error) {
	args := m.Called(ctx, videoID, maxResults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]youtube.CommentThread), args.Error(1)
}

// MockSuggestionClient is a testify mock of client.SuggestionClient
type MockSuggestionClient struct {
	mock.Mock
}

func (m *MockSuggestionClient) Suggestions(ctx context.Context, query string) ([]string, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// fixtures

func video(id, channelID, duration string) youtube.YouTubeVideo {
	return youtube.YouTubeVideo{ID: id, ChannelID: channelID, Title: "title " + id, Duration: duration, CategoryID: "10"}
}

func channel(id, avatar string) youtube.YouTubeChannel {
	ch := youtube.YouTubeChannel{ID: id, Title: "channel " + id}
	if avatar != "" {
		ch.Thumbnails = youtube.Thumbnails{"high": {URL: avatar, Width: 88, Height: 88}}
	}
	return ch
}

func videoIDs(videos []youtube.YouTubeVideo) []string {
	ids := make([]string, 0, len(videos))
	for _, v := range videos {
		ids = append(ids, v.ID)
	}
	return ids
}
