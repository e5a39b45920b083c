package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"
)

func TestFetchErrorMatching(t *testing.T) {
	notFound := NewNotFound("videos", "v1")
	transport := NewTransport("videos", "v1", errors.New("connection reset"))

	assert.True(t, errors.Is(notFound, ErrNotFound))
	assert.False(t, errors.Is(notFound, ErrTransport))
	assert.True(t, errors.Is(transport, ErrTransport))
	assert.False(t, errors.Is(transport, ErrNotFound))

	// wrapping keeps the outcome visible
	wrapped := fmt.Errorf("loading watch page: %w", notFound)
	assert.True(t, IsNotFound(wrapped))
	assert.Equal(t, FailureNotFound, KindOf(wrapped))

	assert.Equal(t, FailureKind(0), KindOf(errors.New("plain")))
	assert.False(t, IsNotFound(nil))
}

func TestFetchErrorMessage(t *testing.T) {
	assert.Equal(t, `videos "v1": not found`, NewNotFound("videos", "v1").Error())
	assert.Equal(t, `search: fetch failed: boom`, NewTransport("search", "", errors.New("boom")).Error())
	assert.Equal(t, "not_found", FailureNotFound.String())
	assert.Equal(t, "transport", FailureTransport.String())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want FailureKind
	}{
		{"api 404", &googleapi.Error{Code: http.StatusNotFound}, FailureNotFound},
		{"api 403", &googleapi.Error{Code: http.StatusForbidden}, FailureTransport},
		{"api 500", &googleapi.Error{Code: http.StatusInternalServerError}, FailureTransport},
		{"deadline", fmt.Errorf("do: %w", context.DeadlineExceeded), FailureTransport},
		{"network", errors.New("dial tcp: connection refused"), FailureTransport},
		{"already classified", NewNotFound("channels", "c1"), FailureNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fe := classify("videos", "v1", tt.err)
			assert.Equal(t, tt.want, fe.Kind)
			assert.ErrorIs(t, fe, tt.err)
		})
	}
}
