package api

import (
	"context"

	"github.com/scenee/scenee-go/internal/domain"
)

// FeedService maps the /feed endpoint
type FeedService struct {
	c *Client
}

// Get returns the trending home feed
func (s *FeedService) Get(ctx context.Context, params domain.FeedParams) (domain.FeedResponse, error) {
	values := params.Values()
	values.Set("type", "trending")
	return get[domain.FeedResponse](ctx, s.c, "/feed", values)
}
