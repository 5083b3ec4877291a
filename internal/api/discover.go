package api

import (
	"context"

	"github.com/scenee/scenee-go/internal/domain"
)

// DiscoverService maps the /discover endpoints
type DiscoverService struct {
	c *Client
}

// Trending returns trending watchlists for the discover surface
func (s *DiscoverService) Trending(ctx context.Context, params domain.DiscoverParams) ([]domain.Watchlist, error) {
	return get[[]domain.Watchlist](ctx, s.c, "/discover/trending", params.Values())
}

// New returns newly added movies
func (s *DiscoverService) New(ctx context.Context, params domain.DiscoverParams) ([]domain.Movie, error) {
	return get[[]domain.Movie](ctx, s.c, "/discover/new", params.Values())
}
