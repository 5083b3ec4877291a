package api

import (
	"context"
	"fmt"

	"github.com/scenee/scenee-go/internal/domain"
)

// MovieService maps the movie catalog endpoints
type MovieService struct {
	c *Client
}

// Search queries the movie catalog
func (s *MovieService) Search(ctx context.Context, params domain.SearchMoviesParams) (domain.SearchMoviesResponse, error) {
	return get[domain.SearchMoviesResponse](ctx, s.c, "/search/movies", params.Values())
}

// Get returns a single movie by its TMDB id
func (s *MovieService) Get(ctx context.Context, id int64) (domain.Movie, error) {
	return get[domain.Movie](ctx, s.c, fmt.Sprintf("/movies/%d", id), nil)
}
