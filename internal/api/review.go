package api

import (
	"context"
	"fmt"

	"github.com/scenee/scenee-go/internal/domain"
)

// ReviewService maps the per-movie review endpoints
type ReviewService struct {
	c *Client
}

// ByMovie lists all reviews for a movie
func (s *ReviewService) ByMovie(ctx context.Context, movieID string) ([]domain.Review, error) {
	return get[[]domain.Review](ctx, s.c, fmt.Sprintf("/movies/%s/reviews", movieID), nil)
}

// Create posts a review for a movie
func (s *ReviewService) Create(ctx context.Context, movieID string, req domain.CreateReviewRequest) (domain.Review, error) {
	return post[domain.Review](ctx, s.c, fmt.Sprintf("/movies/%s/reviews", movieID), req)
}

// Update replaces the current user's review for a movie
func (s *ReviewService) Update(ctx context.Context, movieID string, req domain.UpdateReviewRequest) (domain.Review, error) {
	return put[domain.Review](ctx, s.c, fmt.Sprintf("/movies/%s/reviews", movieID), req)
}

// Delete removes a review
func (s *ReviewService) Delete(ctx context.Context, movieID, reviewID string) error {
	_, err := del[struct{}](ctx, s.c, fmt.Sprintf("/movies/%s/reviews/%s", movieID, reviewID))
	return err
}
