package api

import (
	"context"
	"fmt"

	"github.com/scenee/scenee-go/internal/domain"
)

// FollowService maps the social follow endpoints
type FollowService struct {
	c *Client
}

// Follow follows a user
func (s *FollowService) Follow(ctx context.Context, userID string) (domain.MessageResponse, error) {
	return post[domain.MessageResponse](ctx, s.c, fmt.Sprintf("/users/%s/follow", userID), nil)
}

// Unfollow unfollows a user
func (s *FollowService) Unfollow(ctx context.Context, userID string) (domain.MessageResponse, error) {
	return del[domain.MessageResponse](ctx, s.c, fmt.Sprintf("/users/%s/follow", userID))
}

// Followers lists the users following userID
func (s *FollowService) Followers(ctx context.Context, userID string) ([]domain.User, error) {
	return get[[]domain.User](ctx, s.c, fmt.Sprintf("/users/%s/followers", userID), nil)
}

// Following lists the users userID follows
func (s *FollowService) Following(ctx context.Context, userID string) ([]domain.User, error) {
	return get[[]domain.User](ctx, s.c, fmt.Sprintf("/users/%s/following", userID), nil)
}
