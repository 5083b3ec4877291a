package api

import (
	"context"

	"github.com/scenee/scenee-go/internal/domain"
)

// UserService maps the /me endpoints
type UserService struct {
	c *Client
}

// Me returns the current user's profile
func (s *UserService) Me(ctx context.Context) (domain.User, error) {
	return get[domain.User](ctx, s.c, "/me", nil)
}

// UpdateMe patches the current user's profile
func (s *UserService) UpdateMe(ctx context.Context, req domain.UpdateUserRequest) (domain.MessageResponse, error) {
	return patch[domain.MessageResponse](ctx, s.c, "/me", req)
}
