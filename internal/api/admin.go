package api

import (
	"context"

	"github.com/scenee/scenee-go/internal/domain"
)

// AdminService maps the /admin endpoints
type AdminService struct {
	c *Client
}

// DeleteUser removes an account. Requires an admin credential.
func (s *AdminService) DeleteUser(ctx context.Context, id string) (domain.MessageResponse, error) {
	return del[domain.MessageResponse](ctx, s.c, "/admin/users/"+id)
}
