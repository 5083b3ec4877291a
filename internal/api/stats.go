package api

import (
	"context"

	"github.com/scenee/scenee-go/internal/domain"
)

// StatsService maps the /stats endpoint
type StatsService struct {
	c *Client
}

// Get returns site-wide counters
func (s *StatsService) Get(ctx context.Context) (domain.StatsResponse, error) {
	return get[domain.StatsResponse](ctx, s.c, "/stats", nil)
}
