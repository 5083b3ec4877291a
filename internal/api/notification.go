package api

import (
	"context"
	"fmt"

	"github.com/scenee/scenee-go/internal/domain"
)

// NotificationService maps the /notifications endpoints
type NotificationService struct {
	c *Client
}

// List returns notifications, optionally unread-only
func (s *NotificationService) List(ctx context.Context, params domain.NotificationsParams) (domain.NotificationsResponse, error) {
	return get[domain.NotificationsResponse](ctx, s.c, "/notifications", params.Values())
}

// MarkRead marks a single notification as read
func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	_, err := post[struct{}](ctx, s.c, fmt.Sprintf("/notifications/%s/mark-read", id), nil)
	return err
}
