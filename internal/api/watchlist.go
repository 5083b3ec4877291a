package api

import (
	"context"
	"fmt"

	"github.com/scenee/scenee-go/internal/domain"
)

// WatchlistService maps the /watchlists endpoints
type WatchlistService struct {
	c *Client
}

// List returns watchlists, optionally filtered by owner
func (s *WatchlistService) List(ctx context.Context, params domain.ListWatchlistsParams) ([]domain.Watchlist, error) {
	return get[[]domain.Watchlist](ctx, s.c, "/watchlists", params.Values())
}

// Get returns a watchlist with its items
func (s *WatchlistService) Get(ctx context.Context, id string) (domain.WatchlistWithItems, error) {
	return get[domain.WatchlistWithItems](ctx, s.c, "/watchlists/"+id, nil)
}

// GetPublic returns a shared watchlist by its public slug
func (s *WatchlistService) GetPublic(ctx context.Context, slug string) (domain.WatchlistWithItems, error) {
	return get[domain.WatchlistWithItems](ctx, s.c, "/watchlists/public/"+slug, nil)
}

// Create creates a watchlist
func (s *WatchlistService) Create(ctx context.Context, req domain.CreateWatchlistRequest) (domain.Watchlist, error) {
	return post[domain.Watchlist](ctx, s.c, "/watchlists", req)
}

// Update patches a watchlist
func (s *WatchlistService) Update(ctx context.Context, id string, req domain.UpdateWatchlistRequest) (domain.Watchlist, error) {
	return patch[domain.Watchlist](ctx, s.c, "/watchlists/"+id, req)
}

// Delete removes a watchlist
func (s *WatchlistService) Delete(ctx context.Context, id string) error {
	_, err := del[struct{}](ctx, s.c, "/watchlists/"+id)
	return err
}

// AddItem appends a movie to a watchlist
func (s *WatchlistService) AddItem(ctx context.Context, watchlistID string, req domain.AddWatchlistItemRequest) (domain.WatchlistItem, error) {
	return post[domain.WatchlistItem](ctx, s.c, fmt.Sprintf("/watchlists/%s/items", watchlistID), req)
}

// RemoveItem removes an item from a watchlist
func (s *WatchlistService) RemoveItem(ctx context.Context, watchlistID, itemID string) error {
	_, err := del[struct{}](ctx, s.c, fmt.Sprintf("/watchlists/%s/items/%s", watchlistID, itemID))
	return err
}

// Like records a like on a watchlist
func (s *WatchlistService) Like(ctx context.Context, id string) error {
	_, err := post[struct{}](ctx, s.c, fmt.Sprintf("/watchlists/%s/like", id), nil)
	return err
}

// Unlike removes a like from a watchlist
func (s *WatchlistService) Unlike(ctx context.Context, id string) error {
	_, err := del[struct{}](ctx, s.c, fmt.Sprintf("/watchlists/%s/like", id))
	return err
}

// Save bookmarks a watchlist for the current user
func (s *WatchlistService) Save(ctx context.Context, id string) error {
	_, err := post[struct{}](ctx, s.c, fmt.Sprintf("/watchlists/%s/save", id), nil)
	return err
}

// Trending returns the trending watchlists for a window
func (s *WatchlistService) Trending(ctx context.Context, params domain.TrendingParams) ([]domain.Watchlist, error) {
	return get[[]domain.Watchlist](ctx, s.c, "/trending", params.Values())
}
