package query

import (
	"context"

	"github.com/scenee/scenee-go/internal/api"
	"github.com/scenee/scenee-go/internal/domain"
)

// Mutations exposes every write operation. Each mutation round-trips to the
// server and, on success, invalidates every cache key whose data it could
// have changed. Failed mutations invalidate nothing; the typed error
// propagates to the caller. Cached values are never patched in place.
type Mutations struct {
	api   *api.Client
	cache *Cache
}

// NewMutations wraps an API client and a cache
func NewMutations(client *api.Client, cache *Cache) *Mutations {
	return &Mutations{api: client, cache: cache}
}

// Register creates an account and invalidates the auth-user entry
func (m *Mutations) Register(ctx context.Context, req domain.RegisterRequest) (domain.User, error) {
	if err := domain.Validate(req); err != nil {
		return domain.User{}, err
	}
	user, err := m.api.Auth.Register(ctx, req)
	if err != nil {
		return domain.User{}, err
	}
	m.cache.Invalidate(AuthUserKey())
	return user, nil
}

// Login authenticates, seeds the current-user entry from the response, and
// invalidates the auth-user entry.
func (m *Mutations) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	if err := domain.Validate(req); err != nil {
		return domain.LoginResponse{}, err
	}
	resp, err := m.api.Auth.Login(ctx, req)
	if err != nil {
		return domain.LoginResponse{}, err
	}
	if err := m.cache.Set(MeKey(), resp.User); err != nil {
		return resp, err
	}
	m.cache.Invalidate(AuthUserKey())
	return resp, nil
}

// Logout invalidates the server session and drops the entire cache. The
// cache is cleared even when the server call fails; nothing cached belongs
// to a session that is being abandoned.
func (m *Mutations) Logout(ctx context.Context) error {
	_, err := m.api.Auth.Logout(ctx)
	m.cache.Clear()
	return err
}

// UpdateMe patches the profile and invalidates the current-user entry
func (m *Mutations) UpdateMe(ctx context.Context, req domain.UpdateUserRequest) (domain.MessageResponse, error) {
	if err := domain.Validate(req); err != nil {
		return domain.MessageResponse{}, err
	}
	resp, err := m.api.Users.UpdateMe(ctx, req)
	if err != nil {
		return domain.MessageResponse{}, err
	}
	m.cache.Invalidate(MeKey())
	return resp, nil
}

// CreateWatchlist creates a watchlist and invalidates the watchlist family
func (m *Mutations) CreateWatchlist(ctx context.Context, req domain.CreateWatchlistRequest) (domain.Watchlist, error) {
	if err := domain.Validate(req); err != nil {
		return domain.Watchlist{}, err
	}
	wl, err := m.api.Watchlists.Create(ctx, req)
	if err != nil {
		return domain.Watchlist{}, err
	}
	m.cache.Invalidate(WatchlistsKey())
	return wl, nil
}

// UpdateWatchlist patches a watchlist and invalidates both its detail
// entry and the listing family.
func (m *Mutations) UpdateWatchlist(ctx context.Context, id string, req domain.UpdateWatchlistRequest) (domain.Watchlist, error) {
	if id == "" {
		return domain.Watchlist{}, domain.ErrEmptyID
	}
	if err := domain.Validate(req); err != nil {
		return domain.Watchlist{}, err
	}
	wl, err := m.api.Watchlists.Update(ctx, id, req)
	if err != nil {
		return domain.Watchlist{}, err
	}
	m.cache.Invalidate(WatchlistKey(wl.ID))
	m.cache.Invalidate(WatchlistsKey())
	return wl, nil
}

// DeleteWatchlist removes a watchlist and invalidates the watchlist family
func (m *Mutations) DeleteWatchlist(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrEmptyID
	}
	if err := m.api.Watchlists.Delete(ctx, id); err != nil {
		return err
	}
	m.cache.Invalidate(WatchlistsKey())
	return nil
}

// AddWatchlistItem appends a movie and invalidates the parent watchlist
func (m *Mutations) AddWatchlistItem(ctx context.Context, watchlistID string, req domain.AddWatchlistItemRequest) (domain.WatchlistItem, error) {
	if watchlistID == "" {
		return domain.WatchlistItem{}, domain.ErrEmptyID
	}
	if err := domain.Validate(req); err != nil {
		return domain.WatchlistItem{}, err
	}
	item, err := m.api.Watchlists.AddItem(ctx, watchlistID, req)
	if err != nil {
		return domain.WatchlistItem{}, err
	}
	m.cache.Invalidate(WatchlistKey(watchlistID))
	return item, nil
}

// RemoveWatchlistItem removes an item and invalidates the parent watchlist
func (m *Mutations) RemoveWatchlistItem(ctx context.Context, watchlistID, itemID string) error {
	if watchlistID == "" || itemID == "" {
		return domain.ErrEmptyID
	}
	if err := m.api.Watchlists.RemoveItem(ctx, watchlistID, itemID); err != nil {
		return err
	}
	m.cache.Invalidate(WatchlistKey(watchlistID))
	return nil
}

// LikeWatchlist likes a watchlist and invalidates its detail entry
func (m *Mutations) LikeWatchlist(ctx context.Context, id string) error {
	return m.watchlistAction(ctx, id, m.api.Watchlists.Like)
}

// UnlikeWatchlist removes a like and invalidates the detail entry
func (m *Mutations) UnlikeWatchlist(ctx context.Context, id string) error {
	return m.watchlistAction(ctx, id, m.api.Watchlists.Unlike)
}

// SaveWatchlist bookmarks a watchlist and invalidates its detail entry
func (m *Mutations) SaveWatchlist(ctx context.Context, id string) error {
	return m.watchlistAction(ctx, id, m.api.Watchlists.Save)
}

func (m *Mutations) watchlistAction(ctx context.Context, id string, op func(context.Context, string) error) error {
	if id == "" {
		return domain.ErrEmptyID
	}
	if err := op(ctx, id); err != nil {
		return err
	}
	m.cache.Invalidate(WatchlistKey(id))
	return nil
}

// CreateReview posts a review and invalidates the movie's review list
func (m *Mutations) CreateReview(ctx context.Context, movieID string, req domain.CreateReviewRequest) (domain.Review, error) {
	if movieID == "" {
		return domain.Review{}, domain.ErrEmptyID
	}
	if err := domain.Validate(req); err != nil {
		return domain.Review{}, err
	}
	review, err := m.api.Reviews.Create(ctx, movieID, req)
	if err != nil {
		return domain.Review{}, err
	}
	m.cache.Invalidate(MovieReviewsKey(movieID))
	return review, nil
}

// UpdateReview replaces a review and invalidates the movie's review list
func (m *Mutations) UpdateReview(ctx context.Context, movieID string, req domain.UpdateReviewRequest) (domain.Review, error) {
	if movieID == "" {
		return domain.Review{}, domain.ErrEmptyID
	}
	if err := domain.Validate(req); err != nil {
		return domain.Review{}, err
	}
	review, err := m.api.Reviews.Update(ctx, movieID, req)
	if err != nil {
		return domain.Review{}, err
	}
	m.cache.Invalidate(MovieReviewsKey(movieID))
	return review, nil
}

// DeleteReview removes a review and invalidates the movie's review list
func (m *Mutations) DeleteReview(ctx context.Context, movieID, reviewID string) error {
	if movieID == "" || reviewID == "" {
		return domain.ErrEmptyID
	}
	if err := m.api.Reviews.Delete(ctx, movieID, reviewID); err != nil {
		return err
	}
	m.cache.Invalidate(MovieReviewsKey(movieID))
	return nil
}

// FollowUser follows a user and invalidates both social lists for the target
func (m *Mutations) FollowUser(ctx context.Context, userID string) (domain.MessageResponse, error) {
	return m.followAction(ctx, userID, m.api.Follows.Follow)
}

// UnfollowUser unfollows a user and invalidates both social lists for the target
func (m *Mutations) UnfollowUser(ctx context.Context, userID string) (domain.MessageResponse, error) {
	return m.followAction(ctx, userID, m.api.Follows.Unfollow)
}

func (m *Mutations) followAction(ctx context.Context, userID string, op func(context.Context, string) (domain.MessageResponse, error)) (domain.MessageResponse, error) {
	if userID == "" {
		return domain.MessageResponse{}, domain.ErrEmptyID
	}
	resp, err := op(ctx, userID)
	if err != nil {
		return domain.MessageResponse{}, err
	}
	m.cache.Invalidate(FollowersKey(userID))
	m.cache.Invalidate(FollowingKey(userID))
	return resp, nil
}

// MarkNotificationRead marks one notification read and invalidates the
// whole notifications key family (read state shows up in every listing).
func (m *Mutations) MarkNotificationRead(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrEmptyID
	}
	if err := m.api.Notifications.MarkRead(ctx, id); err != nil {
		return err
	}
	m.cache.Invalidate(NotificationsRootKey())
	return nil
}

// AskAI submits a recommendation query; nothing cached depends on it
func (m *Mutations) AskAI(ctx context.Context, req domain.AskAIRequest) (domain.AskAIResponse, error) {
	if err := domain.Validate(req); err != nil {
		return domain.AskAIResponse{}, err
	}
	return m.api.AI.Ask(ctx, req)
}

// DeleteUser removes an account (admin) and invalidates the stats entry
func (m *Mutations) DeleteUser(ctx context.Context, id string) (domain.MessageResponse, error) {
	if id == "" {
		return domain.MessageResponse{}, domain.ErrEmptyID
	}
	resp, err := m.api.Admin.DeleteUser(ctx, id)
	if err != nil {
		return domain.MessageResponse{}, err
	}
	m.cache.Invalidate(StatsKey())
	return resp, nil
}
