package domain

import (
	"net/url"
	"strconv"
)

// RegisterRequest creates a new account
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=32"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest exchanges credentials for a session token
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest patches the current user's profile
type UpdateUserRequest struct {
	Bio       *string `json:"bio,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty" validate:"omitempty,url"`
}

// CreateWatchlistRequest creates a watchlist
type CreateWatchlistRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
	IsPublic    bool   `json:"is_public,omitempty"`
}

// UpdateWatchlistRequest patches a watchlist; nil fields are left untouched
type UpdateWatchlistRequest struct {
	Title       *string     `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	Visibility  *Visibility `json:"visibility,omitempty" validate:"omitempty,oneof=public private unlisted"`
	Tags        []string    `json:"tags,omitempty"`
}

// AddWatchlistItemRequest appends a movie to a watchlist
type AddWatchlistItemRequest struct {
	TMDBID int64  `json:"tmdb_id" validate:"required"`
	Notes  string `json:"notes,omitempty"`
}

// CreateReviewRequest posts a review; rating is on the backend's 1-10 scale
type CreateReviewRequest struct {
	Rating int    `json:"rating" validate:"required,min=1,max=10"`
	Review string `json:"review,omitempty"`
}

// UpdateReviewRequest patches a review
type UpdateReviewRequest struct {
	Rating int    `json:"rating,omitempty" validate:"omitempty,min=1,max=10"`
	Review string `json:"review,omitempty"`
}

// AskAIRequest submits a natural-language recommendation query
type AskAIRequest struct {
	Query string `json:"query" validate:"required"`
}

// SearchMoviesParams are the query parameters for movie search
type SearchMoviesParams struct {
	Query string
	Page  int
}

func (p SearchMoviesParams) Values() url.Values {
	v := url.Values{}
	v.Set("q", p.Query)
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	return v
}

// ListWatchlistsParams filter the watchlist listing
type ListWatchlistsParams struct {
	Owner string
}

func (p ListWatchlistsParams) Values() url.Values {
	v := url.Values{}
	if p.Owner != "" {
		v.Set("owner", p.Owner)
	}
	return v
}

// TrendingParams select the trending window
type TrendingParams struct {
	Window string // "week" or "month"
	Limit  int
}

func (p TrendingParams) Values() url.Values {
	v := url.Values{}
	if p.Window != "" {
		v.Set("window", p.Window)
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	return v
}

// NotificationsParams filter the notification listing
type NotificationsParams struct {
	Unread *bool
}

func (p NotificationsParams) Values() url.Values {
	v := url.Values{}
	if p.Unread != nil {
		v.Set("unread", strconv.FormatBool(*p.Unread))
	}
	return v
}

// DiscoverParams filter the discover feeds
type DiscoverParams struct {
	Window string
	Page   int
	Genre  string
	Region string
}

func (p DiscoverParams) Values() url.Values {
	v := url.Values{}
	if p.Window != "" {
		v.Set("window", p.Window)
	}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Genre != "" {
		v.Set("genre", p.Genre)
	}
	if p.Region != "" {
		v.Set("region", p.Region)
	}
	return v
}

// FeedParams paginate the home feed
type FeedParams struct {
	Page  int
	Limit int
}

func (p FeedParams) Values() url.Values {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	return v
}
