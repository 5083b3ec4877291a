package query

import (
	"context"
	"time"

	"github.com/scenee/scenee-go/internal/api"
	"github.com/scenee/scenee-go/internal/domain"
)

// Profile records change rarely, so the me/auth-user reads use a longer
// staleness window than the cache default.
const profileStaleTime = 5 * time.Minute

// Queries exposes every cached read. Reads with empty required parameters
// short-circuit with a validation sentinel before the cache or the network
// is touched.
type Queries struct {
	api   *api.Client
	cache *Cache
}

// NewQueries wraps an API client and a cache
func NewQueries(client *api.Client, cache *Cache) *Queries {
	return &Queries{api: client, cache: cache}
}

// AuthUser returns the account for the current credential. A rejected
// credential is a definitive answer, so this read never retries.
func (q *Queries) AuthUser(ctx context.Context) (domain.User, error) {
	return Fetch(ctx, q.cache, AuthUserKey(), ReadOptions{StaleTime: profileStaleTime, NoRetry: true}, func(ctx context.Context) (domain.User, error) {
		return q.api.Auth.User(ctx)
	})
}

// Me returns the current user's profile
func (q *Queries) Me(ctx context.Context) (domain.User, error) {
	return Fetch(ctx, q.cache, MeKey(), ReadOptions{StaleTime: profileStaleTime}, func(ctx context.Context) (domain.User, error) {
		return q.api.Users.Me(ctx)
	})
}

// SearchMovies queries the movie catalog
func (q *Queries) SearchMovies(ctx context.Context, params domain.SearchMoviesParams) (domain.SearchMoviesResponse, error) {
	if params.Query == "" {
		return domain.SearchMoviesResponse{}, domain.ErrEmptyQuery
	}
	return Fetch(ctx, q.cache, MovieSearchKey(params), ReadOptions{}, func(ctx context.Context) (domain.SearchMoviesResponse, error) {
		return q.api.Movies.Search(ctx, params)
	})
}

// Movie returns a single movie
func (q *Queries) Movie(ctx context.Context, id int64) (domain.Movie, error) {
	if id <= 0 {
		return domain.Movie{}, domain.ErrEmptyID
	}
	return Fetch(ctx, q.cache, MovieKey(id), ReadOptions{}, func(ctx context.Context) (domain.Movie, error) {
		return q.api.Movies.Get(ctx, id)
	})
}

// Watchlists lists watchlists, optionally by owner
func (q *Queries) Watchlists(ctx context.Context, params domain.ListWatchlistsParams) ([]domain.Watchlist, error) {
	return Fetch(ctx, q.cache, WatchlistListKey(params), ReadOptions{}, func(ctx context.Context) ([]domain.Watchlist, error) {
		return q.api.Watchlists.List(ctx, params)
	})
}

// Watchlist returns one watchlist's detail view
func (q *Queries) Watchlist(ctx context.Context, id string) (domain.WatchlistWithItems, error) {
	if id == "" {
		return domain.WatchlistWithItems{}, domain.ErrEmptyID
	}
	return Fetch(ctx, q.cache, WatchlistKey(id), ReadOptions{}, func(ctx context.Context) (domain.WatchlistWithItems, error) {
		return q.api.Watchlists.Get(ctx, id)
	})
}

// PublicWatchlist returns a shared watchlist by slug
func (q *Queries) PublicWatchlist(ctx context.Context, slug string) (domain.WatchlistWithItems, error) {
	if slug == "" {
		return domain.WatchlistWithItems{}, domain.ErrEmptyID
	}
	return Fetch(ctx, q.cache, PublicWatchlistKey(slug), ReadOptions{}, func(ctx context.Context) (domain.WatchlistWithItems, error) {
		return q.api.Watchlists.GetPublic(ctx, slug)
	})
}

// TrendingWatchlists returns the trending watchlists for a window
func (q *Queries) TrendingWatchlists(ctx context.Context, params domain.TrendingParams) ([]domain.Watchlist, error) {
	return Fetch(ctx, q.cache, TrendingKey(params), ReadOptions{}, func(ctx context.Context) ([]domain.Watchlist, error) {
		return q.api.Watchlists.Trending(ctx, params)
	})
}

// MovieReviews lists the reviews for a movie
func (q *Queries) MovieReviews(ctx context.Context, movieID string) ([]domain.Review, error) {
	if movieID == "" {
		return nil, domain.ErrEmptyID
	}
	return Fetch(ctx, q.cache, MovieReviewsKey(movieID), ReadOptions{}, func(ctx context.Context) ([]domain.Review, error) {
		return q.api.Reviews.ByMovie(ctx, movieID)
	})
}

// Followers lists the followers of a user
func (q *Queries) Followers(ctx context.Context, userID string) ([]domain.User, error) {
	if userID == "" {
		return nil, domain.ErrEmptyID
	}
	return Fetch(ctx, q.cache, FollowersKey(userID), ReadOptions{}, func(ctx context.Context) ([]domain.User, error) {
		return q.api.Follows.Followers(ctx, userID)
	})
}

// Following lists the users a user follows
func (q *Queries) Following(ctx context.Context, userID string) ([]domain.User, error) {
	if userID == "" {
		return nil, domain.ErrEmptyID
	}
	return Fetch(ctx, q.cache, FollowingKey(userID), ReadOptions{}, func(ctx context.Context) ([]domain.User, error) {
		return q.api.Follows.Following(ctx, userID)
	})
}

// Notifications returns the notification listing
func (q *Queries) Notifications(ctx context.Context, params domain.NotificationsParams) (domain.NotificationsResponse, error) {
	return Fetch(ctx, q.cache, NotificationsKey(params), ReadOptions{}, func(ctx context.Context) (domain.NotificationsResponse, error) {
		return q.api.Notifications.List(ctx, params)
	})
}

// DiscoverTrending returns the discover trending surface
func (q *Queries) DiscoverTrending(ctx context.Context, params domain.DiscoverParams) ([]domain.Watchlist, error) {
	return Fetch(ctx, q.cache, DiscoverTrendingKey(params), ReadOptions{}, func(ctx context.Context) ([]domain.Watchlist, error) {
		return q.api.Discover.Trending(ctx, params)
	})
}

// DiscoverNew returns newly added movies
func (q *Queries) DiscoverNew(ctx context.Context, params domain.DiscoverParams) ([]domain.Movie, error) {
	return Fetch(ctx, q.cache, DiscoverNewKey(params), ReadOptions{}, func(ctx context.Context) ([]domain.Movie, error) {
		return q.api.Discover.New(ctx, params)
	})
}

// Feed returns one page of the home feed
func (q *Queries) Feed(ctx context.Context, params domain.FeedParams) (domain.FeedResponse, error) {
	return Fetch(ctx, q.cache, FeedKey(params), ReadOptions{}, func(ctx context.Context) (domain.FeedResponse, error) {
		return q.api.Feed.Get(ctx, params)
	})
}

// Stats returns the site-wide counters
func (q *Queries) Stats(ctx context.Context) (domain.StatsResponse, error) {
	return Fetch(ctx, q.cache, StatsKey(), ReadOptions{}, func(ctx context.Context) (domain.StatsResponse, error) {
		return q.api.Stats.Get(ctx)
	})
}
