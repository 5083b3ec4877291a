package query

import (
	"strconv"
	"strings"

	"github.com/scenee/scenee-go/internal/domain"
)

// Key is a structured cache key: a resource tag plus an ordered parameter
// list. Identity is the canonical string form, so value-equal parameter
// sets always map to the same entry. Keys nest by prefix: invalidating
// "watchlists" covers "watchlists:list:...", "watchlists:<id>" and so on.
type Key struct {
	Resource string
	Params   []string
}

// NewKey builds a key from a resource tag and ordered parameters
func NewKey(resource string, params ...string) Key {
	return Key{Resource: resource, Params: params}
}

// String returns the canonical form used for entry identity and prefix
// invalidation.
func (k Key) String() string {
	if len(k.Params) == 0 {
		return k.Resource
	}
	return k.Resource + ":" + strings.Join(k.Params, ":")
}

// AuthUserKey caches the /auth/user record
func AuthUserKey() Key {
	return NewKey("auth", "user")
}

// MeKey caches the current user's profile
func MeKey() Key {
	return NewKey("user", "me")
}

// MovieKey caches a single movie
func MovieKey(id int64) Key {
	return NewKey("movies", strconv.FormatInt(id, 10))
}

// MovieSearchKey caches one page of a movie search. Absent optional
// parameters are omitted from the key so they cannot split cache identity.
func MovieSearchKey(p domain.SearchMoviesParams) Key {
	params := []string{"search", "q=" + p.Query}
	if p.Page > 0 {
		params = append(params, "page="+strconv.Itoa(p.Page))
	}
	return Key{Resource: "movies", Params: params}
}

// WatchlistsKey is the root of the watchlist key family; invalidating it
// covers lists, details, public slugs and trending.
func WatchlistsKey() Key {
	return NewKey("watchlists")
}

// WatchlistListKey caches the watchlist listing for an owner filter
func WatchlistListKey(p domain.ListWatchlistsParams) Key {
	params := []string{"list"}
	if p.Owner != "" {
		params = append(params, "owner="+p.Owner)
	}
	return Key{Resource: "watchlists", Params: params}
}

// WatchlistKey caches one watchlist's detail view
func WatchlistKey(id string) Key {
	return NewKey("watchlists", id)
}

// PublicWatchlistKey caches a shared watchlist by slug
func PublicWatchlistKey(slug string) Key {
	return NewKey("watchlists", "public", slug)
}

// TrendingKey caches the trending watchlists for a window
func TrendingKey(p domain.TrendingParams) Key {
	params := []string{"trending"}
	if p.Window != "" {
		params = append(params, "window="+p.Window)
	}
	if p.Limit > 0 {
		params = append(params, "limit="+strconv.Itoa(p.Limit))
	}
	return Key{Resource: "watchlists", Params: params}
}

// MovieReviewsKey caches the reviews for a movie
func MovieReviewsKey(movieID string) Key {
	return NewKey("reviews", "movie", movieID)
}

// FollowersKey caches the followers of a user
func FollowersKey(userID string) Key {
	return NewKey("users", userID, "followers")
}

// FollowingKey caches the users a user follows
func FollowingKey(userID string) Key {
	return NewKey("users", userID, "following")
}

// NotificationsRootKey is the root of the notifications key family
func NotificationsRootKey() Key {
	return NewKey("notifications")
}

// NotificationsKey caches a notification listing
func NotificationsKey(p domain.NotificationsParams) Key {
	var params []string
	if p.Unread != nil {
		params = append(params, "unread="+strconv.FormatBool(*p.Unread))
	}
	return Key{Resource: "notifications", Params: params}
}

// DiscoverTrendingKey caches the discover trending surface
func DiscoverTrendingKey(p domain.DiscoverParams) Key {
	return Key{Resource: "discover", Params: append([]string{"trending"}, discoverParams(p)...)}
}

// DiscoverNewKey caches the discover new-releases surface
func DiscoverNewKey(p domain.DiscoverParams) Key {
	return Key{Resource: "discover", Params: append([]string{"new"}, discoverParams(p)...)}
}

func discoverParams(p domain.DiscoverParams) []string {
	var params []string
	if p.Window != "" {
		params = append(params, "window="+p.Window)
	}
	if p.Page > 0 {
		params = append(params, "page="+strconv.Itoa(p.Page))
	}
	if p.Genre != "" {
		params = append(params, "genre="+p.Genre)
	}
	if p.Region != "" {
		params = append(params, "region="+p.Region)
	}
	return params
}

// FeedKey caches one page of the home feed
func FeedKey(p domain.FeedParams) Key {
	var params []string
	if p.Page > 0 {
		params = append(params, "page="+strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		params = append(params, "limit="+strconv.Itoa(p.Limit))
	}
	return Key{Resource: "feed", Params: params}
}

// StatsKey caches the site-wide stats record
func StatsKey() Key {
	return NewKey("stats")
}
