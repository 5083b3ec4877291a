package query

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenee/scenee-go/internal/domain"
)

func newTestCache(t *testing.T) (*Cache, *time.Time) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := NewCache(0, 0, logger)
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return clock }
	return c, &clock
}

func TestFetchServesFreshEntryWithoutRefetch(t *testing.T) {
	c, _ := newTestCache(t)
	var calls int

	fn := func(context.Context) (string, error) {
		calls++
		return "value", nil
	}

	got, err := Fetch(context.Background(), c, MeKey(), ReadOptions{}, fn)
	require.NoError(t, err)
	assert.Equal(t, "value", got)

	got, err = Fetch(context.Background(), c, MeKey(), ReadOptions{}, fn)
	require.NoError(t, err)
	assert.Equal(t, "value", got)
	assert.Equal(t, 1, calls)
}

func TestFetchRefetchesStaleEntry(t *testing.T) {
	c, clock := newTestCache(t)
	var calls int

	fn := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}

	_, err := Fetch(context.Background(), c, StatsKey(), ReadOptions{}, fn)
	require.NoError(t, err)

	*clock = clock.Add(DefaultStaleTime + time.Second)

	got, err := Fetch(context.Background(), c, StatsKey(), ReadOptions{}, fn)
	require.NoError(t, err)
	assert.Equal(t, 2, got)
	assert.Equal(t, 2, calls)
}

func TestFetchStaleTimeOverride(t *testing.T) {
	c, clock := newTestCache(t)
	var calls int

	fn := func(context.Context) (string, error) {
		calls++
		return "u", nil
	}
	opts := ReadOptions{StaleTime: 5 * time.Minute}

	_, err := Fetch(context.Background(), c, AuthUserKey(), opts, fn)
	require.NoError(t, err)

	// Past the default window but inside the override
	*clock = clock.Add(2 * time.Minute)

	_, err = Fetch(context.Background(), c, AuthUserKey(), opts, fn)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestFetchCoalescesConcurrentReads(t *testing.T) {
	c, _ := newTestCache(t)
	var calls atomic.Int32
	release := make(chan struct{})

	fn := func(context.Context) (string, error) {
		calls.Add(1)
		<-release
		return "shared", nil
	}

	const readers = 8
	var wg sync.WaitGroup
	results := make([]string, readers)
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got, err := Fetch(context.Background(), c, FeedKey(domain.FeedParams{}), ReadOptions{}, fn)
			assert.NoError(t, err)
			results[i] = got
		}(i)
	}

	// Give the goroutines time to pile onto the in-flight call
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load(), "concurrent reads of one key share a single fetch")
	for _, r := range results {
		assert.Equal(t, "shared", r)
	}
}

func TestFetchRetriesServerErrorsOnce(t *testing.T) {
	c, _ := newTestCache(t)
	var calls int

	fn := func(context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", domain.NewAPIError(502, "bad gateway")
		}
		return "recovered", nil
	}

	got, err := Fetch(context.Background(), c, StatsKey(), ReadOptions{}, fn)
	require.NoError(t, err)
	assert.Equal(t, "recovered", got)
	assert.Equal(t, 2, calls)
}

func TestFetchNeverRetriesClientErrors(t *testing.T) {
	c, _ := newTestCache(t)
	var calls int

	fn := func(context.Context) (string, error) {
		calls++
		return "", domain.NewAPIError(404, "not found")
	}

	_, err := Fetch(context.Background(), c, MovieKey(1), ReadOptions{}, fn)
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestFetchNoRetryOption(t *testing.T) {
	c, _ := newTestCache(t)
	var calls int

	fn := func(context.Context) (string, error) {
		calls++
		return "", errors.New("connection refused")
	}

	_, err := Fetch(context.Background(), c, AuthUserKey(), ReadOptions{NoRetry: true}, fn)
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestFetchStaleWhileError(t *testing.T) {
	c, clock := newTestCache(t)

	require.NoError(t, c.Set(StatsKey(), "previous"))
	*clock = clock.Add(DefaultStaleTime + time.Second)

	fetchErr := domain.NewAPIError(503, "unavailable")
	got, err := Fetch(context.Background(), c, StatsKey(), ReadOptions{NoRetry: true}, func(context.Context) (string, error) {
		return "", fetchErr
	})
	require.Error(t, err)
	assert.Equal(t, "previous", got, "failed refetch still surfaces the last good value")
}

func TestShouldRetry(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"transport error", errors.New("dial tcp: connection refused"), true},
		{"server error", domain.NewAPIError(500, ""), true},
		{"client error", domain.NewAPIError(401, ""), false},
		{"context canceled", context.Canceled, false},
		{"deadline exceeded", context.DeadlineExceeded, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shouldRetry(tt.err))
		})
	}
}

func TestInvalidateCoversNestedKeys(t *testing.T) {
	c, _ := newTestCache(t)

	require.NoError(t, c.Set(WatchlistKey("wl-1"), "detail"))
	require.NoError(t, c.Set(WatchlistListKey(domain.ListWatchlistsParams{}), "list"))
	require.NoError(t, c.Set(TrendingKey(domain.TrendingParams{Window: "week"}), "trending"))
	require.NoError(t, c.Set(MeKey(), "me"))

	c.Invalidate(WatchlistsKey())

	_, ok := Peek[string](c, WatchlistKey("wl-1"))
	assert.False(t, ok)
	_, ok = Peek[string](c, WatchlistListKey(domain.ListWatchlistsParams{}))
	assert.False(t, ok)
	_, ok = Peek[string](c, TrendingKey(domain.TrendingParams{Window: "week"}))
	assert.False(t, ok)
	_, ok = Peek[string](c, MeKey())
	assert.True(t, ok, "unrelated entries survive")
}

func TestInvalidateRespectsSegmentBoundary(t *testing.T) {
	c, _ := newTestCache(t)

	require.NoError(t, c.Set(NewKey("watchlists", "wl-1"), "a"))
	require.NoError(t, c.Set(NewKey("watchlistsarchive"), "b"))

	c.Invalidate(WatchlistsKey())

	_, ok := Peek[string](c, NewKey("watchlists", "wl-1"))
	assert.False(t, ok)
	_, ok = Peek[string](c, NewKey("watchlistsarchive"))
	assert.True(t, ok, "prefix match must stop at the segment separator")
}

func TestClearDropsEverything(t *testing.T) {
	c, _ := newTestCache(t)

	require.NoError(t, c.Set(MeKey(), "me"))
	require.NoError(t, c.Set(StatsKey(), "stats"))
	require.Equal(t, 2, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestSweepEvictsIdleEntries(t *testing.T) {
	c, clock := newTestCache(t)

	require.NoError(t, c.Set(StatsKey(), "old"))
	*clock = clock.Add(DefaultRetention + time.Minute)

	// Any fetch sweeps first
	_, err := Fetch(context.Background(), c, MeKey(), ReadOptions{}, func(context.Context) (string, error) {
		return "me", nil
	})
	require.NoError(t, err)

	_, ok := Peek[string](c, StatsKey())
	assert.False(t, ok, "idle entry evicted past the retention window")
}

func TestKeyStrings(t *testing.T) {
	unread := true
	tests := []struct {
		key  Key
		want string
	}{
		{MeKey(), "user:me"},
		{AuthUserKey(), "auth:user"},
		{MovieKey(603), "movies:603"},
		{MovieSearchKey(domain.SearchMoviesParams{Query: "heat"}), "movies:search:q=heat"},
		{MovieSearchKey(domain.SearchMoviesParams{Query: "heat", Page: 2}), "movies:search:q=heat:page=2"},
		{WatchlistsKey(), "watchlists"},
		{WatchlistListKey(domain.ListWatchlistsParams{Owner: "ada"}), "watchlists:list:owner=ada"},
		{WatchlistKey("wl-1"), "watchlists:wl-1"},
		{PublicWatchlistKey("summer-noir"), "watchlists:public:summer-noir"},
		{TrendingKey(domain.TrendingParams{Window: "week"}), "watchlists:trending:window=week"},
		{MovieReviewsKey("m-1"), "reviews:movie:m-1"},
		{FollowersKey("u-1"), "users:u-1:followers"},
		{NotificationsKey(domain.NotificationsParams{}), "notifications"},
		{NotificationsKey(domain.NotificationsParams{Unread: &unread}), "notifications:unread=true"},
		{FeedKey(domain.FeedParams{Page: 3}), "feed:page=3"},
		{StatsKey(), "stats"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.key.String())
		})
	}
}
