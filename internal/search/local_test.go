package search

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenee/scenee-go/internal/domain"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	s := NewService(slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.IndexWatchlists([]domain.Watchlist{
		{ID: "wl-1", Title: "Summer Noir"},
		{ID: "wl-2", Title: "Space Operas"},
		{ID: "wl-3", Title: "Slow Cinema"},
	})
	s.IndexMovies([]domain.Movie{
		{ID: "m-1", Title: "Heat"},
		{ID: "m-2", Title: "The Conversation"},
	})
	return s
}

func TestFilterMatchesSubsequences(t *testing.T) {
	s := newTestService(t)

	results := s.Filter("noir")
	require.NotEmpty(t, results)
	assert.Equal(t, "wl-1", results[0].ID)
	assert.Equal(t, KindWatchlist, results[0].Kind)
	assert.NotEmpty(t, results[0].MatchedIndexes)
}

func TestFilterIsCaseInsensitive(t *testing.T) {
	s := newTestService(t)

	results := s.Filter("HEAT")
	require.NotEmpty(t, results)
	assert.Equal(t, "m-1", results[0].ID)
}

func TestFilterEmptyQuery(t *testing.T) {
	s := newTestService(t)

	assert.Nil(t, s.Filter(""))
	assert.Nil(t, s.Filter("   "))
}

func TestRankOrdersByDistance(t *testing.T) {
	s := newTestService(t)

	// Near-miss spelling still finds the closest title first
	items := s.Rank("heet")
	require.NotEmpty(t, items)
	assert.Equal(t, "Heat", items[0].Title)
}

func TestIndexDeduplicates(t *testing.T) {
	s := newTestService(t)
	before := s.Count()

	s.IndexWatchlists([]domain.Watchlist{{ID: "wl-1", Title: "Summer Noir"}})
	assert.Equal(t, before, s.Count())

	// Same ID under a different kind is a distinct entry
	s.IndexMovies([]domain.Movie{{ID: "wl-1", Title: "Summer Noir"}})
	assert.Equal(t, before+1, s.Count())
}

func TestClearEmptiesIndex(t *testing.T) {
	s := newTestService(t)
	require.NotZero(t, s.Count())

	s.Clear()
	assert.Zero(t, s.Count())
	assert.Nil(t, s.Filter("noir"))

	// Re-indexing after clear works
	s.IndexMovies([]domain.Movie{{ID: "m-1", Title: "Heat"}})
	assert.Equal(t, 1, s.Count())
}
