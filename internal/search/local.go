package search

import (
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	sahilm "github.com/sahilm/fuzzy"

	"github.com/scenee/scenee-go/internal/domain"
)

// Kind distinguishes indexed item types
type Kind string

const (
	KindWatchlist Kind = "watchlist"
	KindMovie     Kind = "movie"
)

// Item is one searchable entry in the local index
type Item struct {
	Kind  Kind
	ID    string
	Title string
}

// Result is a filter match with highlight metadata
type Result struct {
	Item
	MatchedIndexes []int
	Score          int
}

// index implements sahilm/fuzzy.Source; lowercase titles are pre-computed
// at index time.
type index struct {
	items       []Item
	lowerTitles []string
}

func (idx *index) String(i int) string { return idx.lowerTitles[i] }
func (idx *index) Len() int            { return len(idx.items) }

// Service filters already-fetched watchlists and movies without touching
// the network, for search-as-you-type over cached data.
type Service struct {
	logger *slog.Logger

	mu    sync.RWMutex
	index *index
	seen  map[string]bool
}

// NewService creates an empty local search service
func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		logger: logger,
		index:  &index{},
		seen:   make(map[string]bool),
	}
}

// IndexWatchlists adds watchlists to the index, deduplicating by ID
func (s *Service) IndexWatchlists(lists []domain.Watchlist) {
	items := make([]Item, 0, len(lists))
	for _, wl := range lists {
		items = append(items, Item{Kind: KindWatchlist, ID: wl.ID, Title: wl.Title})
	}
	s.add(items)
}

// IndexMovies adds movies to the index, deduplicating by ID
func (s *Service) IndexMovies(movies []domain.Movie) {
	items := make([]Item, 0, len(movies))
	for _, m := range movies {
		items = append(items, Item{Kind: KindMovie, ID: m.ID, Title: m.Title})
	}
	s.add(items)
}

func (s *Service) add(items []Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, item := range items {
		key := string(item.Kind) + ":" + item.ID
		if s.seen[key] {
			continue
		}
		s.seen[key] = true
		s.index.items = append(s.index.items, item)
		s.index.lowerTitles = append(s.index.lowerTitles, strings.ToLower(item.Title))
		added++
	}

	s.logger.Debug("indexed items", "added", added, "total", len(s.index.items))
}

// Filter performs fuzzy matching with highlight positions. Results come
// back best match first.
func (s *Service) Filter(query string) []Result {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" || s.index.Len() == 0 {
		return nil
	}

	matches := sahilm.FindFrom(query, s.index)

	results := make([]Result, len(matches))
	for i, match := range matches {
		results[i] = Result{
			Item:           s.index.items[match.Index],
			MatchedIndexes: match.MatchedIndexes,
			Score:          match.Score,
		}
	}
	return results
}

// Rank performs Levenshtein-ranked matching, useful when Filter finds
// nothing for a near-miss query.
func (s *Service) Rank(query string) []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" || s.index.Len() == 0 {
		return nil
	}

	ranks := fuzzy.RankFindFold(query, s.index.lowerTitles)
	sort.Slice(ranks, func(i, j int) bool {
		return ranks[i].Distance < ranks[j].Distance
	})

	results := make([]Item, 0, len(ranks))
	for _, r := range ranks {
		results = append(results, s.index.items[r.OriginalIndex])
	}
	return results
}

// Clear drops the index, e.g. on logout
func (s *Service) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = &index{}
	s.seen = make(map[string]bool)
	s.logger.Debug("cleared search index")
}

// Count returns the number of indexed items
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Len()
}
