package query

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/scenee/scenee-go/internal/domain"
)

const (
	// DefaultStaleTime marks entries stale 30s after fetch
	DefaultStaleTime = 30 * time.Second

	// DefaultRetention evicts entries untouched for 5 minutes
	DefaultRetention = 5 * time.Minute
)

// ReadOptions tune a single read
type ReadOptions struct {
	// StaleTime overrides the cache-wide staleness window when > 0
	StaleTime time.Duration

	// NoRetry disables the single automatic retry for this read
	NoRetry bool
}

type entry struct {
	data       []byte
	fetchedAt  time.Time
	lastAccess time.Time
	fetchErr   error // last failed refetch, while the stale value is still served
}

// Cache owns every cache entry in the client. Entries hold the raw JSON of
// the last fetched value; concurrent fetches for one key are coalesced into
// a single network call.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry

	group     singleflight.Group
	staleTime time.Duration
	retention time.Duration
	logger    *slog.Logger

	now func() time.Time // swapped in tests
}

// NewCache creates a cache. Zero durations select the defaults.
func NewCache(staleTime, retention time.Duration, logger *slog.Logger) *Cache {
	if staleTime <= 0 {
		staleTime = DefaultStaleTime
	}
	if retention <= 0 {
		retention = DefaultRetention
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		entries:   make(map[string]*entry),
		staleTime: staleTime,
		retention: retention,
		logger:    logger,
		now:       time.Now,
	}
}

// Fetch returns the cached value for key, fetching via fn when the entry
// is absent or stale. On a failed refetch the previous value stays in
// place and is returned alongside the error (stale-while-error).
func Fetch[T any](ctx context.Context, c *Cache, key Key, opts ReadOptions, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	ks := key.String()

	staleTime := opts.StaleTime
	if staleTime <= 0 {
		staleTime = c.staleTime
	}

	c.mu.Lock()
	c.sweepLocked()
	if e, ok := c.entries[ks]; ok {
		e.lastAccess = c.now()
		if c.now().Sub(e.fetchedAt) < staleTime {
			data := e.data
			c.mu.Unlock()
			var out T
			if err := json.Unmarshal(data, &out); err != nil {
				return zero, fmt.Errorf("corrupt cache entry %q: %w", ks, err)
			}
			return out, nil
		}
	}
	c.mu.Unlock()

	result, err, shared := c.group.Do(ks, func() (any, error) {
		val, err := fetchWithRetry(ctx, c, ks, opts.NoRetry, fn)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(val)
		if err != nil {
			return nil, fmt.Errorf("failed to encode cache entry %q: %w", ks, err)
		}
		c.put(ks, data)
		return data, nil
	})
	if shared {
		c.logger.Debug("coalesced fetch", "key", ks)
	}
	if err != nil {
		if stale, ok := c.markError(ks, err); ok {
			var out T
			if json.Unmarshal(stale, &out) == nil {
				return out, err
			}
		}
		return zero, err
	}

	var out T
	if uerr := json.Unmarshal(result.([]byte), &out); uerr != nil {
		return zero, fmt.Errorf("corrupt cache entry %q: %w", ks, uerr)
	}
	return out, nil
}

// fetchWithRetry runs fn, retrying once for transport errors and 5xx
// responses. Typed 4xx errors are never retried.
func fetchWithRetry[T any](ctx context.Context, c *Cache, key string, noRetry bool, fn func(context.Context) (T, error)) (T, error) {
	val, err := fn(ctx)
	if err == nil || noRetry || !shouldRetry(err) || ctx.Err() != nil {
		return val, err
	}
	c.logger.Debug("retrying fetch", "key", key, "error", err)
	return fn(ctx)
}

func shouldRetry(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= http.StatusInternalServerError
	}
	// Transport or parse failure
	return true
}

// Peek returns the cached value for key without dispatching a fetch,
// regardless of staleness.
func Peek[T any](c *Cache, key Key) (T, bool) {
	var out T
	c.mu.Lock()
	e, ok := c.entries[key.String()]
	if ok {
		e.lastAccess = c.now()
	}
	var data []byte
	if ok {
		data = e.data
	}
	c.mu.Unlock()
	if !ok || json.Unmarshal(data, &out) != nil {
		return out, false
	}
	return out, true
}

// Set stores a value for key directly, marking it freshly fetched. Login
// uses this to seed the current-user entry from the login response.
func (c *Cache) Set(key Key, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.put(key.String(), data)
	return nil
}

func (c *Cache) put(ks string, data []byte) {
	c.mu.Lock()
	c.entries[ks] = &entry{
		data:       data,
		fetchedAt:  c.now(),
		lastAccess: c.now(),
	}
	c.mu.Unlock()
}

// markError records a failed refetch and returns the stale bytes, if any
func (c *Cache) markError(ks string, err error) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[ks]
	if !ok || e.data == nil {
		return nil, false
	}
	e.fetchErr = err
	return e.data, true
}

// Invalidate removes the entry for key and every entry nested beneath it,
// so the next read refetches instead of serving pre-mutation data.
func (c *Cache) Invalidate(key Key) {
	ks := key.String()
	prefix := ks + ":"

	c.mu.Lock()
	for k := range c.entries {
		if k == ks || strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
	c.mu.Unlock()

	c.logger.Debug("invalidated", "key", ks)
}

// Clear drops every entry. Logout uses this.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]*entry)
	c.mu.Unlock()
	c.logger.Debug("cache cleared")
}

// Len reports the number of live entries
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// sweepLocked evicts entries past the idle retention window
func (c *Cache) sweepLocked() {
	cutoff := c.now().Add(-c.retention)
	for k, e := range c.entries {
		if e.lastAccess.Before(cutoff) {
			delete(c.entries, k)
		}
	}
}
