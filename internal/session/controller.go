package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/scenee/scenee-go/internal/api"
	"github.com/scenee/scenee-go/internal/domain"
	"github.com/scenee/scenee-go/internal/query"
	"github.com/scenee/scenee-go/internal/store"
)

// State is the session lifecycle state
type State int

const (
	// StateUnknown holds from startup until Restore resolves; no redirect
	// decision may be made while it holds.
	StateUnknown State = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Redirector is notified on every transition into an authenticated or
// unauthenticated state so the routing layer can move the user off screens
// they no longer belong on. It is a collaborator, not state owned here.
type Redirector interface {
	OnAuthenticated()
	OnUnauthenticated()
}

// NoopRedirector ignores all transitions
type NoopRedirector struct{}

func (NoopRedirector) OnAuthenticated()   {}
func (NoopRedirector) OnUnauthenticated() {}

// Controller orchestrates login, register, logout and restore across the
// token store, the durable auth storage and the user API.
type Controller struct {
	api        *api.Client
	tokens     *api.TokenStore
	store      *store.AuthStore
	cache      *query.Cache
	redirector Redirector
	logger     *slog.Logger

	mu    sync.RWMutex
	state State
	user  *domain.User
}

// NewController wires a controller. The token store is taken from the
// client so both always read the same credential slot.
func NewController(client *api.Client, authStore *store.AuthStore, cache *query.Cache, redirector Redirector, logger *slog.Logger) *Controller {
	if redirector == nil {
		redirector = NoopRedirector{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		api:        client,
		tokens:     client.Tokens(),
		store:      authStore,
		cache:      cache,
		redirector: redirector,
		logger:     logger,
		state:      StateUnknown,
	}
}

// State returns the current session state
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// CurrentUser returns the held user record. During Restore this may be the
// optimistically hydrated cached user while the live check is in flight.
func (c *Controller) CurrentUser() (domain.User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return domain.User{}, false
	}
	return *c.user, true
}

// IsAuthenticated reports whether a live session is held
func (c *Controller) IsAuthenticated() bool {
	return c.State() == StateAuthenticated
}

// Restore resolves the session from durable storage on startup. A stored
// token is verified against the live API; rejection clears all persisted
// and in-memory auth state and falls back silently to the logged-out
// state. Restore itself never returns an auth error.
func (c *Controller) Restore(ctx context.Context) {
	// Optimistic hydration: show the last-known user while verifying
	if cached, ok := c.store.CachedUser(); ok {
		c.mu.Lock()
		c.user = &cached
		c.mu.Unlock()
	}

	token, ok := c.store.Token()
	if !ok {
		c.transition(StateUnauthenticated, nil)
		return
	}

	c.tokens.Set(token)
	fresh, err := c.api.Users.Me(ctx)
	if err != nil {
		c.logger.Info("stored token rejected, clearing session", "error", err)
		c.store.ClearAll()
		c.tokens.Clear()
		c.transition(StateUnauthenticated, nil)
		return
	}

	if err := c.store.StoreUser(fresh); err != nil {
		c.logger.Warn("failed to refresh cached user", "error", err)
	}
	c.transition(StateAuthenticated, &fresh)
}

// Login authenticates and commits the session. Failure at any step leaves
// no partial session behind.
func (c *Controller) Login(ctx context.Context, creds domain.LoginRequest) error {
	if err := domain.Validate(creds); err != nil {
		return err
	}

	resp, err := c.api.Auth.Login(ctx, creds)
	if err != nil {
		return err
	}

	if err := c.store.StoreToken(resp.Token); err != nil {
		c.tokens.Clear()
		return fmt.Errorf("failed to persist token: %w", err)
	}

	user, err := c.api.Users.Me(ctx)
	if err != nil {
		c.store.ClearAll()
		c.tokens.Clear()
		return err
	}

	if err := c.store.StoreUser(user); err != nil {
		c.logger.Warn("failed to cache user", "error", err)
	}
	if err := c.cache.Set(query.MeKey(), user); err != nil {
		c.logger.Warn("failed to seed user cache", "error", err)
	}

	c.transition(StateAuthenticated, &user)
	return nil
}

// Register creates the account, then runs the login flow with the same
// credentials. The backend does not authenticate on register.
func (c *Controller) Register(ctx context.Context, data domain.RegisterRequest) error {
	if err := domain.Validate(data); err != nil {
		return err
	}
	if _, err := c.api.Auth.Register(ctx, data); err != nil {
		return err
	}
	return c.Login(ctx, domain.LoginRequest{Email: data.Email, Password: data.Password})
}

// Logout calls the server endpoint best-effort, then unconditionally
// clears the token store, durable storage and the query cache. The local
// cleanup runs even when the network call fails.
func (c *Controller) Logout(ctx context.Context) {
	defer func() {
		c.store.ClearAll()
		c.tokens.Clear()
		c.cache.Clear()
		c.transition(StateUnauthenticated, nil)
	}()

	if _, err := c.api.Auth.Logout(ctx); err != nil {
		c.logger.Debug("server logout failed", "error", err)
	}
}

// RefreshUser re-fetches the current user and updates the persisted cache.
// Failure propagates without changing the session state.
func (c *Controller) RefreshUser(ctx context.Context) error {
	user, err := c.api.Users.Me(ctx)
	if err != nil {
		return err
	}
	if err := c.store.StoreUser(user); err != nil {
		c.logger.Warn("failed to cache user", "error", err)
	}
	c.mu.Lock()
	c.user = &user
	c.mu.Unlock()
	return nil
}

func (c *Controller) transition(state State, user *domain.User) {
	c.mu.Lock()
	c.state = state
	c.user = user
	c.mu.Unlock()

	c.logger.Debug("session state", "state", state.String())

	switch state {
	case StateAuthenticated:
		c.redirector.OnAuthenticated()
	case StateUnauthenticated:
		c.redirector.OnUnauthenticated()
	}
}
