package session

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenee/scenee-go/internal/api"
	"github.com/scenee/scenee-go/internal/domain"
	"github.com/scenee/scenee-go/internal/query"
	"github.com/scenee/scenee-go/internal/store"
)

type recordingRedirector struct {
	authenticated   int
	unauthenticated int
}

func (r *recordingRedirector) OnAuthenticated()   { r.authenticated++ }
func (r *recordingRedirector) OnUnauthenticated() { r.unauthenticated++ }

type fixture struct {
	ctrl       *Controller
	authStore  *store.AuthStore
	tokens     *api.TokenStore
	cache      *query.Cache
	redirector *recordingRedirector
}

// newFixture wires a controller against a server that accepts the
// credentials ada@example.com / secretpw1 and honors the token it issues.
func newFixture(t *testing.T, loginStatus, logoutStatus int) *fixture {
	t.Helper()

	const validToken = "tok-good"
	user := domain.User{ID: "u-1", Email: "ada@example.com", Username: "ada"}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		if loginStatus != http.StatusOK {
			w.WriteHeader(loginStatus)
			w.Write([]byte(`{"error":"invalid credentials"}`))
			return
		}
		json.NewEncoder(w).Encode(domain.LoginResponse{Token: validToken, User: user})
	})
	mux.HandleFunc("POST /v1/auth/register", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(user)
	})
	mux.HandleFunc("GET /v1/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+validToken {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"unauthorized"}`))
			return
		}
		json.NewEncoder(w).Encode(user)
	})
	mux.HandleFunc("POST /v1/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(logoutStatus)
		if logoutStatus >= 400 {
			w.Write([]byte(`{"error":"session backend down"}`))
		}
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	authStore, err := store.NewAuthStore("")
	require.NoError(t, err)

	tokens := api.NewTokenStore()
	client := api.NewClient(srv.URL, tokens, api.WithLogger(logger))
	cache := query.NewCache(0, 0, logger)
	redirector := &recordingRedirector{}

	return &fixture{
		ctrl:       NewController(client, authStore, cache, redirector, logger),
		authStore:  authStore,
		tokens:     tokens,
		cache:      cache,
		redirector: redirector,
	}
}

func validLogin() domain.LoginRequest {
	return domain.LoginRequest{Email: "ada@example.com", Password: "secretpw1"}
}

func TestControllerStartsUnknown(t *testing.T) {
	f := newFixture(t, http.StatusOK, http.StatusNoContent)
	assert.Equal(t, StateUnknown, f.ctrl.State())
	assert.False(t, f.ctrl.IsAuthenticated())
}

func TestLoginCommitsSession(t *testing.T) {
	f := newFixture(t, http.StatusOK, http.StatusNoContent)

	require.NoError(t, f.ctrl.Login(context.Background(), validLogin()))

	assert.Equal(t, StateAuthenticated, f.ctrl.State())
	user, ok := f.ctrl.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "ada", user.Username)

	token, ok := f.authStore.Token()
	require.True(t, ok, "token persisted durably")
	assert.Equal(t, "tok-good", token)
	assert.Equal(t, "tok-good", f.tokens.Get())

	cached, ok := f.authStore.CachedUser()
	require.True(t, ok)
	assert.Equal(t, "u-1", cached.ID)

	seeded, ok := query.Peek[domain.User](f.cache, query.MeKey())
	require.True(t, ok, "current-user cache seeded")
	assert.Equal(t, "ada", seeded.Username)

	assert.Equal(t, 1, f.redirector.authenticated)
	assert.Equal(t, 0, f.redirector.unauthenticated)
}

func TestLoginRejectedLeavesNoSession(t *testing.T) {
	f := newFixture(t, http.StatusUnauthorized, http.StatusNoContent)

	err := f.ctrl.Login(context.Background(), validLogin())
	require.Error(t, err)
	assert.True(t, domain.IsUnauthorized(err))

	assert.Equal(t, StateUnknown, f.ctrl.State(), "failed login does not resolve the state")
	assert.Empty(t, f.tokens.Get())
	_, ok := f.authStore.Token()
	assert.False(t, ok)
}

func TestLoginValidatesBeforeNetwork(t *testing.T) {
	f := newFixture(t, http.StatusOK, http.StatusNoContent)

	err := f.ctrl.Login(context.Background(), domain.LoginRequest{Email: "not-an-email", Password: "pw"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterRunsLoginFlow(t *testing.T) {
	f := newFixture(t, http.StatusOK, http.StatusNoContent)

	err := f.ctrl.Register(context.Background(), domain.RegisterRequest{
		Email:    "ada@example.com",
		Username: "ada",
		Password: "secretpw1",
	})
	require.NoError(t, err)

	assert.Equal(t, StateAuthenticated, f.ctrl.State())
	_, ok := f.authStore.Token()
	assert.True(t, ok, "register is followed by a full login commit")
}

func TestRestoreWithoutToken(t *testing.T) {
	f := newFixture(t, http.StatusOK, http.StatusNoContent)

	f.ctrl.Restore(context.Background())

	assert.Equal(t, StateUnauthenticated, f.ctrl.State())
	assert.Equal(t, 1, f.redirector.unauthenticated)
}

func TestRestoreWithValidToken(t *testing.T) {
	f := newFixture(t, http.StatusOK, http.StatusNoContent)
	require.NoError(t, f.authStore.StoreToken("tok-good"))

	f.ctrl.Restore(context.Background())

	assert.Equal(t, StateAuthenticated, f.ctrl.State())
	user, ok := f.ctrl.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "ada", user.Username)

	cached, ok := f.authStore.CachedUser()
	require.True(t, ok, "verified user written back to storage")
	assert.Equal(t, "u-1", cached.ID)
}

func TestRestoreWithRejectedTokenClearsEverything(t *testing.T) {
	f := newFixture(t, http.StatusOK, http.StatusNoContent)
	require.NoError(t, f.authStore.StoreToken("tok-stale"))
	require.NoError(t, f.authStore.StoreUser(domain.User{ID: "u-1", Username: "ada"}))

	f.ctrl.Restore(context.Background())

	assert.Equal(t, StateUnauthenticated, f.ctrl.State())
	assert.Empty(t, f.tokens.Get())
	_, ok := f.authStore.Token()
	assert.False(t, ok, "rejected token purged from storage")
	_, ok = f.authStore.CachedUser()
	assert.False(t, ok)
	_, ok = f.ctrl.CurrentUser()
	assert.False(t, ok, "optimistically hydrated user dropped on rejection")
}

func TestRestoreHydratesCachedUserOptimistically(t *testing.T) {
	f := newFixture(t, http.StatusOK, http.StatusNoContent)
	require.NoError(t, f.authStore.StoreUser(domain.User{ID: "u-1", Username: "ada"}))

	// No token stored: restore resolves to unauthenticated and the
	// hydrated user is discarded with the transition.
	f.ctrl.Restore(context.Background())
	assert.Equal(t, StateUnauthenticated, f.ctrl.State())
}

func TestLogoutClearsStateEvenWhenServerFails(t *testing.T) {
	f := newFixture(t, http.StatusOK, http.StatusInternalServerError)
	require.NoError(t, f.ctrl.Login(context.Background(), validLogin()))
	require.True(t, f.ctrl.IsAuthenticated())

	f.ctrl.Logout(context.Background())

	assert.Equal(t, StateUnauthenticated, f.ctrl.State())
	assert.Empty(t, f.tokens.Get())
	_, ok := f.authStore.Token()
	assert.False(t, ok)
	assert.Equal(t, 0, f.cache.Len(), "query cache dropped on logout")
	_, ok = f.ctrl.CurrentUser()
	assert.False(t, ok)
	assert.Equal(t, 1, f.redirector.unauthenticated)
}

func TestRefreshUserUpdatesHeldRecord(t *testing.T) {
	f := newFixture(t, http.StatusOK, http.StatusNoContent)
	require.NoError(t, f.ctrl.Login(context.Background(), validLogin()))

	require.NoError(t, f.ctrl.RefreshUser(context.Background()))

	user, ok := f.ctrl.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "u-1", user.ID)
	assert.Equal(t, StateAuthenticated, f.ctrl.State())
}
