package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenee/scenee-go/internal/domain"
)

func TestAuthStoreTokenRoundTrip(t *testing.T) {
	s, err := NewAuthStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	_, ok := s.Token()
	assert.False(t, ok, "fresh store holds no token")

	require.NoError(t, s.StoreToken("tok-abc"))
	token, ok := s.Token()
	require.True(t, ok)
	assert.Equal(t, "tok-abc", token)

	s.RemoveToken()
	_, ok = s.Token()
	assert.False(t, ok)
}

func TestAuthStoreUserRoundTrip(t *testing.T) {
	s, err := NewAuthStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	user := domain.User{
		ID:        "u-1",
		Email:     "ada@example.com",
		Username:  "ada",
		Bio:       "movie person",
		AvatarURL: "https://example.com/a.png",
		CreatedAt: "2026-01-01T00:00:00Z",
	}

	require.NoError(t, s.StoreUser(user))
	got, ok := s.CachedUser()
	require.True(t, ok)
	assert.Equal(t, user, got)

	s.RemoveUser()
	_, ok = s.CachedUser()
	assert.False(t, ok)
}

func TestAuthStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := NewAuthStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.StoreToken("tok-persist"))
	require.NoError(t, s.StoreUser(domain.User{ID: "u-1", Username: "ada"}))
	require.NoError(t, s.Close())

	s2, err := NewAuthStore(dir)
	require.NoError(t, err)
	defer s2.Close()

	token, ok := s2.Token()
	require.True(t, ok)
	assert.Equal(t, "tok-persist", token)

	user, ok := s2.CachedUser()
	require.True(t, ok)
	assert.Equal(t, "ada", user.Username)
}

func TestAuthStoreClearAll(t *testing.T) {
	s, err := NewAuthStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.StoreToken("tok"))
	require.NoError(t, s.StoreUser(domain.User{ID: "u-1"}))

	s.ClearAll()

	_, ok := s.Token()
	assert.False(t, ok)
	_, ok = s.CachedUser()
	assert.False(t, ok)
}

func TestAuthStoreMemoryMode(t *testing.T) {
	s, err := NewAuthStore("")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.StoreToken("ephemeral"))
	token, ok := s.Token()
	require.True(t, ok)
	assert.Equal(t, "ephemeral", token)

	s.ClearAll()
	_, ok = s.Token()
	assert.False(t, ok)
}

func TestAuthStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "scenee")

	s, err := NewAuthStore(dir)
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(filepath.Join(dir, "scenee.db"))
	assert.NoError(t, err)
}
