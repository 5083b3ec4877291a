package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/scenee/scenee-go/internal/domain"
)

var bucketAuth = []byte("auth")

// Storage keys, namespaced to avoid collision with unrelated stored data
const (
	keyToken = "scenee:access_token"
	keyUser  = "scenee:user"
)

// AuthStore is the durable home of the bearer token and the cached user
// record. Read failures degrade to "no cached value"; write failures for
// the token are surfaced to the caller, write failures for the cached user
// are the caller's to swallow.
type AuthStore struct {
	db *bolt.DB

	mu    sync.RWMutex
	cache map[string][]byte // memory-only mode when db == nil
}

// NewAuthStore opens the auth database under dir. An empty dir selects
// memory-only mode (no persistence), which tests and ephemeral clients use.
func NewAuthStore(dir string) (*AuthStore, error) {
	if dir == "" {
		return &AuthStore{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "scenee.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open auth db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketAuth)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &AuthStore{db: db}, nil
}

func (s *AuthStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *AuthStore) get(key string, dest any) bool {
	if s.db == nil {
		s.mu.RLock()
		data, ok := s.cache[key]
		s.mu.RUnlock()
		if !ok {
			return false
		}
		return json.Unmarshal(data, dest) == nil
	}

	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketAuth)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil || data == nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

func (s *AuthStore) set(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	if s.db == nil {
		s.mu.Lock()
		s.cache[key] = data
		s.mu.Unlock()
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketAuth).Put([]byte(key), data)
	})
}

func (s *AuthStore) delete(keys ...string) {
	if s.db == nil {
		s.mu.Lock()
		for _, k := range keys {
			delete(s.cache, k)
		}
		s.mu.Unlock()
		return
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketAuth)
		if b == nil {
			return nil
		}
		for _, k := range keys {
			if err := b.Delete([]byte(k)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		slog.Warn("failed to delete auth keys", "error", err)
	}
}

// StoreToken persists the bearer token. Session restore and login need to
// know when persistence failed, so the error is returned.
func (s *AuthStore) StoreToken(token string) error {
	return s.set(keyToken, token)
}

// Token returns the persisted bearer token, if any
func (s *AuthStore) Token() (string, bool) {
	var token string
	if !s.get(keyToken, &token) || token == "" {
		return "", false
	}
	return token, true
}

// RemoveToken drops the persisted bearer token
func (s *AuthStore) RemoveToken() {
	s.delete(keyToken)
}

// StoreUser persists the last-known user record for optimistic hydration
func (s *AuthStore) StoreUser(user domain.User) error {
	return s.set(keyUser, user)
}

// CachedUser returns the last persisted user record, if any
func (s *AuthStore) CachedUser() (domain.User, bool) {
	var user domain.User
	if !s.get(keyUser, &user) || user.ID == "" {
		return domain.User{}, false
	}
	return user, true
}

// RemoveUser drops the persisted user record
func (s *AuthStore) RemoveUser() {
	s.delete(keyUser)
}

// ClearAll removes every persisted auth value
func (s *AuthStore) ClearAll() {
	s.delete(keyToken, keyUser)
}
