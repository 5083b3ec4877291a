package api

import "sync"

// TokenStore is the single-writer holder of the current bearer credential.
// It is injected into the Client at construction so independent clients can
// carry independent sessions.
type TokenStore struct {
	mu    sync.RWMutex
	token string
}

// NewTokenStore creates an empty token store
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Set replaces the current token
func (t *TokenStore) Set(token string) {
	t.mu.Lock()
	t.token = token
	t.mu.Unlock()
}

// Get returns the current token, or "" when no session is held
func (t *TokenStore) Get() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.token
}

// Clear drops the current token
func (t *TokenStore) Clear() {
	t.mu.Lock()
	t.token = ""
	t.mu.Unlock()
}
