package api

import (
	"context"

	"github.com/scenee/scenee-go/internal/domain"
)

// AuthService maps the /auth endpoints
type AuthService struct {
	c *Client
}

// Register creates a new account. The backend does not authenticate on
// register; callers follow up with Login.
func (s *AuthService) Register(ctx context.Context, req domain.RegisterRequest) (domain.User, error) {
	return post[domain.User](ctx, s.c, "/auth/register", req)
}

// Login exchanges credentials for a session. On a token-bearing response
// the token store is updated before returning, so subsequent calls in the
// same flow are already authenticated.
func (s *AuthService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	resp, err := post[domain.LoginResponse](ctx, s.c, "/auth/login", req)
	if err != nil {
		return resp, err
	}
	if resp.Token != "" {
		s.c.tokens.Set(resp.Token)
	}
	return resp, nil
}

// Logout invalidates the server session. The token store is cleared after
// the call resolves regardless of its outcome.
func (s *AuthService) Logout(ctx context.Context) (domain.MessageResponse, error) {
	resp, err := post[domain.MessageResponse](ctx, s.c, "/auth/logout", nil)
	s.c.tokens.Clear()
	return resp, err
}

// User returns the account for the current credential
func (s *AuthService) User(ctx context.Context) (domain.User, error) {
	return get[domain.User](ctx, s.c, "/auth/user", nil)
}
