package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/scenee/scenee-go/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	apiVersion     = "/v1"
	userAgent      = "scenee-go/1.0"
)

// Client is the typed HTTP client for the Scenee API. All requests funnel
// through a single request path so header handling and error translation
// are uniform regardless of verb.
type Client struct {
	baseURL    string
	tokens     *TokenStore
	httpClient *http.Client
	logger     *slog.Logger

	Auth          *AuthService
	Users         *UserService
	Movies        *MovieService
	Watchlists    *WatchlistService
	Reviews       *ReviewService
	Follows       *FollowService
	Notifications *NotificationService
	AI            *AIService
	Discover      *DiscoverService
	Feed          *FeedService
	Stats         *StatsService
	Admin         *AdminService
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the HTTP client timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithLogger sets the request logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a Scenee API client for the given base URL. The token
// store decides, per request, whether an Authorization header is attached.
// A cookie jar is installed so cookie-based auth rides alongside the
// bearer header.
func NewClient(baseURL string, tokens *TokenStore, opts ...Option) *Client {
	jar, _ := cookiejar.New(nil)
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
			Jar:     jar,
		},
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}

	c.Auth = &AuthService{c: c}
	c.Users = &UserService{c: c}
	c.Movies = &MovieService{c: c}
	c.Watchlists = &WatchlistService{c: c}
	c.Reviews = &ReviewService{c: c}
	c.Follows = &FollowService{c: c}
	c.Notifications = &NotificationService{c: c}
	c.AI = &AIService{c: c}
	c.Discover = &DiscoverService{c: c}
	c.Feed = &FeedService{c: c}
	c.Stats = &StatsService{c: c}
	c.Admin = &AdminService{c: c}
	return c
}

// Tokens returns the token store this client reads its credential from
func (c *Client) Tokens() *TokenStore {
	return c.tokens
}

// do performs one API request. It is the single translation point between
// raw transport/JSON errors and the typed domain.APIError. A 204 response
// returns nil bytes without the body ever being read as JSON.
func (c *Client) do(ctx context.Context, method, path string, body any, params url.Values, headers http.Header) ([]byte, error) {
	reqURL := c.baseURL + apiVersion + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", requestID)
	for key, values := range headers {
		// Caller headers never override the Authorization contract
		if http.CanonicalHeaderKey(key) == "Authorization" {
			continue
		}
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if tok := c.tokens.Get(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	c.logger.Debug("api request", "method", method, "url", reqURL, "request_id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("api request failed", "method", method, "url", reqURL, "request_id", requestID, "error", err)
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var payload struct {
			Error string `json:"error"`
		}
		message := ""
		if json.Unmarshal(data, &payload) == nil {
			message = payload.Error
		}
		apiErr := domain.NewAPIError(resp.StatusCode, message)
		c.logger.Error("api error", "method", method, "url", reqURL, "request_id", requestID, "status", resp.StatusCode, "message", apiErr.Message)
		return nil, apiErr
	}

	return data, nil
}

// decode unmarshals a response body into the declared result type. Empty
// bodies (204, or endpoints acknowledging with no content) decode to the
// zero value.
func decode[T any](data []byte, err error) (T, error) {
	var out T
	if err != nil {
		return out, err
	}
	if len(data) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("failed to parse response: %w", err)
	}
	return out, nil
}

func get[T any](ctx context.Context, c *Client, path string, params url.Values) (T, error) {
	return decode[T](c.do(ctx, http.MethodGet, path, nil, params, nil))
}

func post[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	return decode[T](c.do(ctx, http.MethodPost, path, body, nil, nil))
}

func patch[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	return decode[T](c.do(ctx, http.MethodPatch, path, body, nil, nil))
}

func put[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	return decode[T](c.do(ctx, http.MethodPut, path, body, nil, nil))
}

func del[T any](ctx context.Context, c *Client, path string) (T, error) {
	return decode[T](c.do(ctx, http.MethodDelete, path, nil, nil, nil))
}
