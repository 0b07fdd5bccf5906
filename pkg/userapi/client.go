package userapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds every request the SDK makes, including the
// hidden refresh round-trip.
const DefaultTimeout = 30 * time.Second

// Client talks to the user management service. The zero value is not
// usable; construct it with NewClient.
type Client struct {
	// BaseURL is the service root, e.g. "http://localhost:8080".
	BaseURL string

	// HTTPClient is used for all requests.
	HTTPClient *http.Client

	// Store persists sessions created through this client. Defaults to
	// an in-memory store.
	Store SessionStore
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.HTTPClient = hc }
}

// WithStore sets the session store, e.g. a BoltStore for persistence.
func WithStore(store SessionStore) Option {
	return func(c *Client) { c.Store = store }
}

// NewClient builds a Client for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
		Store:      &MemoryStore{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) url(path string) string {
	return c.BaseURL + path
}

// doJSON performs an unauthenticated JSON request.
func (c *Client) doJSON(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("userapi: marshal request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return nil, fmt.Errorf("userapi: create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("userapi: send request: %w", err)
	}
	return resp, nil
}

// decodeJSON decodes a response into target, converting non-expected
// statuses into typed *Error values.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("userapi: read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp, body)
	}

	if target == nil {
		return nil
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("userapi: decode response: %w", err)
	}
	return nil
}

// Register creates a new account and returns a live session for it.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", req)
	if err != nil {
		return nil, err
	}

	var auth AuthResponse
	if err := decodeJSON(resp, &auth, http.StatusCreated); err != nil {
		return nil, err
	}
	return c.newSession(auth)
}

// Login authenticates with an email or phone number plus password and
// returns a live session.
func (c *Client) Login(ctx context.Context, loginID, password string) (*Session, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", LoginRequest{
		LoginID:  loginID,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	var auth AuthResponse
	if err := decodeJSON(resp, &auth, http.StatusOK); err != nil {
		return nil, err
	}
	return c.newSession(auth)
}

// ErrNoSession is returned by Resume when the store holds no session.
var ErrNoSession = errors.New("userapi: no persisted session")

// Resume rebuilds a session from the persisted store, e.g. after a
// process restart. The tokens are not validated here; a stale pair will
// surface as a refresh-or-fail on the first request.
func (c *Client) Resume() (*Session, error) {
	state, ok, err := c.Store.Load()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoSession
	}

	return &Session{
		client:       c,
		accessToken:  state.AccessToken,
		refreshToken: state.RefreshToken,
		user:         state.User,
	}, nil
}

// RefreshPair exchanges a refresh token for a new pair. Used internally
// by Session; exposed for tools that manage tokens themselves.
func (c *Client) RefreshPair(ctx context.Context, refreshToken string) (AuthResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/auth/refresh-token", RefreshRequest{
		RefreshToken: refreshToken,
	})
	if err != nil {
		return AuthResponse{}, err
	}

	var auth AuthResponse
	if err := decodeJSON(resp, &auth, http.StatusOK); err != nil {
		return AuthResponse{}, err
	}
	return auth, nil
}

func (c *Client) newSession(auth AuthResponse) (*Session, error) {
	s := &Session{
		client:       c,
		accessToken:  auth.AccessToken,
		refreshToken: auth.RefreshToken,
		user:         auth.User,
	}
	if err := s.persist(); err != nil {
		return nil, err
	}
	return s, nil
}
