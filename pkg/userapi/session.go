package userapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
)

// Session is an authenticated session. Its request helpers attach the
// current access token and, when the server answers 401, rotate the
// pair via the refresh endpoint and resend the original request exactly
// once. Safe for concurrent use.
type Session struct {
	client *Client

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	user         User
}

// User returns the identity projection captured at login or last refresh.
func (s *Session) User() User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// AccessToken returns the current access token.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// RefreshToken returns the current refresh token.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// Logout clears the session locally: tokens are dropped and the
// persisted state is removed. The server keeps no session state, so
// there is nothing to tell it; already-issued tokens simply age out.
func (s *Session) Logout() error {
	s.mu.Lock()
	s.accessToken = ""
	s.refreshToken = ""
	s.user = User{}
	s.mu.Unlock()

	return s.client.Store.Clear()
}

// persist writes the current state to the client's store.
// Caller must not hold the write lock.
func (s *Session) persist() error {
	s.mu.RLock()
	state := State{
		AccessToken:  s.accessToken,
		RefreshToken: s.refreshToken,
		User:         s.user,
	}
	s.mu.RUnlock()

	return s.client.Store.Save(state)
}

// refresh rotates the token pair. failedToken is the access token the
// 401 was observed with: if another goroutine already rotated past it,
// the refresh is skipped and the caller just retries with the current
// token. The write lock is held across the round trip so concurrent
// 401 holders queue behind a single rotation. On any refresh failure
// the session is cleared and ErrSessionExpired is returned.
func (s *Session) refresh(ctx context.Context, failedToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring the write lock: another goroutine
	// may have finished the rotation while we were waiting.
	if s.accessToken != failedToken {
		return nil
	}

	if s.refreshToken == "" {
		_ = s.client.Store.Clear()
		return ErrSessionExpired
	}

	auth, err := s.client.RefreshPair(ctx, s.refreshToken)
	if err != nil {
		// Whatever went wrong (rejection, timeout, transport), the
		// session cannot be trusted anymore.
		s.accessToken = ""
		s.refreshToken = ""
		s.user = User{}
		_ = s.client.Store.Clear()
		return ErrSessionExpired
	}

	s.accessToken = auth.AccessToken
	s.refreshToken = auth.RefreshToken
	s.user = auth.User

	return s.client.Store.Save(State{
		AccessToken:  s.accessToken,
		RefreshToken: s.refreshToken,
		User:         s.user,
	})
}

// do performs an authenticated JSON request with the retry-once
// contract: 401 triggers one refresh plus one resend, every other
// response (including 403) is returned as-is. The body is marshalled up
// front so the resend reuses identical bytes.
func (s *Session) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("userapi: marshal request body: %w", err)
		}
	}

	// Capture the token the first attempt goes out with. A concurrent
	// rotation between send and refresh must not trigger a second one.
	token := s.AccessToken()

	resp, err := s.send(ctx, method, path, raw, token)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}
	_ = resp.Body.Close()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.refresh(ctx, token); err != nil {
		return nil, err
	}

	// Exactly one resend; a second 401 propagates to the caller.
	return s.send(ctx, method, path, raw, s.AccessToken())
}

func (s *Session) send(ctx context.Context, method, path string, raw []byte, token string) (*http.Response, error) {
	var reqBody *bytes.Reader
	if raw != nil {
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.client.url(path), reqBody)
	if err != nil {
		return nil, fmt.Errorf("userapi: create request: %w", err)
	}
	if raw != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.client.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("userapi: send request: %w", err)
	}
	return resp, nil
}
