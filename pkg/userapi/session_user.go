package userapi

import (
	"context"
	"net/http"
	"net/url"
)

// Me returns the caller's own profile, fetched fresh from the server.
func (s *Session) Me(ctx context.Context) (User, error) {
	return s.GetUser(ctx, s.User().ID)
}

// GetUser fetches a user by id. Non-admins can only fetch themselves.
func (s *Session) GetUser(ctx context.Context, userID string) (User, error) {
	resp, err := s.do(ctx, http.MethodGet, "/api/users/"+url.PathEscape(userID), nil)
	if err != nil {
		return User{}, err
	}

	var user User
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return User{}, err
	}
	return user, nil
}

// ListUsers returns users matching the keyword (admin only). An empty
// keyword returns everyone.
func (s *Session) ListUsers(ctx context.Context, keyword string) ([]User, error) {
	path := "/api/users"
	if keyword != "" {
		path += "?keyword=" + url.QueryEscape(keyword)
	}

	resp, err := s.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var users []User
	if err := decodeJSON(resp, &users, http.StatusOK); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser applies a partial update. Self or admin; only admins may
// set Role.
func (s *Session) UpdateUser(ctx context.Context, userID string, req UpdateUserRequest) (User, error) {
	resp, err := s.do(ctx, http.MethodPut, "/api/users/"+url.PathEscape(userID), req)
	if err != nil {
		return User{}, err
	}

	var user User
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return User{}, err
	}

	// Keep the cached projection current when editing ourselves.
	if userID == s.User().ID {
		s.mu.Lock()
		s.user = user
		s.mu.Unlock()
		if err := s.persist(); err != nil {
			return User{}, err
		}
	}
	return user, nil
}

// DeleteUser removes a user account (admin only).
func (s *Session) DeleteUser(ctx context.Context, userID string) error {
	resp, err := s.do(ctx, http.MethodDelete, "/api/users/"+url.PathEscape(userID), nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusNoContent)
}
