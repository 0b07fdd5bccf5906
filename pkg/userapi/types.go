package userapi

import "time"

// User is the non-sensitive identity projection returned by every
// endpoint. The password hash never crosses the wire.
type User struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Role            string    `json:"role"`
	Address         string    `json:"address,omitempty"`
	State           string    `json:"state"`
	City            string    `json:"city"`
	Country         string    `json:"country"`
	Pincode         string    `json:"pincode,omitempty"`
	ProfileImageURL string    `json:"profileImageUrl,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// RegisterRequest is the body for POST /api/auth/register.
type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	Address         string `json:"address,omitempty"`
	State           string `json:"state"`
	City            string `json:"city"`
	Country         string `json:"country"`
	Pincode         string `json:"pincode,omitempty"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
}

// LoginRequest is the body for POST /api/auth/login. LoginID matches
// either the email or the phone number.
type LoginRequest struct {
	LoginID  string `json:"loginId"`
	Password string `json:"password"`
}

// RefreshRequest is the body for POST /api/auth/refresh-token.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// AuthResponse is returned by register, login and refresh: the identity
// projection plus a fresh token pair.
type AuthResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}

// HealthResponse is returned by the /livez and /readyz endpoints.
// Readiness responses additionally carry per-dependency Checks.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the status of critical dependencies, "ok" or an
// error description per component.
type HealthChecks struct {
	Database string `json:"database"`
}

// UpdateUserRequest is the body for PUT /api/users/{id}. Nil fields are
// left unchanged. Role is honoured only for admin callers.
type UpdateUserRequest struct {
	Name            *string `json:"name,omitempty"`
	Email           *string `json:"email,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	Password        *string `json:"password,omitempty"`
	Address         *string `json:"address,omitempty"`
	State           *string `json:"state,omitempty"`
	City            *string `json:"city,omitempty"`
	Country         *string `json:"country,omitempty"`
	Pincode         *string `json:"pincode,omitempty"`
	ProfileImageURL *string `json:"profileImageUrl,omitempty"`
	Role            *string `json:"role,omitempty"`
}
