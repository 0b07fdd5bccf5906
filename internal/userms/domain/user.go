package domain

import "time"

// Roles known to the system. There is no role table; the role is a
// plain column on the user row.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID              string
	Name            string
	Email           string
	Phone           string
	PasswordHash    string // argon2 encoded
	Role            string
	Address         string
	State           string
	City            string
	Country         string
	Pincode         string
	ProfileImageURL string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }
