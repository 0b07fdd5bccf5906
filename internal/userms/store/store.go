package store

import (
	"context"
	"errors"

	"github.com/premmsharma122/user-management-system/internal/userms/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for
// now) implement this. Sub-repositories keep concerns tidy and give us
// room to add tables without widening one giant interface.
type Store interface {
	Users() Users

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Users interface {
	// GetByID returns a user by id.
	GetByID(ctx context.Context, id string) (domain.User, error)

	// GetByEmail returns a user by their email (case-insensitive).
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// GetByPhone returns a user by their phone number.
	GetByPhone(ctx context.Context, phone string) (domain.User, error)

	// Create inserts a new user (id is provided by app via ULID).
	// Returns ErrAlreadyExists when the email or phone is taken.
	Create(ctx context.Context, u domain.User) error

	// Update rewrites the mutable fields of a user row and bumps
	// updated_at. The password hash and role are included; callers
	// decide what may change.
	Update(ctx context.Context, u domain.User) error

	// Delete removes a user row.
	Delete(ctx context.Context, id string) error

	// Search returns users whose name, email, state or city contains
	// the keyword. An empty keyword returns everyone. Results are
	// ordered by id, which sorts by creation time.
	Search(ctx context.Context, keyword string) ([]domain.User, error)

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}
