package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/premmsharma122/user-management-system/internal/userms/domain"
	"github.com/premmsharma122/user-management-system/internal/userms/store"
	"github.com/premmsharma122/user-management-system/pkg/cryptox"
	"github.com/premmsharma122/user-management-system/pkg/idx"
)

// BootstrapService seeds the first admin account on an empty database.
type BootstrapService struct {
	Store  store.Store
	Logger *slog.Logger
}

// EnsureAdmin creates an admin account from the configured email and
// password when the store has no users yet. When no password is
// configured one is generated and logged once; the operator is expected
// to change it immediately. A no-op on populated databases or when no
// admin email is configured.
func (s *BootstrapService) EnsureAdmin(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil
	}

	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return err
	}
	if !empty {
		return nil
	}

	generated := false
	if password == "" {
		password, err = cryptox.GeneratePassword()
		if err != nil {
			return err
		}
		generated = true
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return err
	}

	admin := domain.User{
		ID:           idx.New().String(),
		Name:         "Administrator",
		Email:        email,
		Phone:        "0000000000",
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		State:        "-",
		City:         "-",
		Country:      "-",
	}

	if err := s.Store.Users().Create(ctx, admin); err != nil {
		return err
	}

	if generated {
		s.Logger.Warn("seeded admin account with a generated password, change it immediately",
			"email", email, "password", password)
	} else {
		s.Logger.Info("seeded admin account", "email", email)
	}
	return nil
}
