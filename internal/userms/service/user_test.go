package service_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/premmsharma122/user-management-system/internal/userms/domain"
	"github.com/premmsharma122/user-management-system/internal/userms/service"
	"github.com/premmsharma122/user-management-system/internal/userms/store"
	"github.com/premmsharma122/user-management-system/internal/userms/store/drivers/sqlite"
	"github.com/premmsharma122/user-management-system/pkg/cryptox"
	"github.com/premmsharma122/user-management-system/pkg/idx"
)

func newUserService(t *testing.T) *service.UserService {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "userms.db"))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	return &service.UserService{Store: st}
}

func seedUser(t *testing.T, svc *service.UserService, name, email, phone string) domain.User {
	t.Helper()

	hash, err := cryptox.HashPassword("secret123")
	require.NoError(t, err)

	u := domain.User{
		ID:           idx.New().String(),
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		State:        "Maharashtra",
		City:         "Mumbai",
		Country:      "India",
	}
	require.NoError(t, svc.Store.Users().Create(context.Background(), u))
	return u
}

func strptr(s string) *string { return &s }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestUserServiceGetAndList(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	alice := seedUser(t, svc, "Alice", "alice@example.com", "9000000001")
	seedUser(t, svc, "Bob", "bob@example.com", "9000000002")

	got, err := svc.Get(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, "Alice", got.Name)

	_, err = svc.Get(ctx, idx.New().String())
	require.ErrorIs(t, err, store.ErrNotFound)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)

	matched, err := svc.List(ctx, "  Alice  ")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	require.Equal(t, alice.ID, matched[0].ID)
}

func TestUserServiceUpdate(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	alice := seedUser(t, svc, "Alice", "alice@example.com", "9000000001")

	t.Run("partial update keeps other fields", func(t *testing.T) {
		updated, err := svc.Update(ctx, alice.ID, service.UpdateInput{
			City: strptr("Pune"),
		}, false)
		require.NoError(t, err)
		require.Equal(t, "Pune", updated.City)
		require.Equal(t, "Alice", updated.Name)
		require.Equal(t, "alice@example.com", updated.Email)
	})

	t.Run("password change rehashes", func(t *testing.T) {
		updated, err := svc.Update(ctx, alice.ID, service.UpdateInput{
			Password: strptr("newpass1"),
		}, false)
		require.NoError(t, err)
		require.NoError(t, cryptox.VerifyPassword("newpass1", updated.PasswordHash))
	})

	t.Run("role change ignored without permission", func(t *testing.T) {
		updated, err := svc.Update(ctx, alice.ID, service.UpdateInput{
			Role: strptr(domain.RoleAdmin),
		}, false)
		require.NoError(t, err)
		require.Equal(t, domain.RoleUser, updated.Role)
	})

	t.Run("role change honoured with permission", func(t *testing.T) {
		updated, err := svc.Update(ctx, alice.ID, service.UpdateInput{
			Role: strptr(domain.RoleAdmin),
		}, true)
		require.NoError(t, err)
		require.Equal(t, domain.RoleAdmin, updated.Role)
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		_, err := svc.Update(ctx, alice.ID, service.UpdateInput{
			Role: strptr("superuser"),
		}, true)
		var verr *service.ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("invalid email rejected", func(t *testing.T) {
		_, err := svc.Update(ctx, alice.ID, service.UpdateInput{
			Email: strptr("nope"),
		}, false)
		var verr *service.ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		seedUser(t, svc, "Bob", "bob@example.com", "9000000002")
		_, err := svc.Update(ctx, alice.ID, service.UpdateInput{
			Email: strptr("bob@example.com"),
		}, false)
		require.ErrorIs(t, err, service.ErrDuplicateAccount)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := svc.Update(ctx, idx.New().String(), service.UpdateInput{
			City: strptr("Pune"),
		}, false)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestUserServiceDelete(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	alice := seedUser(t, svc, "Alice", "alice@example.com", "9000000001")

	require.NoError(t, svc.Delete(ctx, alice.ID))
	_, err := svc.Get(ctx, alice.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.ErrorIs(t, svc.Delete(ctx, alice.ID), store.ErrNotFound)
}

func TestBootstrapEnsureAdmin(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	boot := &service.BootstrapService{Store: svc.Store, Logger: testLogger()}

	t.Run("no email configured is a no-op", func(t *testing.T) {
		require.NoError(t, boot.EnsureAdmin(ctx, "", ""))
		empty, err := svc.Store.Users().IsEmpty(ctx)
		require.NoError(t, err)
		require.True(t, empty)
	})

	t.Run("seeds admin on empty store", func(t *testing.T) {
		require.NoError(t, boot.EnsureAdmin(ctx, "admin@example.com", "admin123"))

		admin, err := svc.Store.Users().GetByEmail(ctx, "admin@example.com")
		require.NoError(t, err)
		require.Equal(t, domain.RoleAdmin, admin.Role)
		require.NoError(t, cryptox.VerifyPassword("admin123", admin.PasswordHash))
	})

	t.Run("no-op on populated store", func(t *testing.T) {
		require.NoError(t, boot.EnsureAdmin(ctx, "second@example.com", "admin123"))
		_, err := svc.Store.Users().GetByEmail(ctx, "second@example.com")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}
