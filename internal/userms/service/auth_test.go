package service_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/premmsharma122/user-management-system/internal/userms/domain"
	"github.com/premmsharma122/user-management-system/internal/userms/service"
	"github.com/premmsharma122/user-management-system/internal/userms/store"
	"github.com/premmsharma122/user-management-system/internal/userms/store/drivers/sqlite"
	"github.com/premmsharma122/user-management-system/pkg/httpx"
	"github.com/premmsharma122/user-management-system/pkg/tokenx"
)

func newAuthService(t *testing.T) (*service.AuthService, store.Store) {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "userms.db"))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	codec := tokenx.NewCodec([]byte("test-secret"), "userms-test")
	return &service.AuthService{
		Store:  st,
		Issuer: tokenx.NewIssuer(codec, time.Hour, 7*24*time.Hour),
	}, st
}

func validRegistration() service.RegisterInput {
	return service.RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Phone:    "9876543210",
		Password: "secret123",
		State:    "Maharashtra",
		City:     "Mumbai",
		Country:  "India",
		Pincode:  "400001",
	}
}

func TestRegister(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	user, pair, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, domain.RoleUser, user.Role)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	// Password hash never equals the plaintext and verifies.
	require.NotEqual(t, "secret123", user.PasswordHash)

	claims, err := svc.Issuer.Codec.Verify(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.Subject)
	require.Equal(t, domain.RoleUser, claims.Role)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*service.RegisterInput)
	}{
		{"short name", func(in *service.RegisterInput) { in.Name = "Al" }},
		{"numeric name", func(in *service.RegisterInput) { in.Name = "Alice99" }},
		{"bad email", func(in *service.RegisterInput) { in.Email = "not-an-email" }},
		{"short phone", func(in *service.RegisterInput) { in.Phone = "12345" }},
		{"alpha phone", func(in *service.RegisterInput) { in.Phone = "98765aaa10" }},
		{"short password", func(in *service.RegisterInput) { in.Password = "a1" }},
		{"digitless password", func(in *service.RegisterInput) { in.Password = "secretsecret" }},
		{"short pincode", func(in *service.RegisterInput) { in.Pincode = "12" }},
		{"missing pincode", func(in *service.RegisterInput) { in.Pincode = "" }},
		{"missing state", func(in *service.RegisterInput) { in.State = " " }},
		{"missing city", func(in *service.RegisterInput) { in.City = "" }},
		{"missing country", func(in *service.RegisterInput) { in.Country = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validRegistration()
			tt.mutate(&in)

			_, _, err := svc.Register(ctx, in)
			var verr *service.ValidationError
			require.ErrorAs(t, err, &verr)
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	t.Run("same email", func(t *testing.T) {
		in := validRegistration()
		in.Phone = "9000000001"
		_, _, err := svc.Register(ctx, in)
		require.ErrorIs(t, err, service.ErrDuplicateAccount)
	})

	t.Run("same phone", func(t *testing.T) {
		in := validRegistration()
		in.Email = "other@example.com"
		_, _, err := svc.Register(ctx, in)
		require.ErrorIs(t, err, service.ErrDuplicateAccount)
	})
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	registered, _, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	t.Run("by email", func(t *testing.T) {
		user, pair, err := svc.Login(ctx, "alice@example.com", "secret123")
		require.NoError(t, err)
		require.Equal(t, registered.ID, user.ID)
		require.NotEmpty(t, pair.AccessToken)
	})

	t.Run("by email case-insensitive", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "Alice@Example.COM", "secret123")
		require.NoError(t, err)
	})

	t.Run("by phone", func(t *testing.T) {
		user, _, err := svc.Login(ctx, "9876543210", "secret123")
		require.NoError(t, err)
		require.Equal(t, registered.ID, user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "alice@example.com", "wrong1234")
		require.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("unknown account", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "nobody@example.com", "secret123")
		require.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("empty credentials", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "", "")
		require.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestRefreshRotation(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	registered, pair, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	user, rotated, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, registered.ID, user.ID)
	require.NotEmpty(t, rotated.AccessToken)
	require.NotEmpty(t, rotated.RefreshToken)

	// Both halves of the pair are fresh and verifiable.
	access, err := svc.Issuer.Codec.Verify(rotated.AccessToken)
	require.NoError(t, err)
	require.Equal(t, registered.ID, access.Subject)
	_, err = svc.Issuer.Codec.Verify(rotated.RefreshToken)
	require.NoError(t, err)
}

func TestRefreshRejectsBadTokens(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, pair, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	t.Run("garbage", func(t *testing.T) {
		_, _, err := svc.Refresh(ctx, "not-a-token")
		require.ErrorIs(t, err, service.ErrInvalidRefresh)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := tokenx.NewCodec([]byte("other-secret"), "userms-test")
		forged, err := other.Issue("someone", domain.RoleUser, time.Hour)
		require.NoError(t, err)

		_, _, err = svc.Refresh(ctx, forged)
		require.ErrorIs(t, err, service.ErrInvalidRefresh)
	})

	t.Run("expired", func(t *testing.T) {
		past := time.Now().Add(-30 * 24 * time.Hour)
		expired := tokenx.NewCodec([]byte("test-secret"), "userms-test").
			WithClock(func() time.Time { return past })
		token, err := expired.Issue("someone", domain.RoleUser, time.Hour)
		require.NoError(t, err)

		_, _, err = svc.Refresh(ctx, token)
		require.ErrorIs(t, err, service.ErrInvalidRefresh)
	})

	t.Run("deleted subject", func(t *testing.T) {
		user, _, err := svc.Refresh(ctx, pair.RefreshToken)
		require.NoError(t, err)

		require.NoError(t, svc.Store.Users().Delete(ctx, user.ID))

		_, _, err = svc.Refresh(ctx, pair.RefreshToken)
		require.ErrorIs(t, err, service.ErrInvalidRefresh)
	})
}

func TestRefreshCarriesCurrentRole(t *testing.T) {
	svc, st := newAuthService(t)
	ctx := context.Background()

	registered, pair, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	// Promote the user behind the token's back.
	user, err := st.Users().GetByID(ctx, registered.ID)
	require.NoError(t, err)
	user.Role = domain.RoleAdmin
	require.NoError(t, st.Users().Update(ctx, user))

	_, rotated, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)

	claims, err := svc.Issuer.Codec.Verify(rotated.AccessToken)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, claims.Role, "rotation must pick up the live role")
}

func TestResolveIdentity(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	registered, _, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	identity, err := svc.ResolveIdentity(ctx, registered.ID)
	require.NoError(t, err)
	require.Equal(t, registered.ID, identity.ID)
	require.Equal(t, domain.RoleUser, identity.Role)

	// An unknown subject maps onto the middleware's sentinel so the
	// caller gets 401; any other store error surfaces as-is and the
	// middleware answers 500 instead.
	_, err = svc.ResolveIdentity(ctx, "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV")
	require.ErrorIs(t, err, httpx.ErrUnknownSubject)
}
