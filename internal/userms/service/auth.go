package service

import (
	"context"
	"errors"
	"strings"

	"github.com/premmsharma122/user-management-system/internal/userms/domain"
	"github.com/premmsharma122/user-management-system/internal/userms/store"
	"github.com/premmsharma122/user-management-system/pkg/cryptox"
	"github.com/premmsharma122/user-management-system/pkg/httpx"
	"github.com/premmsharma122/user-management-system/pkg/idx"
	"github.com/premmsharma122/user-management-system/pkg/slogx"
	"github.com/premmsharma122/user-management-system/pkg/tokenx"
)

// AuthService owns registration, login and refresh rotation. It is the
// only service that mints token pairs.
type AuthService struct {
	Store  store.Store
	Issuer *tokenx.Issuer
}

type RegisterInput struct {
	Name            string
	Email           string
	Phone           string
	Password        string
	Address         string
	State           string
	City            string
	Country         string
	Pincode         string
	ProfileImageURL string
}

func (in RegisterInput) validate() error {
	if err := validateName(in.Name); err != nil {
		return err
	}
	if err := validateEmail(in.Email); err != nil {
		return err
	}
	if err := validatePhone(in.Phone); err != nil {
		return err
	}
	if err := validatePassword(in.Password); err != nil {
		return err
	}
	if err := validatePincode(in.Pincode); err != nil {
		return err
	}
	for field, value := range map[string]string{
		"state":   in.State,
		"city":    in.City,
		"country": in.Country,
	} {
		if err := validateRequired(field, value); err != nil {
			return err
		}
	}
	return nil
}

// Register creates a new user account and logs it in, returning the
// stored user alongside its first token pair. New accounts always get
// the plain user role; promotion is an admin operation.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (domain.User, tokenx.Pair, error) {
	if err := in.validate(); err != nil {
		return domain.User{}, tokenx.Pair{}, err
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, tokenx.Pair{}, err
	}

	user := domain.User{
		ID:              idx.New().String(),
		Name:            strings.TrimSpace(in.Name),
		Email:           strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:           strings.TrimSpace(in.Phone),
		PasswordHash:    hash,
		Role:            domain.RoleUser,
		Address:         in.Address,
		State:           in.State,
		City:            in.City,
		Country:         in.Country,
		Pincode:         in.Pincode,
		ProfileImageURL: in.ProfileImageURL,
	}

	if err := s.Store.Users().Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, tokenx.Pair{}, ErrDuplicateAccount
		}
		return domain.User{}, tokenx.Pair{}, err
	}

	// Re-read so timestamps come from the database.
	user, err = s.Store.Users().GetByID(ctx, user.ID)
	if err != nil {
		return domain.User{}, tokenx.Pair{}, err
	}

	pair, err := s.Issuer.IssuePair(user.ID, user.Role)
	if err != nil {
		return domain.User{}, tokenx.Pair{}, err
	}

	slogx.FromContext(ctx).Info("user registered", "user_id", user.ID)
	return user, pair, nil
}

// Login authenticates by email or phone. The loginID is matched against
// email when it contains an '@', otherwise against phone.
func (s *AuthService) Login(ctx context.Context, loginID, password string) (domain.User, tokenx.Pair, error) {
	loginID = strings.TrimSpace(loginID)
	if loginID == "" || password == "" {
		return domain.User{}, tokenx.Pair{}, ErrInvalidCredentials
	}

	var (
		user domain.User
		err  error
	)
	if strings.Contains(loginID, "@") {
		user, err = s.Store.Users().GetByEmail(ctx, strings.ToLower(loginID))
	} else {
		user, err = s.Store.Users().GetByPhone(ctx, loginID)
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, tokenx.Pair{}, ErrInvalidCredentials
		}
		return domain.User{}, tokenx.Pair{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		slogx.FromContext(ctx).Info("login failed", "user_id", user.ID)
		return domain.User{}, tokenx.Pair{}, ErrInvalidCredentials
	}

	pair, err := s.Issuer.IssuePair(user.ID, user.Role)
	if err != nil {
		return domain.User{}, tokenx.Pair{}, err
	}

	return user, pair, nil
}

// Refresh verifies a refresh token and rotates the whole pair. The new
// tokens carry the user's current role, re-resolved from the store, so
// a promotion or demotion takes effect at the next rotation.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (domain.User, tokenx.Pair, error) {
	claims, err := s.Issuer.Codec.Verify(refreshToken)
	if err != nil {
		slogx.FromContext(ctx).Warn("refresh token rejected", "err", err)
		return domain.User{}, tokenx.Pair{}, ErrInvalidRefresh
	}

	user, err := s.Store.Users().GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, tokenx.Pair{}, ErrInvalidRefresh
		}
		return domain.User{}, tokenx.Pair{}, err
	}

	pair, err := s.Issuer.IssuePair(user.ID, user.Role)
	if err != nil {
		return domain.User{}, tokenx.Pair{}, err
	}

	return user, pair, nil
}

// ResolveIdentity is the middleware hook: it maps a token subject to
// the live identity. A deleted account reports httpx.ErrUnknownSubject;
// a store failure passes through so the middleware can answer 500
// instead of rejecting a credential that may still be good.
func (s *AuthService) ResolveIdentity(ctx context.Context, subject string) (httpx.Identity, error) {
	user, err := s.Store.Users().GetByID(ctx, subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return httpx.Identity{}, httpx.ErrUnknownSubject
		}
		return httpx.Identity{}, err
	}
	return httpx.Identity{ID: user.ID, Role: user.Role}, nil
}
