package service

import (
	"context"
	"errors"
	"strings"

	"github.com/premmsharma122/user-management-system/internal/userms/domain"
	"github.com/premmsharma122/user-management-system/internal/userms/store"
	"github.com/premmsharma122/user-management-system/pkg/cryptox"
	"github.com/premmsharma122/user-management-system/pkg/slogx"
)

// UserService owns user reads, searches and mutations.
type UserService struct {
	Store store.Store
}

// Get fetches a user by id.
func (s *UserService) Get(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetByID(ctx, userID)
}

// List returns users matching the keyword against name, email, state
// and city. An empty keyword returns everyone.
func (s *UserService) List(ctx context.Context, keyword string) ([]domain.User, error) {
	return s.Store.Users().Search(ctx, strings.TrimSpace(keyword))
}

// UpdateInput is a partial update: nil fields keep their current value.
type UpdateInput struct {
	Name            *string
	Email           *string
	Phone           *string
	Password        *string
	Address         *string
	State           *string
	City            *string
	Country         *string
	Pincode         *string
	ProfileImageURL *string
	Role            *string
}

// Update applies a partial update to a user. Role changes are only
// honoured when allowRoleChange is set (i.e. the caller is an admin);
// otherwise the field is ignored, matching how self-service profile
// edits behave.
func (s *UserService) Update(ctx context.Context, userID string, in UpdateInput, allowRoleChange bool) (domain.User, error) {
	user, err := s.Store.Users().GetByID(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}

	if in.Name != nil {
		if err := validateName(*in.Name); err != nil {
			return domain.User{}, err
		}
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		if err := validateEmail(*in.Email); err != nil {
			return domain.User{}, err
		}
		user.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.Phone != nil {
		if err := validatePhone(*in.Phone); err != nil {
			return domain.User{}, err
		}
		user.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Password != nil {
		if err := validatePassword(*in.Password); err != nil {
			return domain.User{}, err
		}
		hash, err := cryptox.HashPassword(*in.Password)
		if err != nil {
			return domain.User{}, err
		}
		user.PasswordHash = hash
	}
	if in.Pincode != nil {
		if err := validatePincode(*in.Pincode); err != nil {
			return domain.User{}, err
		}
		user.Pincode = *in.Pincode
	}
	if in.Address != nil {
		user.Address = *in.Address
	}
	if in.State != nil {
		user.State = *in.State
	}
	if in.City != nil {
		user.City = *in.City
	}
	if in.Country != nil {
		user.Country = *in.Country
	}
	if in.ProfileImageURL != nil {
		user.ProfileImageURL = *in.ProfileImageURL
	}
	if in.Role != nil && allowRoleChange {
		role := *in.Role
		if role != domain.RoleUser && role != domain.RoleAdmin {
			return domain.User{}, &ValidationError{Field: "role", Message: "must be user or admin"}
		}
		user.Role = role
	}

	if err := s.Store.Users().Update(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrDuplicateAccount
		}
		return domain.User{}, err
	}

	return s.Store.Users().GetByID(ctx, userID)
}

// Delete removes a user account.
func (s *UserService) Delete(ctx context.Context, userID string) error {
	if err := s.Store.Users().Delete(ctx, userID); err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("user deleted", "user_id", userID)
	return nil
}
