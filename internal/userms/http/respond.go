package http

import (
	"github.com/premmsharma122/user-management-system/internal/userms/domain"
	"github.com/premmsharma122/user-management-system/internal/userms/service"
	"github.com/premmsharma122/user-management-system/pkg/tokenx"
	"github.com/premmsharma122/user-management-system/pkg/userapi"
)

// toAPIUser projects a domain user onto the wire type. The password
// hash stays behind.
func toAPIUser(u domain.User) userapi.User {
	return userapi.User{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Phone:           u.Phone,
		Role:            u.Role,
		Address:         u.Address,
		State:           u.State,
		City:            u.City,
		Country:         u.Country,
		Pincode:         u.Pincode,
		ProfileImageURL: u.ProfileImageURL,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

func authResponse(u domain.User, pair tokenx.Pair) userapi.AuthResponse {
	return userapi.AuthResponse{
		User:         toAPIUser(u),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}
}

// validationMessage flattens a service validation error into the wire
// message, e.g. "name must be at least 3 characters".
func validationMessage(ve *service.ValidationError) string {
	return ve.Field + " " + ve.Message
}
