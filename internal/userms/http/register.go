package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/premmsharma122/user-management-system/internal/userms/service"
	"github.com/premmsharma122/user-management-system/pkg/httpx"
	"github.com/premmsharma122/user-management-system/pkg/slogx"
	"github.com/premmsharma122/user-management-system/pkg/userapi"
)

// RegisterHandler serves POST /api/auth/register.
type RegisterHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Register a new user
//	@Description	Creates a user account and returns the identity projection plus a fresh token pair.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		userapi.RegisterRequest	true	"Registration details"
//	@Success		201		{object}	userapi.AuthResponse	"user, accessToken, refreshToken, expiresIn"
//	@Failure		400		{object}	userapi.Error			"Validation failure"
//	@Failure		409		{object}	userapi.Error			"Email or phone already registered"
//	@Failure		500		{object}	userapi.Error			"Internal server error"
//	@Router			/api/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req userapi.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		userapi.NewValidationError("request body must be valid JSON").WriteError(w)
		return
	}

	user, pair, err := h.AuthService.Register(ctx, service.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Password:        req.Password,
		Address:         req.Address,
		State:           req.State,
		City:            req.City,
		Country:         req.Country,
		Pincode:         req.Pincode,
		ProfileImageURL: req.ProfileImageURL,
	})
	if err != nil {
		var ve *service.ValidationError
		switch {
		case errors.As(err, &ve):
			userapi.NewValidationError(validationMessage(ve)).WriteError(w)
		case errors.Is(err, service.ErrDuplicateAccount):
			userapi.ErrConflict.WriteError(w)
		default:
			log.Error("registration failed", "err", err)
			userapi.ErrServer.WriteError(w)
		}
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusCreated, authResponse(user, pair))
}
