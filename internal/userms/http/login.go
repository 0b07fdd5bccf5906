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

// LoginHandler serves POST /api/auth/login.
type LoginHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Log in
//	@Description	Authenticates with an email or phone number plus password and returns a fresh token pair.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		userapi.LoginRequest	true	"Login credentials"
//	@Success		200		{object}	userapi.AuthResponse	"user, accessToken, refreshToken, expiresIn"
//	@Failure		401		{object}	userapi.Error			"Unknown account or wrong password"
//	@Failure		500		{object}	userapi.Error			"Internal server error"
//	@Router			/api/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req userapi.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		userapi.NewValidationError("request body must be valid JSON").WriteError(w)
		return
	}

	user, pair, err := h.AuthService.Login(ctx, req.LoginID, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			userapi.ErrInvalidCredential.WriteError(w)
			return
		}
		log.Error("login failed", "err", err)
		userapi.ErrServer.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, authResponse(user, pair))
}
