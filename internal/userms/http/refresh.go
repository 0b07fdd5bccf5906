package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/premmsharma122/user-management-system/internal/userms/service"
	"github.com/premmsharma122/user-management-system/pkg/httpx"
	"github.com/premmsharma122/user-management-system/pkg/slogx"
	"github.com/premmsharma122/user-management-system/pkg/userapi"
)

// RefreshHandler serves POST /api/auth/refresh-token.
type RefreshHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Rotate a token pair
//	@Description	Exchanges a refresh token for a new access and refresh token pair. The new tokens
//	@Description	carry the account's current role, so promotions take effect at the next rotation.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		userapi.RefreshRequest	true	"Refresh token"
//	@Success		200		{object}	userapi.AuthResponse	"user, accessToken, refreshToken, expiresIn"
//	@Failure		401		{object}	userapi.Error			"No refresh token in the request"
//	@Failure		403		{object}	userapi.Error			"Refresh token invalid, expired or subject gone"
//	@Failure		500		{object}	userapi.Error			"Internal server error"
//	@Router			/api/auth/refresh-token [post].
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req userapi.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		userapi.NewValidationError("request body must be valid JSON").WriteError(w)
		return
	}

	// An absent token is a missing credential; a present-but-bad one is
	// rejected below with a 403.
	if strings.TrimSpace(req.RefreshToken) == "" {
		userapi.ErrMissingCredential.WriteError(w)
		return
	}

	user, pair, err := h.AuthService.Refresh(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefresh) {
			userapi.ErrRefreshRejected.WriteError(w)
			return
		}
		log.Error("refresh rotation failed", "err", err)
		userapi.ErrServer.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, authResponse(user, pair))
}
