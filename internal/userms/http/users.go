package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/premmsharma122/user-management-system/internal/userms/service"
	"github.com/premmsharma122/user-management-system/internal/userms/store"
	"github.com/premmsharma122/user-management-system/pkg/httpx"
	"github.com/premmsharma122/user-management-system/pkg/slogx"
	"github.com/premmsharma122/user-management-system/pkg/userapi"
)

// UsersHandler serves the /api/users endpoints.
type UsersHandler struct {
	UserService *service.UserService
}

// HandleList godoc
//
//	@Summary		List users
//	@Description	Lists users, optionally filtered by a keyword matched against name, email, state and city. Admin only.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Param			keyword	query		string			false	"Search keyword"
//	@Success		200		{array}		userapi.User	"Matching users"
//	@Failure		401		{object}	userapi.Error	"Invalid or missing access token"
//	@Failure		403		{object}	userapi.Error	"Caller is not an admin"
//	@Router			/api/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	users, err := h.UserService.List(ctx, r.URL.Query().Get("keyword"))
	if err != nil {
		log.Error("user listing failed", "err", err)
		userapi.ErrServer.WriteError(w)
		return
	}

	out := make([]userapi.User, 0, len(users))
	for _, u := range users {
		out = append(out, toAPIUser(u))
	}

	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet godoc
//
//	@Summary		Get a user
//	@Description	Fetches a user by id. Non-admins can only fetch themselves.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string			true	"User ID"
//	@Success		200	{object}	userapi.User	"The user"
//	@Failure		401	{object}	userapi.Error	"Invalid or missing access token"
//	@Failure		403	{object}	userapi.Error	"Caller may not read this user"
//	@Failure		404	{object}	userapi.Error	"No such user"
//	@Router			/api/users/{id} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	userID := r.PathValue("id")

	if !httpx.CallerCanAccess(ctx, userID) {
		userapi.ErrForbidden.WriteError(w)
		return
	}

	user, err := h.UserService.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			userapi.ErrNotFound.WriteError(w)
			return
		}
		log.Error("user lookup failed", "user_id", userID, "err", err)
		userapi.ErrServer.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toAPIUser(user))
}

// HandleUpdate godoc
//
//	@Summary		Update a user
//	@Description	Applies a partial update. Self or admin; role changes are honoured only for admin callers.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"User ID"
//	@Param			request	body		userapi.UpdateUserRequest	true	"Fields to update"
//	@Success		200		{object}	userapi.User				"The updated user"
//	@Failure		400		{object}	userapi.Error				"Validation failure"
//	@Failure		401		{object}	userapi.Error				"Invalid or missing access token"
//	@Failure		403		{object}	userapi.Error				"Caller may not edit this user"
//	@Failure		404		{object}	userapi.Error				"No such user"
//	@Failure		409		{object}	userapi.Error				"Email or phone already taken"
//	@Router			/api/users/{id} [put].
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	userID := r.PathValue("id")

	if !httpx.CallerCanAccess(ctx, userID) {
		userapi.ErrForbidden.WriteError(w)
		return
	}

	var req userapi.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		userapi.NewValidationError("request body must be valid JSON").WriteError(w)
		return
	}

	allowRoleChange := httpx.CallerRole(ctx) == httpx.RoleAdmin
	user, err := h.UserService.Update(ctx, userID, service.UpdateInput{
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
		Role:            req.Role,
	}, allowRoleChange)
	if err != nil {
		var ve *service.ValidationError
		switch {
		case errors.As(err, &ve):
			userapi.NewValidationError(validationMessage(ve)).WriteError(w)
		case errors.Is(err, service.ErrDuplicateAccount):
			userapi.ErrConflict.WriteError(w)
		case errors.Is(err, store.ErrNotFound):
			userapi.ErrNotFound.WriteError(w)
		default:
			log.Error("user update failed", "user_id", userID, "err", err)
			userapi.ErrServer.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toAPIUser(user))
}

// HandleDelete godoc
//
//	@Summary		Delete a user
//	@Description	Removes a user account. Admin only. Outstanding tokens for the account
//	@Description	stop resolving on their next use.
//	@Tags			Users
//	@Security		BearerAuth
//	@Param			id	path	string	true	"User ID"
//	@Success		204	"Deleted"
//	@Failure		401	{object}	userapi.Error	"Invalid or missing access token"
//	@Failure		403	{object}	userapi.Error	"Caller is not an admin"
//	@Failure		404	{object}	userapi.Error	"No such user"
//	@Router			/api/users/{id} [delete].
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	userID := r.PathValue("id")

	if err := h.UserService.Delete(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			userapi.ErrNotFound.WriteError(w)
			return
		}
		log.Error("user deletion failed", "user_id", userID, "err", err)
		userapi.ErrServer.WriteError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
