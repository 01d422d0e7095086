package http

import (
	"encoding/json"
	"net/http"

	"github.com/cpwcao/recipe-app-api/internal/logger"
	"github.com/cpwcao/recipe-app-api/internal/utils"
	"github.com/cpwcao/recipe-app-api/models"
)

// register creates a new user account and returns it with HTTP 201.
// The password never appears in the response.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Message: errInvalidJSONBody.Error()}, http.StatusBadRequest)
		return
	}

	registeredUser, err := h.services.AuthService.Register(ctx, request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, registeredUser, http.StatusCreated)
}

// token verifies the submitted credentials and returns the user's auth
// token, creating one on first login.
func (h *Handler) token(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Message: errInvalidJSONBody.Error()}, http.StatusBadRequest)
		return
	}

	token, err := h.services.AuthService.IssueToken(ctx, request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, token, http.StatusOK)
}

// profile returns the authenticated user's account.
func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Message: ErrEmptyAuthorizationHeader.Error()}, http.StatusUnauthorized)
		return
	}

	user, err := h.services.AuthService.Profile(ctx, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

// updateProfile applies a partial or full profile update. PUT and PATCH are
// handled identically: fields absent from the payload keep their value.
func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Message: ErrEmptyAuthorizationHeader.Error()}, http.StatusUnauthorized)
		return
	}

	var update models.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Message: errInvalidJSONBody.Error()}, http.StatusBadRequest)
		return
	}

	user, err := h.services.AuthService.UpdateProfile(ctx, userID, update)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

// deleteProfile removes the authenticated user's account together with its
// token and every owned object.
func (h *Handler) deleteProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Message: ErrEmptyAuthorizationHeader.Error()}, http.StatusUnauthorized)
		return
	}

	if err := h.services.AuthService.DeleteAccount(ctx, userID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
