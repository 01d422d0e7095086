package http

import (
	"encoding/json"
	"net/http"

	"github.com/cpwcao/recipe-app-api/internal/logger"
	"github.com/cpwcao/recipe-app-api/internal/store"
	"github.com/cpwcao/recipe-app-api/internal/utils"
	"github.com/cpwcao/recipe-app-api/models"
)

// listTags returns the caller's tags, newest first.
func (h *Handler) listTags(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Message: ErrEmptyAuthorizationHeader.Error()}, http.StatusUnauthorized)
		return
	}

	tags, err := h.services.TagService.ListTags(ctx, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, tags, http.StatusOK)
}

// createTag creates a tag owned by the caller and returns it with HTTP 201.
func (h *Handler) createTag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Message: ErrEmptyAuthorizationHeader.Error()}, http.StatusUnauthorized)
		return
	}

	var input models.NameInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Message: errInvalidJSONBody.Error()}, http.StatusBadRequest)
		return
	}

	tag, err := h.services.TagService.CreateTag(ctx, userID, input.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, tag, http.StatusCreated)
}

// getTag returns one tag.
func (h *Handler) getTag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Message: ErrEmptyAuthorizationHeader.Error()}, http.StatusUnauthorized)
		return
	}

	tagID, err := pathID(r, "tagID")
	if err != nil {
		writeError(w, r, store.ErrTagNotFound)
		return
	}

	tag, err := h.services.TagService.GetTag(ctx, userID, tagID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, tag, http.StatusOK)
}

// updateTag renames one tag.
func (h *Handler) updateTag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Message: ErrEmptyAuthorizationHeader.Error()}, http.StatusUnauthorized)
		return
	}

	tagID, err := pathID(r, "tagID")
	if err != nil {
		writeError(w, r, store.ErrTagNotFound)
		return
	}

	var input models.NameInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Message: errInvalidJSONBody.Error()}, http.StatusBadRequest)
		return
	}

	tag, err := h.services.TagService.UpdateTag(ctx, userID, tagID, input.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, tag, http.StatusOK)
}

// deleteTag removes one tag; recipes referencing it only lose the
// association.
func (h *Handler) deleteTag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Message: ErrEmptyAuthorizationHeader.Error()}, http.StatusUnauthorized)
		return
	}

	tagID, err := pathID(r, "tagID")
	if err != nil {
		writeError(w, r, store.ErrTagNotFound)
		return
	}

	if err := h.services.TagService.DeleteTag(ctx, userID, tagID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
