package http

import (
	"encoding/json"
	"net/http"

	"github.com/cpwcao/recipe-app-api/internal/logger"
	"github.com/cpwcao/recipe-app-api/internal/store"
	"github.com/cpwcao/recipe-app-api/internal/utils"
	"github.com/cpwcao/recipe-app-api/models"
)

// listIngredients returns the caller's ingredients, newest first.
func (h *Handler) listIngredients(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Message: ErrEmptyAuthorizationHeader.Error()}, http.StatusUnauthorized)
		return
	}

	ingredients, err := h.services.IngredientService.ListIngredients(ctx, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, ingredients, http.StatusOK)
}

// createIngredient creates an ingredient owned by the caller and returns it
// with HTTP 201.
func (h *Handler) createIngredient(w http.ResponseWriter, r *http.Request) {
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

	ingredient, err := h.services.IngredientService.CreateIngredient(ctx, userID, input.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, ingredient, http.StatusCreated)
}

// getIngredient returns one ingredient.
func (h *Handler) getIngredient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Message: ErrEmptyAuthorizationHeader.Error()}, http.StatusUnauthorized)
		return
	}

	ingredientID, err := pathID(r, "ingredientID")
	if err != nil {
		writeError(w, r, store.ErrIngredientNotFound)
		return
	}

	ingredient, err := h.services.IngredientService.GetIngredient(ctx, userID, ingredientID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, ingredient, http.StatusOK)
}

// updateIngredient renames one ingredient.
func (h *Handler) updateIngredient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Message: ErrEmptyAuthorizationHeader.Error()}, http.StatusUnauthorized)
		return
	}

	ingredientID, err := pathID(r, "ingredientID")
	if err != nil {
		writeError(w, r, store.ErrIngredientNotFound)
		return
	}

	var input models.NameInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Message: errInvalidJSONBody.Error()}, http.StatusBadRequest)
		return
	}

	ingredient, err := h.services.IngredientService.UpdateIngredient(ctx, userID, ingredientID, input.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, ingredient, http.StatusOK)
}

// deleteIngredient removes one ingredient; recipes referencing it only lose
// the association.
func (h *Handler) deleteIngredient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Message: ErrEmptyAuthorizationHeader.Error()}, http.StatusUnauthorized)
		return
	}

	ingredientID, err := pathID(r, "ingredientID")
	if err != nil {
		writeError(w, r, store.ErrIngredientNotFound)
		return
	}

	if err := h.services.IngredientService.DeleteIngredient(ctx, userID, ingredientID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
