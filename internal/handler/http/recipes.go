package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/cpwcao/recipe-app-api/internal/logger"
	"github.com/cpwcao/recipe-app-api/internal/store"
	"github.com/cpwcao/recipe-app-api/internal/utils"
	"github.com/cpwcao/recipe-app-api/models"
)

// maxImageUploadBytes caps the multipart form held in memory during a recipe
// image upload; larger files spill to temporary storage.
const maxImageUploadBytes = 32 << 20

// listRecipes returns the caller's recipes, newest first, optionally
// filtered by comma-separated "tags" and "ingredients" ID query parameters.
func (h *Handler) listRecipes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Message: ErrEmptyAuthorizationHeader.Error()}, http.StatusUnauthorized)
		return
	}

	filter, err := parseRecipeFilter(r)
	if err != nil {
		utils.WriteJSON(w, models.ErrorResponse{Message: err.Error()}, http.StatusBadRequest)
		return
	}

	recipes, err := h.services.RecipeService.ListRecipes(ctx, userID, filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	items := make([]models.RecipeListItem, 0, len(recipes))
	for _, recipe := range recipes {
		items = append(items, models.NewRecipeListItem(recipe))
	}

	utils.WriteJSON(w, items, http.StatusOK)
}

// createRecipe creates a recipe owned by the caller, together with its tag
// and ingredient associations, and returns the detail view with HTTP 201.
func (h *Handler) createRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Message: ErrEmptyAuthorizationHeader.Error()}, http.StatusUnauthorized)
		return
	}

	var input models.RecipeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Message: errInvalidJSONBody.Error()}, http.StatusBadRequest)
		return
	}

	recipe, err := h.services.RecipeService.CreateRecipe(ctx, userID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.NewRecipeDetail(recipe), http.StatusCreated)
}

// getRecipe returns the detail view of one recipe.
func (h *Handler) getRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Message: ErrEmptyAuthorizationHeader.Error()}, http.StatusUnauthorized)
		return
	}

	recipeID, err := pathID(r, "recipeID")
	if err != nil {
		writeError(w, r, store.ErrRecipeNotFound)
		return
	}

	recipe, err := h.services.RecipeService.GetRecipe(ctx, userID, recipeID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.NewRecipeDetail(recipe), http.StatusOK)
}

// updateRecipe applies a partial or full update to one recipe. PUT and PATCH
// are handled identically: fields absent from the payload keep their value,
// and a provided tag or ingredient set replaces the current one.
func (h *Handler) updateRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Message: ErrEmptyAuthorizationHeader.Error()}, http.StatusUnauthorized)
		return
	}

	recipeID, err := pathID(r, "recipeID")
	if err != nil {
		writeError(w, r, store.ErrRecipeNotFound)
		return
	}

	var input models.RecipeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Message: errInvalidJSONBody.Error()}, http.StatusBadRequest)
		return
	}

	recipe, err := h.services.RecipeService.UpdateRecipe(ctx, userID, recipeID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.NewRecipeDetail(recipe), http.StatusOK)
}

// deleteRecipe removes one recipe; its tags and ingredients stay.
func (h *Handler) deleteRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Message: ErrEmptyAuthorizationHeader.Error()}, http.StatusUnauthorized)
		return
	}

	recipeID, err := pathID(r, "recipeID")
	if err != nil {
		writeError(w, r, store.ErrRecipeNotFound)
		return
	}

	if err := h.services.RecipeService.DeleteRecipe(ctx, userID, recipeID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// uploadRecipeImage attaches the multipart "image" file to one recipe and
// returns the recipe ID with the new image path.
func (h *Handler) uploadRecipeImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Message: ErrEmptyAuthorizationHeader.Error()}, http.StatusUnauthorized)
		return
	}

	recipeID, err := pathID(r, "recipeID")
	if err != nil {
		writeError(w, r, store.ErrRecipeNotFound)
		return
	}

	if err := r.ParseMultipartForm(maxImageUploadBytes); err != nil {
		log.Err(err).Msg("invalid multipart form")
		utils.WriteJSON(w, models.ErrorResponse{Message: "invalid multipart form"}, http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.WriteJSON(w, models.ErrorResponse{Message: "no image file provided"}, http.StatusBadRequest)
		return
	}
	defer file.Close()

	recipe, err := h.services.RecipeService.UploadImage(ctx, userID, recipeID, header.Filename, file)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.ImageUploadResponse{ID: recipe.ID, Image: recipe.ImagePath}, http.StatusOK)
}

// pathID parses a numeric URL parameter. Non-numeric identifiers are treated
// as pointing at a nonexistent resource, not as malformed requests.
func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

// parseRecipeFilter reads the comma-separated "tags" and "ingredients" query
// parameters into a [models.RecipeFilter].
func parseRecipeFilter(r *http.Request) (models.RecipeFilter, error) {
	var filter models.RecipeFilter

	tagIDs, err := parseIDList(r.URL.Query().Get("tags"))
	if err != nil {
		return models.RecipeFilter{}, err
	}
	ingredientIDs, err := parseIDList(r.URL.Query().Get("ingredients"))
	if err != nil {
		return models.RecipeFilter{}, err
	}

	filter.TagIDs = tagIDs
	filter.IngredientIDs = ingredientIDs
	return filter, nil
}

func parseIDList(raw string) ([]int64, error) {
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, errInvalidIDList
		}
		ids = append(ids, id)
	}

	return ids, nil
}
