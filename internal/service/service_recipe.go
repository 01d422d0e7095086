package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"

	"github.com/cpwcao/recipe-app-api/internal/logger"
	"github.com/cpwcao/recipe-app-api/internal/store"
	"github.com/cpwcao/recipe-app-api/internal/utils"
	"github.com/cpwcao/recipe-app-api/models"
)

// imageDir is the storage prefix for uploaded recipe images.
const imageDir = "uploads/recipe"

// sniffLen is how many leading bytes are inspected to detect the uploaded
// file's content type, matching http.DetectContentType's requirement.
const sniffLen = 512

// imageExtensions maps accepted sniffed content types to the file extension
// used in the generated storage path.
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// recipeService is the concrete implementation of RecipeService.
// It validates recipe payloads and orchestrates the recipe repository and
// the image store.
type recipeService struct {
	// recipeRepository is the data-access layer for recipes and their
	// association sets.
	recipeRepository store.RecipeRepository

	// imageStorage holds uploaded recipe images outside the database.
	imageStorage store.ImageStorage

	// uuidGenerator produces the random filenames for uploaded images.
	uuidGenerator *utils.UUIDGenerator

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewRecipeService constructs a new RecipeService wired to the given
// repository and image store.
func NewRecipeService(recipeRepository store.RecipeRepository, imageStorage store.ImageStorage, logger *logger.Logger) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		imageStorage:     imageStorage,
		uuidGenerator:    utils.NewUUIDGenerator(),
		logger:           logger,
	}
}

// CreateRecipe validates the payload and creates a recipe owned by userID
// together with its tag and ingredient associations.
//
// Title, TimeMinutes and Price are required on creation; Description, Link,
// Tags and Ingredients are optional. An association ID that does not resolve
// to an object owned by userID fails the whole creation with
// store.ErrRelatedItemsNotFound.
func (s *recipeService) CreateRecipe(ctx context.Context, userID int64, input models.RecipeInput) (models.Recipe, error) {
	log := logger.FromContext(ctx)

	if err := validateRecipeCreation(input); err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("invalid recipe payload")
		return models.Recipe{}, err
	}

	recipe := models.Recipe{
		UserID:      userID,
		Title:       *input.Title,
		TimeMinutes: *input.TimeMinutes,
		Price:       *input.Price,
	}
	if input.Description != nil {
		recipe.Description = *input.Description
	}
	if input.Link != nil {
		recipe.Link = *input.Link
	}

	return s.recipeRepository.CreateRecipe(ctx, recipe, idSet(input.Tags), idSet(input.Ingredients))
}

// ListRecipes returns the user's recipes, newest first, narrowed by the
// optional tag/ingredient filters.
func (s *recipeService) ListRecipes(ctx context.Context, userID int64, filter models.RecipeFilter) ([]models.Recipe, error) {
	return s.recipeRepository.ListRecipes(ctx, userID, filter)
}

// GetRecipe returns a single recipe with its full association sets.
func (s *recipeService) GetRecipe(ctx context.Context, userID, recipeID int64) (models.Recipe, error) {
	return s.recipeRepository.GetRecipe(ctx, userID, recipeID)
}

// UpdateRecipe applies the provided fields to the recipe. Fields absent from
// the payload keep their value; a provided Tags or Ingredients set replaces
// the current association set entirely.
func (s *recipeService) UpdateRecipe(ctx context.Context, userID, recipeID int64, input models.RecipeInput) (models.Recipe, error) {
	log := logger.FromContext(ctx)

	if err := validateRecipeUpdate(input); err != nil {
		log.Error().Err(err).Int64("recipe_id", recipeID).Msg("invalid recipe payload")
		return models.Recipe{}, err
	}

	update := models.RecipeUpdate{
		ID:          recipeID,
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		TimeMinutes: input.TimeMinutes,
		Price:       input.Price,
		Link:        input.Link,
		Tags:        input.Tags,
		Ingredients: input.Ingredients,
	}

	return s.recipeRepository.UpdateRecipe(ctx, update)
}

// DeleteRecipe removes the recipe. The referenced tags and ingredients stay.
func (s *recipeService) DeleteRecipe(ctx context.Context, userID, recipeID int64) error {
	return s.recipeRepository.DeleteRecipe(ctx, userID, recipeID)
}

// UploadImage attaches an uploaded image to the recipe.
//
// The file content is sniffed rather than trusted: the leading bytes must
// detect as a known image type or the upload fails with ErrInvalidImage.
// The image is stored under a fresh generated path
// ("uploads/recipe/<uuid><ext>"); on success the previous image, if any, is
// removed best-effort.
func (s *recipeService) UploadImage(ctx context.Context, userID, recipeID int64, filename string, data io.Reader) (models.Recipe, error) {
	log := logger.FromContext(ctx)

	// resolve ownership first so a bad recipe ID 404s before any upload work
	current, err := s.recipeRepository.GetRecipe(ctx, userID, recipeID)
	if err != nil {
		return models.Recipe{}, err
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(data, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		log.Err(err).Int64("recipe_id", recipeID).Msg("failed to read uploaded image")
		return models.Recipe{}, fmt.Errorf("reading uploaded image: %w", err)
	}
	head = head[:n]

	contentType := http.DetectContentType(head)
	extension, ok := imageExtensions[contentType]
	if !ok {
		log.Error().Str("content_type", contentType).Str("filename", filename).Msg("rejected non-image upload")
		return models.Recipe{}, ErrInvalidImage
	}

	imagePath := path.Join(imageDir, s.uuidGenerator.Generate()+extension)
	body := io.MultiReader(bytes.NewReader(head), data)
	if err := s.imageStorage.Save(ctx, imagePath, contentType, body); err != nil {
		return models.Recipe{}, err
	}

	updated, err := s.recipeRepository.SetRecipeImage(ctx, userID, recipeID, imagePath)
	if err != nil {
		// recipe vanished mid-upload, do not leak the stored file
		if cleanupErr := s.imageStorage.Delete(ctx, imagePath); cleanupErr != nil {
			log.Err(cleanupErr).Str("path", imagePath).Msg("failed to clean up orphaned image")
		}
		return models.Recipe{}, err
	}

	if current.ImagePath != "" && current.ImagePath != imagePath {
		if err := s.imageStorage.Delete(ctx, current.ImagePath); err != nil {
			log.Err(err).Str("path", current.ImagePath).Msg("failed to remove replaced image")
		}
	}

	return updated, nil
}

func validateRecipeCreation(input models.RecipeInput) error {
	if input.Title == nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, ErrValidationNoTitle)
	}
	if input.TimeMinutes == nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, ErrValidationNoTimeMinutes)
	}
	if input.Price == nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, ErrValidationNoPrice)
	}

	return validateRecipeUpdate(input)
}

func validateRecipeUpdate(input models.RecipeInput) error {
	if input.Title != nil && *input.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, ErrValidationNoTitle)
	}
	if input.TimeMinutes != nil && *input.TimeMinutes < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, ErrValidationBadTimeMinutes)
	}
	if input.Price != nil && (*input.Price < 0 || *input.Price > models.MaxPrice) {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, ErrValidationBadPrice)
	}

	return nil
}

func idSet(ids *[]int64) []int64 {
	if ids == nil {
		return nil
	}
	return *ids
}
