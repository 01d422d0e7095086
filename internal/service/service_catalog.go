package service

import (
	"context"
	"fmt"

	"github.com/cpwcao/recipe-app-api/internal/logger"
	"github.com/cpwcao/recipe-app-api/internal/store"
	"github.com/cpwcao/recipe-app-api/models"
)

// tagService is the concrete implementation of TagService. The only business
// rule beyond owner scoping is that a name must not be empty.
type tagService struct {
	tagRepository store.TagRepository
	logger        *logger.Logger
}

// NewTagService constructs a new TagService wired to the given repository.
func NewTagService(tagRepository store.TagRepository, logger *logger.Logger) TagService {
	return &tagService{
		tagRepository: tagRepository,
		logger:        logger,
	}
}

// CreateTag creates a tag owned by userID.
func (s *tagService) CreateTag(ctx context.Context, userID int64, name string) (models.Tag, error) {
	if err := validateName(name); err != nil {
		return models.Tag{}, err
	}

	return s.tagRepository.CreateTag(ctx, models.Tag{Name: name, UserID: userID})
}

// ListTags returns all tags owned by userID, newest first.
func (s *tagService) ListTags(ctx context.Context, userID int64) ([]models.Tag, error) {
	return s.tagRepository.ListTags(ctx, userID)
}

// GetTag returns a single tag owned by userID.
func (s *tagService) GetTag(ctx context.Context, userID, tagID int64) (models.Tag, error) {
	return s.tagRepository.FindTagByID(ctx, userID, tagID)
}

// UpdateTag renames a tag owned by userID.
func (s *tagService) UpdateTag(ctx context.Context, userID, tagID int64, name string) (models.Tag, error) {
	if err := validateName(name); err != nil {
		return models.Tag{}, err
	}

	return s.tagRepository.UpdateTag(ctx, userID, tagID, name)
}

// DeleteTag removes a tag owned by userID; recipes referencing it only lose
// the association.
func (s *tagService) DeleteTag(ctx context.Context, userID, tagID int64) error {
	return s.tagRepository.DeleteTag(ctx, userID, tagID)
}

// ingredientService is the concrete implementation of IngredientService,
// symmetric to tagService.
type ingredientService struct {
	ingredientRepository store.IngredientRepository
	logger               *logger.Logger
}

// NewIngredientService constructs a new IngredientService wired to the given
// repository.
func NewIngredientService(ingredientRepository store.IngredientRepository, logger *logger.Logger) IngredientService {
	return &ingredientService{
		ingredientRepository: ingredientRepository,
		logger:               logger,
	}
}

// CreateIngredient creates an ingredient owned by userID.
func (s *ingredientService) CreateIngredient(ctx context.Context, userID int64, name string) (models.Ingredient, error) {
	if err := validateName(name); err != nil {
		return models.Ingredient{}, err
	}

	return s.ingredientRepository.CreateIngredient(ctx, models.Ingredient{Name: name, UserID: userID})
}

// ListIngredients returns all ingredients owned by userID, newest first.
func (s *ingredientService) ListIngredients(ctx context.Context, userID int64) ([]models.Ingredient, error) {
	return s.ingredientRepository.ListIngredients(ctx, userID)
}

// GetIngredient returns a single ingredient owned by userID.
func (s *ingredientService) GetIngredient(ctx context.Context, userID, ingredientID int64) (models.Ingredient, error) {
	return s.ingredientRepository.FindIngredientByID(ctx, userID, ingredientID)
}

// UpdateIngredient renames an ingredient owned by userID.
func (s *ingredientService) UpdateIngredient(ctx context.Context, userID, ingredientID int64, name string) (models.Ingredient, error) {
	if err := validateName(name); err != nil {
		return models.Ingredient{}, err
	}

	return s.ingredientRepository.UpdateIngredient(ctx, userID, ingredientID, name)
}

// DeleteIngredient removes an ingredient owned by userID; recipes referencing
// it only lose the association.
func (s *ingredientService) DeleteIngredient(ctx context.Context, userID, ingredientID int64) error {
	return s.ingredientRepository.DeleteIngredient(ctx, userID, ingredientID)
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, ErrValidationNoName)
	}
	return nil
}
