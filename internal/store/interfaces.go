package store

import (
	"context"
	"io"

	"github.com/cpwcao/recipe-app-api/models"
)

// UserRepository persists and retrieves user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	UpdateUser(ctx context.Context, patch models.UserPatch) (models.User, error)
	DeleteUser(ctx context.Context, userID int64) error
}

// TokenRepository manages opaque auth tokens bound one-to-one to users.
type TokenRepository interface {
	// GetOrCreateToken stores candidateKey for the user unless a token
	// already exists, in which case the existing one is returned unchanged.
	GetOrCreateToken(ctx context.Context, userID int64, candidateKey string) (models.Token, error)

	// FindUserIDByKey resolves a bearer key to its owning user.
	FindUserIDByKey(ctx context.Context, key string) (int64, error)
}

// TagRepository persists user-scoped tags. All reads and writes are filtered
// by the owning user; rows owned by other users behave as absent.
type TagRepository interface {
	CreateTag(ctx context.Context, tag models.Tag) (models.Tag, error)
	ListTags(ctx context.Context, userID int64) ([]models.Tag, error)
	FindTagByID(ctx context.Context, userID, tagID int64) (models.Tag, error)
	UpdateTag(ctx context.Context, userID, tagID int64, name string) (models.Tag, error)
	DeleteTag(ctx context.Context, userID, tagID int64) error
}

// IngredientRepository persists user-scoped ingredients, symmetric to
// [TagRepository].
type IngredientRepository interface {
	CreateIngredient(ctx context.Context, ingredient models.Ingredient) (models.Ingredient, error)
	ListIngredients(ctx context.Context, userID int64) ([]models.Ingredient, error)
	FindIngredientByID(ctx context.Context, userID, ingredientID int64) (models.Ingredient, error)
	UpdateIngredient(ctx context.Context, userID, ingredientID int64, name string) (models.Ingredient, error)
	DeleteIngredient(ctx context.Context, userID, ingredientID int64) error
}

// RecipeRepository persists recipes together with their tag and ingredient
// association sets. Creation and set replacement are transactional: either
// the recipe row and all association rows commit together, or nothing does.
type RecipeRepository interface {
	CreateRecipe(ctx context.Context, recipe models.Recipe, tagIDs, ingredientIDs []int64) (models.Recipe, error)
	ListRecipes(ctx context.Context, userID int64, filter models.RecipeFilter) ([]models.Recipe, error)
	GetRecipe(ctx context.Context, userID, recipeID int64) (models.Recipe, error)
	UpdateRecipe(ctx context.Context, update models.RecipeUpdate) (models.Recipe, error)
	DeleteRecipe(ctx context.Context, userID, recipeID int64) error
	SetRecipeImage(ctx context.Context, userID, recipeID int64, imagePath string) (models.Recipe, error)
}

// ImageStorage persists uploaded recipe images outside the relational
// database, keyed by a storage path generated at upload time.
type ImageStorage interface {
	Save(ctx context.Context, path string, contentType string, data io.Reader) error
	Delete(ctx context.Context, path string) error
}
