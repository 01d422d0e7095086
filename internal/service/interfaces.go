package service

import (
	"context"
	"io"

	"github.com/cpwcao/recipe-app-api/models"
)

// AuthService covers the account lifecycle: registration, token issuance,
// bearer-key authentication and profile management.
type AuthService interface {
	// Register creates a new active account from the given request.
	Register(ctx context.Context, request models.RegisterRequest) (models.User, error)

	// IssueToken verifies the credentials and returns the user's auth token,
	// creating one when the user has none yet.
	IssueToken(ctx context.Context, request models.TokenRequest) (models.Token, error)

	// Authenticate resolves a bearer key to the owning user.
	Authenticate(ctx context.Context, key string) (models.User, error)

	// Profile returns the account of the given user.
	Profile(ctx context.Context, userID int64) (models.User, error)

	// UpdateProfile applies the non-nil fields of update to the account.
	UpdateProfile(ctx context.Context, userID int64, update models.UserUpdate) (models.User, error)

	// DeleteAccount removes the account together with its token and all
	// owned recipes, tags and ingredients.
	DeleteAccount(ctx context.Context, userID int64) error

	// EnsureSuperuser creates an active staff superuser with the given
	// credentials unless an account with that email already exists.
	EnsureSuperuser(ctx context.Context, email, password string) error
}

// RecipeService implements the recipe use cases on top of the recipe
// repository and the image store.
type RecipeService interface {
	CreateRecipe(ctx context.Context, userID int64, input models.RecipeInput) (models.Recipe, error)
	ListRecipes(ctx context.Context, userID int64, filter models.RecipeFilter) ([]models.Recipe, error)
	GetRecipe(ctx context.Context, userID, recipeID int64) (models.Recipe, error)
	UpdateRecipe(ctx context.Context, userID, recipeID int64, input models.RecipeInput) (models.Recipe, error)
	DeleteRecipe(ctx context.Context, userID, recipeID int64) error

	// UploadImage validates that data is an image, stores it under a fresh
	// storage path and attaches that path to the recipe, replacing any
	// previous image.
	UploadImage(ctx context.Context, userID, recipeID int64, filename string, data io.Reader) (models.Recipe, error)
}

// TagService implements the user-scoped tag use cases.
type TagService interface {
	CreateTag(ctx context.Context, userID int64, name string) (models.Tag, error)
	ListTags(ctx context.Context, userID int64) ([]models.Tag, error)
	GetTag(ctx context.Context, userID, tagID int64) (models.Tag, error)
	UpdateTag(ctx context.Context, userID, tagID int64, name string) (models.Tag, error)
	DeleteTag(ctx context.Context, userID, tagID int64) error
}

// IngredientService implements the user-scoped ingredient use cases,
// symmetric to [TagService].
type IngredientService interface {
	CreateIngredient(ctx context.Context, userID int64, name string) (models.Ingredient, error)
	ListIngredients(ctx context.Context, userID int64) ([]models.Ingredient, error)
	GetIngredient(ctx context.Context, userID, ingredientID int64) (models.Ingredient, error)
	UpdateIngredient(ctx context.Context, userID, ingredientID int64, name string) (models.Ingredient, error)
	DeleteIngredient(ctx context.Context, userID, ingredientID int64) error
}
