package service

import (
	"github.com/cpwcao/recipe-app-api/internal/logger"
	"github.com/cpwcao/recipe-app-api/internal/store"
)

// Services bundles every business-logic service the handlers depend on.
type Services struct {
	AuthService       AuthService
	RecipeService     RecipeService
	TagService        TagService
	IngredientService IngredientService
}

// NewServices wires all services to the given storage backends.
func NewServices(storages *store.Storages, logger *logger.Logger) *Services {
	return &Services{
		AuthService:       NewAuthService(storages.UserRepository, storages.TokenRepository, logger),
		RecipeService:     NewRecipeService(storages.RecipeRepository, storages.ImageStorage, logger),
		TagService:        NewTagService(storages.TagRepository, logger),
		IngredientService: NewIngredientService(storages.IngredientRepository, logger),
	}
}
