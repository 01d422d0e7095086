package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cpwcao/recipe-app-api/internal/utils"
	"github.com/cpwcao/recipe-app-api/models"
)

// Init wires the REST API routes. Trailing slashes are stripped so that
// "/api/recipes/" and "/api/recipes" resolve to the same handler.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.StripSlashes)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/users", h.register)
		r.Post("/api/users/token", h.token)
	})

	// routes behind bearer-token authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/api/users/me", func(r chi.Router) {
			r.Get("/", h.profile)
			r.Put("/", h.updateProfile)
			r.Patch("/", h.updateProfile)
			r.Delete("/", h.deleteProfile)
		})

		r.Route("/api/recipes", func(r chi.Router) {
			r.Get("/", h.listRecipes)
			r.Post("/", h.createRecipe)
			r.Route("/{recipeID}", func(r chi.Router) {
				r.Get("/", h.getRecipe)
				r.Put("/", h.updateRecipe)
				r.Patch("/", h.updateRecipe)
				r.Delete("/", h.deleteRecipe)
				r.Post("/upload-image", h.uploadRecipeImage)
			})
		})

		r.Route("/api/tags", func(r chi.Router) {
			r.Get("/", h.listTags)
			r.Post("/", h.createTag)
			r.Route("/{tagID}", func(r chi.Router) {
				r.Get("/", h.getTag)
				r.Put("/", h.updateTag)
				r.Patch("/", h.updateTag)
				r.Delete("/", h.deleteTag)
			})
		})

		r.Route("/api/ingredients", func(r chi.Router) {
			r.Get("/", h.listIngredients)
			r.Post("/", h.createIngredient)
			r.Route("/{ingredientID}", func(r chi.Router) {
				r.Get("/", h.getIngredient)
				r.Put("/", h.updateIngredient)
				r.Patch("/", h.updateIngredient)
				r.Delete("/", h.deleteIngredient)
			})
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, models.ErrorResponse{Message: "not found"}, http.StatusNotFound)
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, models.ErrorResponse{Message: "method not allowed"}, http.StatusMethodNotAllowed)
	})

	return router
}
