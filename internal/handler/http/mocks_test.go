package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cpwcao/recipe-app-api/internal/logger"
	"github.com/cpwcao/recipe-app-api/internal/service"
	"github.com/cpwcao/recipe-app-api/models"
)

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerFn        func(ctx context.Context, request models.RegisterRequest) (models.User, error)
	issueTokenFn      func(ctx context.Context, request models.TokenRequest) (models.Token, error)
	authenticateFn    func(ctx context.Context, key string) (models.User, error)
	profileFn         func(ctx context.Context, userID int64) (models.User, error)
	updateProfileFn   func(ctx context.Context, userID int64, update models.UserUpdate) (models.User, error)
	deleteAccountFn   func(ctx context.Context, userID int64) error
	ensureSuperuserFn func(ctx context.Context, email, password string) error
}

func (m *mockAuthService) Register(ctx context.Context, request models.RegisterRequest) (models.User, error) {
	return m.registerFn(ctx, request)
}

func (m *mockAuthService) IssueToken(ctx context.Context, request models.TokenRequest) (models.Token, error) {
	return m.issueTokenFn(ctx, request)
}

func (m *mockAuthService) Authenticate(ctx context.Context, key string) (models.User, error) {
	return m.authenticateFn(ctx, key)
}

func (m *mockAuthService) Profile(ctx context.Context, userID int64) (models.User, error) {
	return m.profileFn(ctx, userID)
}

func (m *mockAuthService) UpdateProfile(ctx context.Context, userID int64, update models.UserUpdate) (models.User, error) {
	return m.updateProfileFn(ctx, userID, update)
}

func (m *mockAuthService) DeleteAccount(ctx context.Context, userID int64) error {
	return m.deleteAccountFn(ctx, userID)
}

func (m *mockAuthService) EnsureSuperuser(ctx context.Context, email, password string) error {
	return m.ensureSuperuserFn(ctx, email, password)
}

// mockRecipeService implements service.RecipeService for unit tests.
type mockRecipeService struct {
	createRecipeFn func(ctx context.Context, userID int64, input models.RecipeInput) (models.Recipe, error)
	listRecipesFn  func(ctx context.Context, userID int64, filter models.RecipeFilter) ([]models.Recipe, error)
	getRecipeFn    func(ctx context.Context, userID, recipeID int64) (models.Recipe, error)
	updateRecipeFn func(ctx context.Context, userID, recipeID int64, input models.RecipeInput) (models.Recipe, error)
	deleteRecipeFn func(ctx context.Context, userID, recipeID int64) error
	uploadImageFn  func(ctx context.Context, userID, recipeID int64, filename string, data io.Reader) (models.Recipe, error)
}

func (m *mockRecipeService) CreateRecipe(ctx context.Context, userID int64, input models.RecipeInput) (models.Recipe, error) {
	return m.createRecipeFn(ctx, userID, input)
}

func (m *mockRecipeService) ListRecipes(ctx context.Context, userID int64, filter models.RecipeFilter) ([]models.Recipe, error) {
	return m.listRecipesFn(ctx, userID, filter)
}

func (m *mockRecipeService) GetRecipe(ctx context.Context, userID, recipeID int64) (models.Recipe, error) {
	return m.getRecipeFn(ctx, userID, recipeID)
}

func (m *mockRecipeService) UpdateRecipe(ctx context.Context, userID, recipeID int64, input models.RecipeInput) (models.Recipe, error) {
	return m.updateRecipeFn(ctx, userID, recipeID, input)
}

func (m *mockRecipeService) DeleteRecipe(ctx context.Context, userID, recipeID int64) error {
	return m.deleteRecipeFn(ctx, userID, recipeID)
}

func (m *mockRecipeService) UploadImage(ctx context.Context, userID, recipeID int64, filename string, data io.Reader) (models.Recipe, error) {
	return m.uploadImageFn(ctx, userID, recipeID, filename, data)
}

// mockTagService implements service.TagService for unit tests.
type mockTagService struct {
	createTagFn func(ctx context.Context, userID int64, name string) (models.Tag, error)
	listTagsFn  func(ctx context.Context, userID int64) ([]models.Tag, error)
	getTagFn    func(ctx context.Context, userID, tagID int64) (models.Tag, error)
	updateTagFn func(ctx context.Context, userID, tagID int64, name string) (models.Tag, error)
	deleteTagFn func(ctx context.Context, userID, tagID int64) error
}

func (m *mockTagService) CreateTag(ctx context.Context, userID int64, name string) (models.Tag, error) {
	return m.createTagFn(ctx, userID, name)
}

func (m *mockTagService) ListTags(ctx context.Context, userID int64) ([]models.Tag, error) {
	return m.listTagsFn(ctx, userID)
}

func (m *mockTagService) GetTag(ctx context.Context, userID, tagID int64) (models.Tag, error) {
	return m.getTagFn(ctx, userID, tagID)
}

func (m *mockTagService) UpdateTag(ctx context.Context, userID, tagID int64, name string) (models.Tag, error) {
	return m.updateTagFn(ctx, userID, tagID, name)
}

func (m *mockTagService) DeleteTag(ctx context.Context, userID, tagID int64) error {
	return m.deleteTagFn(ctx, userID, tagID)
}

// mockIngredientService implements service.IngredientService for unit tests.
type mockIngredientService struct {
	createIngredientFn func(ctx context.Context, userID int64, name string) (models.Ingredient, error)
	listIngredientsFn  func(ctx context.Context, userID int64) ([]models.Ingredient, error)
	getIngredientFn    func(ctx context.Context, userID, ingredientID int64) (models.Ingredient, error)
	updateIngredientFn func(ctx context.Context, userID, ingredientID int64, name string) (models.Ingredient, error)
	deleteIngredientFn func(ctx context.Context, userID, ingredientID int64) error
}

func (m *mockIngredientService) CreateIngredient(ctx context.Context, userID int64, name string) (models.Ingredient, error) {
	return m.createIngredientFn(ctx, userID, name)
}

func (m *mockIngredientService) ListIngredients(ctx context.Context, userID int64) ([]models.Ingredient, error) {
	return m.listIngredientsFn(ctx, userID)
}

func (m *mockIngredientService) GetIngredient(ctx context.Context, userID, ingredientID int64) (models.Ingredient, error) {
	return m.getIngredientFn(ctx, userID, ingredientID)
}

func (m *mockIngredientService) UpdateIngredient(ctx context.Context, userID, ingredientID int64, name string) (models.Ingredient, error) {
	return m.updateIngredientFn(ctx, userID, ingredientID, name)
}

func (m *mockIngredientService) DeleteIngredient(ctx context.Context, userID, ingredientID int64) error {
	return m.deleteIngredientFn(ctx, userID, ingredientID)
}

// authAsUser returns a mockAuthService whose Authenticate always resolves
// "Bearer test-token" to the given user ID, leaving the other methods unset.
func authAsUser(userID int64) *mockAuthService {
	return &mockAuthService{
		authenticateFn: func(_ context.Context, key string) (models.User, error) {
			return models.User{UserID: userID, IsActive: true}, nil
		},
	}
}

// newTestRouter wires a Handler with the given service mocks and returns the
// fully initialized router, so tests exercise routing and middleware too.
func newTestRouter(t *testing.T, services *service.Services) http.Handler {
	t.Helper()
	return NewHandler(services, logger.Nop()).Init()
}

// doRequest performs req against the router and returns the recorder.
func doRequest(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// authorize attaches the test bearer credential to req.
func authorize(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer test-token")
	return req
}
