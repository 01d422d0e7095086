package service

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/cpwcao/recipe-app-api/internal/logger"
	"github.com/cpwcao/recipe-app-api/internal/store"
	"github.com/cpwcao/recipe-app-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRecipeRepository implements store.RecipeRepository for unit tests.
type mockRecipeRepository struct {
	createRecipeFn   func(ctx context.Context, recipe models.Recipe, tagIDs, ingredientIDs []int64) (models.Recipe, error)
	listRecipesFn    func(ctx context.Context, userID int64, filter models.RecipeFilter) ([]models.Recipe, error)
	getRecipeFn      func(ctx context.Context, userID, recipeID int64) (models.Recipe, error)
	updateRecipeFn   func(ctx context.Context, update models.RecipeUpdate) (models.Recipe, error)
	deleteRecipeFn   func(ctx context.Context, userID, recipeID int64) error
	setRecipeImageFn func(ctx context.Context, userID, recipeID int64, imagePath string) (models.Recipe, error)
}

func (m *mockRecipeRepository) CreateRecipe(ctx context.Context, recipe models.Recipe, tagIDs, ingredientIDs []int64) (models.Recipe, error) {
	return m.createRecipeFn(ctx, recipe, tagIDs, ingredientIDs)
}

func (m *mockRecipeRepository) ListRecipes(ctx context.Context, userID int64, filter models.RecipeFilter) ([]models.Recipe, error) {
	return m.listRecipesFn(ctx, userID, filter)
}

func (m *mockRecipeRepository) GetRecipe(ctx context.Context, userID, recipeID int64) (models.Recipe, error) {
	return m.getRecipeFn(ctx, userID, recipeID)
}

func (m *mockRecipeRepository) UpdateRecipe(ctx context.Context, update models.RecipeUpdate) (models.Recipe, error) {
	return m.updateRecipeFn(ctx, update)
}

func (m *mockRecipeRepository) DeleteRecipe(ctx context.Context, userID, recipeID int64) error {
	return m.deleteRecipeFn(ctx, userID, recipeID)
}

func (m *mockRecipeRepository) SetRecipeImage(ctx context.Context, userID, recipeID int64, imagePath string) (models.Recipe, error) {
	return m.setRecipeImageFn(ctx, userID, recipeID, imagePath)
}

// mockImageStorage implements store.ImageStorage for unit tests.
type mockImageStorage struct {
	savedPaths   []string
	savedContent map[string][]byte
	deletedPaths []string
	saveErr      error
}

func (m *mockImageStorage) Save(_ context.Context, path string, _ string, data io.Reader) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	content, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	if m.savedContent == nil {
		m.savedContent = make(map[string][]byte)
	}
	m.savedPaths = append(m.savedPaths, path)
	m.savedContent[path] = content
	return nil
}

func (m *mockImageStorage) Delete(_ context.Context, path string) error {
	m.deletedPaths = append(m.deletedPaths, path)
	return nil
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func pricePtr(p models.Price) *models.Price { return &p }

// pngHeader is a minimal valid PNG signature, enough for content sniffing.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func newRecipeServiceForTest(repo store.RecipeRepository, images store.ImageStorage) RecipeService {
	return NewRecipeService(repo, images, logger.Nop())
}

func TestCreateRecipe_RequiresTitleTimePrice(t *testing.T) {
	svc := newRecipeServiceForTest(&mockRecipeRepository{}, &mockImageStorage{})
	ctx := context.Background()

	cases := []struct {
		name  string
		input models.RecipeInput
	}{
		{name: "missing title", input: models.RecipeInput{TimeMinutes: intPtr(5), Price: pricePtr(100)}},
		{name: "missing time", input: models.RecipeInput{Title: strPtr("Soup"), Price: pricePtr(100)}},
		{name: "missing price", input: models.RecipeInput{Title: strPtr("Soup"), TimeMinutes: intPtr(5)}},
		{name: "empty title", input: models.RecipeInput{Title: strPtr(""), TimeMinutes: intPtr(5), Price: pricePtr(100)}},
		{name: "negative time", input: models.RecipeInput{Title: strPtr("Soup"), TimeMinutes: intPtr(-1), Price: pricePtr(100)}},
		{name: "price above column range", input: models.RecipeInput{Title: strPtr("Soup"), TimeMinutes: intPtr(5), Price: pricePtr(models.MaxPrice + 1)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateRecipe(ctx, 7, tc.input)
			assert.ErrorIs(t, err, ErrInvalidDataProvided)
		})
	}
}

func TestCreateRecipe_PassesAssociationIDs(t *testing.T) {
	var gotRecipe models.Recipe
	var gotTags, gotIngredients []int64
	repo := &mockRecipeRepository{
		createRecipeFn: func(_ context.Context, recipe models.Recipe, tagIDs, ingredientIDs []int64) (models.Recipe, error) {
			gotRecipe = recipe
			gotTags = tagIDs
			gotIngredients = ingredientIDs
			recipe.ID = 1
			return recipe, nil
		},
	}
	svc := newRecipeServiceForTest(repo, &mockImageStorage{})

	tags := []int64{1, 2}
	ingredients := []int64{3}
	input := models.RecipeInput{
		Title:       strPtr("Pasta"),
		TimeMinutes: intPtr(30),
		Price:       pricePtr(1250),
		Link:        strPtr("https://example.com"),
		Tags:        &tags,
		Ingredients: &ingredients,
	}

	created, err := svc.CreateRecipe(context.Background(), 7, input)
	require.NoError(t, err)

	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, int64(7), gotRecipe.UserID)
	assert.Equal(t, "Pasta", gotRecipe.Title)
	assert.Equal(t, []int64{1, 2}, gotTags)
	assert.Equal(t, []int64{3}, gotIngredients)
}

func TestUpdateRecipe_ValidatesProvidedFields(t *testing.T) {
	svc := newRecipeServiceForTest(&mockRecipeRepository{}, &mockImageStorage{})

	_, err := svc.UpdateRecipe(context.Background(), 7, 1, models.RecipeInput{Title: strPtr("")})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	// a price that fits int64 but not the NUMERIC(8,2) column must be
	// rejected here instead of surfacing as a database error
	_, err = svc.UpdateRecipe(context.Background(), 7, 1, models.RecipeInput{Price: pricePtr(models.MaxPrice + 1)})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestUpdateRecipe_PartialFieldsForwarded(t *testing.T) {
	var gotUpdate models.RecipeUpdate
	repo := &mockRecipeRepository{
		updateRecipeFn: func(_ context.Context, update models.RecipeUpdate) (models.Recipe, error) {
			gotUpdate = update
			return models.Recipe{ID: update.ID}, nil
		},
	}
	svc := newRecipeServiceForTest(repo, &mockImageStorage{})

	_, err := svc.UpdateRecipe(context.Background(), 7, 5, models.RecipeInput{Title: strPtr("Renamed")})
	require.NoError(t, err)

	assert.Equal(t, int64(5), gotUpdate.ID)
	assert.Equal(t, int64(7), gotUpdate.UserID)
	require.NotNil(t, gotUpdate.Title)
	assert.Equal(t, "Renamed", *gotUpdate.Title)
	assert.Nil(t, gotUpdate.Description)
	assert.Nil(t, gotUpdate.Tags)
}

func TestUploadImage_RejectsNonImage(t *testing.T) {
	repo := &mockRecipeRepository{
		getRecipeFn: func(_ context.Context, _, recipeID int64) (models.Recipe, error) {
			return models.Recipe{ID: recipeID}, nil
		},
	}
	images := &mockImageStorage{}
	svc := newRecipeServiceForTest(repo, images)

	_, err := svc.UploadImage(context.Background(), 7, 1, "notes.txt", strings.NewReader("plain text, not an image"))
	assert.ErrorIs(t, err, ErrInvalidImage)
	assert.Empty(t, images.savedPaths)
}

func TestUploadImage_MissingRecipe(t *testing.T) {
	repo := &mockRecipeRepository{
		getRecipeFn: func(_ context.Context, _, _ int64) (models.Recipe, error) {
			return models.Recipe{}, store.ErrRecipeNotFound
		},
	}
	images := &mockImageStorage{}
	svc := newRecipeServiceForTest(repo, images)

	_, err := svc.UploadImage(context.Background(), 7, 99, "photo.png", bytes.NewReader(pngHeader))
	assert.ErrorIs(t, err, store.ErrRecipeNotFound)
	assert.Empty(t, images.savedPaths)
}

func TestUploadImage_StoresAndAttachesPNG(t *testing.T) {
	payload := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0x00}, 600)...)

	var attachedPath string
	repo := &mockRecipeRepository{
		getRecipeFn: func(_ context.Context, _, recipeID int64) (models.Recipe, error) {
			return models.Recipe{ID: recipeID, UserID: 7}, nil
		},
		setRecipeImageFn: func(_ context.Context, _, recipeID int64, imagePath string) (models.Recipe, error) {
			attachedPath = imagePath
			return models.Recipe{ID: recipeID, ImagePath: imagePath}, nil
		},
	}
	images := &mockImageStorage{}
	svc := newRecipeServiceForTest(repo, images)

	updated, err := svc.UploadImage(context.Background(), 7, 1, "photo.png", bytes.NewReader(payload))
	require.NoError(t, err)

	require.Len(t, images.savedPaths, 1)
	storedPath := images.savedPaths[0]
	assert.True(t, strings.HasPrefix(storedPath, "uploads/recipe/"), "path %q", storedPath)
	assert.True(t, strings.HasSuffix(storedPath, ".png"), "path %q", storedPath)
	assert.Equal(t, storedPath, attachedPath)
	assert.Equal(t, storedPath, updated.ImagePath)
	// the sniffed head must be stitched back in front of the stored body
	assert.Equal(t, payload, images.savedContent[storedPath])
}

func TestUploadImage_ReplacesPreviousImage(t *testing.T) {
	payload := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0x00}, 100)...)

	repo := &mockRecipeRepository{
		getRecipeFn: func(_ context.Context, _, recipeID int64) (models.Recipe, error) {
			return models.Recipe{ID: recipeID, ImagePath: "uploads/recipe/old.png"}, nil
		},
		setRecipeImageFn: func(_ context.Context, _, recipeID int64, imagePath string) (models.Recipe, error) {
			return models.Recipe{ID: recipeID, ImagePath: imagePath}, nil
		},
	}
	images := &mockImageStorage{}
	svc := newRecipeServiceForTest(repo, images)

	_, err := svc.UploadImage(context.Background(), 7, 1, "photo.png", bytes.NewReader(payload))
	require.NoError(t, err)

	assert.Equal(t, []string{"uploads/recipe/old.png"}, images.deletedPaths)
}
