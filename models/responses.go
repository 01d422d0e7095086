package models

// ErrorResponse is the uniform JSON body for every error the API returns.
type ErrorResponse struct {
	Message string `json:"message"`
}

// RecipeListItem is the list-view projection of a recipe: relations are
// rendered as ID arrays plus convenience name arrays.
type RecipeListItem struct {
	ID              int64    `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	TimeMinutes     int      `json:"time_minutes"`
	Price           Price    `json:"price"`
	Link            string   `json:"link"`
	Image           string   `json:"image,omitempty"`
	Tags            []int64  `json:"tags"`
	Ingredients     []int64  `json:"ingredients"`
	TagNames        []string `json:"tag_names"`
	IngredientNames []string `json:"ingredient_names"`
}

// NewRecipeListItem builds the list projection of r.
func NewRecipeListItem(r Recipe) RecipeListItem {
	return RecipeListItem{
		ID:              r.ID,
		Title:           r.Title,
		Description:     r.Description,
		TimeMinutes:     r.TimeMinutes,
		Price:           r.Price,
		Link:            r.Link,
		Image:           r.ImagePath,
		Tags:            r.TagIDs(),
		Ingredients:     r.IngredientIDs(),
		TagNames:        r.TagNames(),
		IngredientNames: r.IngredientNames(),
	}
}

// RecipeDetail is the detail-view projection of a recipe: relations are
// rendered as full objects, not just IDs.
type RecipeDetail struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	TimeMinutes int          `json:"time_minutes"`
	Price       Price        `json:"price"`
	Link        string       `json:"link"`
	Image       string       `json:"image,omitempty"`
	Tags        []Tag        `json:"tags"`
	Ingredients []Ingredient `json:"ingredients"`
}

// NewRecipeDetail builds the detail projection of r.
func NewRecipeDetail(r Recipe) RecipeDetail {
	tags := r.Tags
	if tags == nil {
		tags = []Tag{}
	}
	ingredients := r.Ingredients
	if ingredients == nil {
		ingredients = []Ingredient{}
	}

	return RecipeDetail{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
		Image:       r.ImagePath,
		Tags:        tags,
		Ingredients: ingredients,
	}
}

// ImageUploadResponse is returned after a successful recipe image upload.
type ImageUploadResponse struct {
	ID    int64  `json:"id"`
	Image string `json:"image"`
}
