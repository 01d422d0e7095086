package models

// RecipeFilter narrows a recipe list query. Both sets use intersection
// semantics: a recipe matches when it is associated with at least one of the
// given tag IDs and, independently, at least one of the given ingredient IDs.
// Empty slices apply no filtering.
type RecipeFilter struct {
	TagIDs        []int64
	IngredientIDs []int64
}

// RecipeUpdate represents criteria for updating a single recipe.
// Only non-nil fields will be updated (partial update support).
type RecipeUpdate struct {
	// ID is the unique identifier of the recipe to update. Required.
	ID int64

	// UserID is the owner of the recipe. Required for data isolation;
	// the owner itself is immutable and cannot be part of the update.
	UserID int64

	Title       *string
	Description *string
	TimeMinutes *int
	Price       *Price
	Link        *string

	// Tags and Ingredients, when non-nil, REPLACE the recipe's entire
	// association set inside the same transaction as the field update.
	Tags        *[]int64
	Ingredients *[]int64
}

// UserPatch represents a partial user profile update at the persistence
// layer. The password has already been hashed by the service layer.
type UserPatch struct {
	// UserID identifies the row to update. Required.
	UserID int64

	Email        *string
	Name         *string
	Username     *string
	FirstName    *string
	LastName     *string
	PasswordHash *string
}
