package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/cpwcao/recipe-app-api/models"
)

const (
	createUser = `INSERT INTO users (email, name, username, first_name, last_name, password_hash, is_staff, is_superuser)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING id, email, name, username, first_name, last_name, password_hash, is_active, is_staff, is_superuser, date_joined;`

	findUserByEmail = `SELECT id, email, name, username, first_name, last_name, password_hash, is_active, is_staff, is_superuser, date_joined
	FROM users
	WHERE email = $1;`

	findUserByID = `SELECT id, email, name, username, first_name, last_name, password_hash, is_active, is_staff, is_superuser, date_joined
	FROM users
	WHERE id = $1;`

	deleteUser = `DELETE FROM users WHERE id = $1;`

	// The user_id column carries a UNIQUE constraint, so the upsert returns
	// the already-issued key when one exists and stores the candidate
	// otherwise. Both paths resolve in a single statement.
	getOrCreateToken = `INSERT INTO auth_tokens (key, user_id)
	VALUES ($1, $2)
	ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
	RETURNING key, user_id, created_at;`

	findTokenUser = `SELECT user_id FROM auth_tokens WHERE key = $1;`

	createTag = `INSERT INTO tags (name, user_id)
	VALUES ($1, $2)
	RETURNING id, name, user_id;`

	listTags = `SELECT id, name, user_id FROM tags WHERE user_id = $1 ORDER BY id DESC;`

	findTagByID = `SELECT id, name, user_id FROM tags WHERE id = $1 AND user_id = $2;`

	updateTag = `UPDATE tags SET name = $1 WHERE id = $2 AND user_id = $3 RETURNING id, name, user_id;`

	deleteTag = `DELETE FROM tags WHERE id = $1 AND user_id = $2;`

	createIngredient = `INSERT INTO ingredients (name, user_id)
	VALUES ($1, $2)
	RETURNING id, name, user_id;`

	listIngredients = `SELECT id, name, user_id FROM ingredients WHERE user_id = $1 ORDER BY id DESC;`

	findIngredientByID = `SELECT id, name, user_id FROM ingredients WHERE id = $1 AND user_id = $2;`

	updateIngredient = `UPDATE ingredients SET name = $1 WHERE id = $2 AND user_id = $3 RETURNING id, name, user_id;`

	deleteIngredient = `DELETE FROM ingredients WHERE id = $1 AND user_id = $2;`

	createRecipe = `INSERT INTO recipes (user_id, title, description, time_minutes, price, link)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id, user_id, title, description, time_minutes, price::text, link, image_path;`

	getRecipe = `SELECT id, user_id, title, description, time_minutes, price::text, link, image_path
	FROM recipes
	WHERE id = $1 AND user_id = $2;`

	deleteRecipe = `DELETE FROM recipes WHERE id = $1 AND user_id = $2;`

	setRecipeImage = `UPDATE recipes SET image_path = $1
	WHERE id = $2 AND user_id = $3
	RETURNING id, user_id, title, description, time_minutes, price::text, link, image_path;`

	// Association inserts are scoped to the owner's rows. When any requested
	// ID is absent or foreign, fewer rows are inserted than were requested
	// and the caller aborts the transaction.
	insertRecipeTags = `INSERT INTO recipe_tags (recipe_id, tag_id)
	SELECT $1, t.id FROM tags t WHERE t.user_id = $2 AND t.id = ANY($3);`

	insertRecipeIngredients = `INSERT INTO recipe_ingredients (recipe_id, ingredient_id)
	SELECT $1, i.id FROM ingredients i WHERE i.user_id = $2 AND i.id = ANY($3);`

	clearRecipeTags = `DELETE FROM recipe_tags WHERE recipe_id = $1;`

	clearRecipeIngredients = `DELETE FROM recipe_ingredients WHERE recipe_id = $1;`

	loadTagsForRecipes = `SELECT rt.recipe_id, t.id, t.name, t.user_id
	FROM recipe_tags rt
	JOIN tags t ON t.id = rt.tag_id
	WHERE rt.recipe_id = ANY($1)
	ORDER BY rt.recipe_id, t.id;`

	loadIngredientsForRecipes = `SELECT ri.recipe_id, i.id, i.name, i.user_id
	FROM recipe_ingredients ri
	JOIN ingredients i ON i.id = ri.ingredient_id
	WHERE ri.recipe_id = ANY($1)
	ORDER BY ri.recipe_id, i.id;`
)

// buildListRecipesQuery builds the owner-scoped recipe list query, newest
// first, with optional tag/ingredient intersection filters applied through
// the association tables.
func buildListRecipesQuery(userID int64, filter models.RecipeFilter) (string, []any, error) {
	builder := sq.
		Select("id", "user_id", "title", "description", "time_minutes", "price::text", "link", "image_path").
		From("recipes").
		Where(sq.Eq{"user_id": userID}).
		PlaceholderFormat(sq.Dollar)

	if len(filter.TagIDs) > 0 {
		builder = builder.Where("id IN (SELECT recipe_id FROM recipe_tags WHERE tag_id = ANY(?))", filter.TagIDs)
	}

	if len(filter.IngredientIDs) > 0 {
		builder = builder.Where("id IN (SELECT recipe_id FROM recipe_ingredients WHERE ingredient_id = ANY(?))", filter.IngredientIDs)
	}

	query, args, err := builder.OrderBy("id DESC").ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildUpdateRecipeQuery builds a dynamic UPDATE for the scalar recipe
// fields present in update. Returns hasChanges == false when the update
// carries no scalar field, in which case no UPDATE should be executed.
//
// The WHERE clause always pins both id and user_id; the owner column itself
// is never part of the SET list, which is what makes the owner immutable at
// this layer.
func buildUpdateRecipeQuery(update models.RecipeUpdate) (query string, args []any, hasChanges bool, err error) {
	builder := sq.Update("recipes").PlaceholderFormat(sq.Dollar)

	if update.Title != nil {
		builder = builder.Set("title", *update.Title)
		hasChanges = true
	}
	if update.Description != nil {
		builder = builder.Set("description", *update.Description)
		hasChanges = true
	}
	if update.TimeMinutes != nil {
		builder = builder.Set("time_minutes", *update.TimeMinutes)
		hasChanges = true
	}
	if update.Price != nil {
		builder = builder.Set("price", update.Price.String())
		hasChanges = true
	}
	if update.Link != nil {
		builder = builder.Set("link", *update.Link)
		hasChanges = true
	}

	if !hasChanges {
		return "", nil, false, nil
	}

	query, args, err = builder.
		Where(sq.Eq{"id": update.ID, "user_id": update.UserID}).
		Suffix("RETURNING id, user_id, title, description, time_minutes, price::text, link, image_path").
		ToSql()
	if err != nil {
		return "", nil, false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, true, nil
}

// buildUpdateUserQuery builds a dynamic UPDATE for the profile fields
// present in patch. At least one field must be set; callers check first.
func buildUpdateUserQuery(patch models.UserPatch) (string, []any, error) {
	builder := sq.Update("users").PlaceholderFormat(sq.Dollar)

	if patch.Email != nil {
		builder = builder.Set("email", *patch.Email)
	}
	if patch.Name != nil {
		builder = builder.Set("name", *patch.Name)
	}
	if patch.Username != nil {
		builder = builder.Set("username", *patch.Username)
	}
	if patch.FirstName != nil {
		builder = builder.Set("first_name", *patch.FirstName)
	}
	if patch.LastName != nil {
		builder = builder.Set("last_name", *patch.LastName)
	}
	if patch.PasswordHash != nil {
		builder = builder.Set("password_hash", *patch.PasswordHash)
	}

	query, args, err := builder.
		Where(sq.Eq{"id": patch.UserID}).
		Suffix("RETURNING id, email, name, username, first_name, last_name, password_hash, is_active, is_staff, is_superuser, date_joined").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// hasUserPatchChanges reports whether the patch carries at least one field.
func hasUserPatchChanges(patch models.UserPatch) bool {
	return patch.Email != nil ||
		patch.Name != nil ||
		patch.Username != nil ||
		patch.FirstName != nil ||
		patch.LastName != nil ||
		patch.PasswordHash != nil
}
