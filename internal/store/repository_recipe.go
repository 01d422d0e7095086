package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cpwcao/recipe-app-api/internal/logger"
	"github.com/cpwcao/recipe-app-api/models"
)

// recipeRepository is the PostgreSQL-backed implementation of
// [RecipeRepository]. It owns the "recipes" table together with the
// "recipe_tags" and "recipe_ingredients" association tables.
//
// Creation and association replacement run inside a single transaction:
// a recipe row never outlives a failed association step.
type recipeRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewRecipeRepository constructs a [RecipeRepository] backed by the provided
// database connection and logger.
func NewRecipeRepository(db *DB, logger *logger.Logger) RecipeRepository {
	logger.Debug().Msg("creating recipe repository")
	return &recipeRepository{
		db:     db,
		logger: logger,
	}
}

// CreateRecipe persists the recipe row and its tag/ingredient associations
// as one transactional unit.
//
// Association IDs are deduplicated first (the sets are membership-unique).
// When any ID does not resolve to a row owned by recipe.UserID the whole
// transaction rolls back with [ErrRelatedItemsNotFound] and no recipe
// remains.
func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe models.Recipe, tagIDs, ingredientIDs []int64) (models.Recipe, error) {
	log := logger.FromContext(ctx)

	tagIDs = dedupeIDs(tagIDs)
	ingredientIDs = dedupeIDs(ingredientIDs)

	var created models.Recipe
	err := r.db.withTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, createRecipe,
			recipe.UserID, recipe.Title, recipe.Description,
			recipe.TimeMinutes, recipe.Price.String(), recipe.Link)
		if err := scanRecipe(row, &created); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		if err := associate(ctx, tx, insertRecipeTags, created.ID, recipe.UserID, tagIDs); err != nil {
			return err
		}

		return associate(ctx, tx, insertRecipeIngredients, created.ID, recipe.UserID, ingredientIDs)
	})
	if err != nil {
		log.Err(err).Str("func", "*recipeRepository.CreateRecipe").Int64("user_id", recipe.UserID).Msg("recipe creation rolled back")
		return models.Recipe{}, err
	}

	if err := r.loadRelations(ctx, []*models.Recipe{&created}); err != nil {
		return models.Recipe{}, err
	}

	return created, nil
}

// ListRecipes returns the user's recipes, newest first, optionally narrowed
// by tag/ingredient intersection filters. Relations are batch-loaded for the
// whole result set in two extra queries.
func (r *recipeRepository) ListRecipes(ctx context.Context, userID int64, filter models.RecipeFilter) ([]models.Recipe, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListRecipesQuery(userID, filter)
	if err != nil {
		log.Err(err).Str("func", "*recipeRepository.ListRecipes").Msg("failed to build list query")
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*recipeRepository.ListRecipes").Int64("user_id", userID).Msg("failed to execute recipe list query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	recipes := make([]models.Recipe, 0, 16)
	for rows.Next() {
		var recipe models.Recipe
		if err := scanRecipe(rows, &recipe); err != nil {
			log.Err(err).Str("func", "*recipeRepository.ListRecipes").Msg("failed to scan recipe row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		recipes = append(recipes, recipe)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*recipeRepository.ListRecipes").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	refs := make([]*models.Recipe, len(recipes))
	for i := range recipes {
		refs[i] = &recipes[i]
	}
	if err := r.loadRelations(ctx, refs); err != nil {
		return nil, err
	}

	return recipes, nil
}

// GetRecipe retrieves a single recipe scoped to userID, with relations.
// Returns [ErrRecipeNotFound] when the row is absent or owned by someone
// else.
func (r *recipeRepository) GetRecipe(ctx context.Context, userID, recipeID int64) (models.Recipe, error) {
	log := logger.FromContext(ctx)

	var recipe models.Recipe
	row := r.db.QueryRowContext(ctx, getRecipe, recipeID, userID)
	if err := scanRecipe(row, &recipe); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Recipe{}, ErrRecipeNotFound
		}
		log.Err(err).Str("func", "*recipeRepository.GetRecipe").Msg("failed to scan recipe row")
		return models.Recipe{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if err := r.loadRelations(ctx, []*models.Recipe{&recipe}); err != nil {
		return models.Recipe{}, err
	}

	return recipe, nil
}

// UpdateRecipe applies the non-nil scalar fields of update and, when a tag
// or ingredient set is provided, replaces the entire association set —
// all inside one transaction.
//
// The owner is pinned in every statement's WHERE clause and never updated;
// requests attempting to move a recipe to another user cannot be expressed
// through [models.RecipeUpdate] at all.
func (r *recipeRepository) UpdateRecipe(ctx context.Context, update models.RecipeUpdate) (models.Recipe, error) {
	log := logger.FromContext(ctx)

	query, args, hasChanges, err := buildUpdateRecipeQuery(update)
	if err != nil {
		log.Err(err).Str("func", "*recipeRepository.UpdateRecipe").Msg("failed to build update query")
		return models.Recipe{}, err
	}

	var updated models.Recipe
	txErr := r.db.withTx(ctx, func(tx *sql.Tx) error {
		var row rowScanner
		if hasChanges {
			row = tx.QueryRowContext(ctx, query, args...)
		} else {
			// nothing to update on the row itself, only association sets
			row = tx.QueryRowContext(ctx, getRecipe, update.ID, update.UserID)
		}

		if err := scanRecipe(row, &updated); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrRecipeNotFound
			}
			return fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		if update.Tags != nil {
			if _, err := tx.ExecContext(ctx, clearRecipeTags, update.ID); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
			if err := associate(ctx, tx, insertRecipeTags, update.ID, update.UserID, dedupeIDs(*update.Tags)); err != nil {
				return err
			}
		}

		if update.Ingredients != nil {
			if _, err := tx.ExecContext(ctx, clearRecipeIngredients, update.ID); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
			if err := associate(ctx, tx, insertRecipeIngredients, update.ID, update.UserID, dedupeIDs(*update.Ingredients)); err != nil {
				return err
			}
		}

		return nil
	})
	if txErr != nil {
		if !errors.Is(txErr, ErrRecipeNotFound) {
			log.Err(txErr).Str("func", "*recipeRepository.UpdateRecipe").Int64("recipe_id", update.ID).Msg("recipe update rolled back")
		}
		return models.Recipe{}, txErr
	}

	if err := r.loadRelations(ctx, []*models.Recipe{&updated}); err != nil {
		return models.Recipe{}, err
	}

	return updated, nil
}

// DeleteRecipe removes a recipe scoped to userID. Association rows are
// removed by ON DELETE CASCADE; the referenced tags and ingredients stay.
// Returns [ErrRecipeNotFound] when no row was deleted.
func (r *recipeRepository) DeleteRecipe(ctx context.Context, userID, recipeID int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteRecipe, recipeID, userID)
	if err != nil {
		log.Err(err).Str("func", "*recipeRepository.DeleteRecipe").Msg("failed to delete recipe")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrRecipeNotFound
	}

	return nil
}

// SetRecipeImage records the storage path of a freshly uploaded image and
// returns the updated recipe.
// Returns [ErrRecipeNotFound] when the row is absent or owned by someone
// else.
func (r *recipeRepository) SetRecipeImage(ctx context.Context, userID, recipeID int64, imagePath string) (models.Recipe, error) {
	log := logger.FromContext(ctx)

	var updated models.Recipe
	row := r.db.QueryRowContext(ctx, setRecipeImage, imagePath, recipeID, userID)
	if err := scanRecipe(row, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Recipe{}, ErrRecipeNotFound
		}
		log.Err(err).Str("func", "*recipeRepository.SetRecipeImage").Msg("failed to update recipe image")
		return models.Recipe{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if err := r.loadRelations(ctx, []*models.Recipe{&updated}); err != nil {
		return models.Recipe{}, err
	}

	return updated, nil
}

// loadRelations batch-loads the tag and ingredient sets for the given
// recipes in two queries, regardless of how many recipes are passed.
func (r *recipeRepository) loadRelations(ctx context.Context, recipes []*models.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}

	log := logger.FromContext(ctx)

	ids := make([]int64, 0, len(recipes))
	byID := make(map[int64]*models.Recipe, len(recipes))
	for _, recipe := range recipes {
		ids = append(ids, recipe.ID)
		byID[recipe.ID] = recipe
		recipe.Tags = []models.Tag{}
		recipe.Ingredients = []models.Ingredient{}
	}

	tagRows, err := r.db.QueryContext(ctx, loadTagsForRecipes, ids)
	if err != nil {
		log.Err(err).Str("func", "*recipeRepository.loadRelations").Msg("failed to load recipe tags")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer tagRows.Close()

	for tagRows.Next() {
		var recipeID int64
		var tag models.Tag
		if err := tagRows.Scan(&recipeID, &tag.ID, &tag.Name, &tag.UserID); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		if recipe, ok := byID[recipeID]; ok {
			recipe.Tags = append(recipe.Tags, tag)
		}
	}
	if err := tagRows.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	ingredientRows, err := r.db.QueryContext(ctx, loadIngredientsForRecipes, ids)
	if err != nil {
		log.Err(err).Str("func", "*recipeRepository.loadRelations").Msg("failed to load recipe ingredients")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer ingredientRows.Close()

	for ingredientRows.Next() {
		var recipeID int64
		var ingredient models.Ingredient
		if err := ingredientRows.Scan(&recipeID, &ingredient.ID, &ingredient.Name, &ingredient.UserID); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		if recipe, ok := byID[recipeID]; ok {
			recipe.Ingredients = append(recipe.Ingredients, ingredient)
		}
	}
	if err := ingredientRows.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return nil
}

// associate inserts association rows for the given IDs using query
// (insertRecipeTags or insertRecipeIngredients). The insert only picks up
// rows owned by userID; an affected-row count short of the requested set
// means some IDs were foreign or absent.
func associate(ctx context.Context, tx *sql.Tx, query string, recipeID, userID int64, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	result, err := tx.ExecContext(ctx, query, recipeID, userID, ids)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, _ := result.RowsAffected()
	if affected != int64(len(ids)) {
		return ErrRelatedItemsNotFound
	}

	return nil
}

func dedupeIDs(ids []int64) []int64 {
	if len(ids) < 2 {
		return ids
	}

	seen := make(map[int64]struct{}, len(ids))
	unique := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	return unique
}

func scanRecipe(row rowScanner, recipe *models.Recipe) error {
	var priceText string
	if err := row.Scan(
		&recipe.ID,
		&recipe.UserID,
		&recipe.Title,
		&recipe.Description,
		&recipe.TimeMinutes,
		&priceText,
		&recipe.Link,
		&recipe.ImagePath,
	); err != nil {
		return err
	}

	price, err := models.ParsePrice(priceText)
	if err != nil {
		return fmt.Errorf("invalid price value %q in recipe row: %w", priceText, err)
	}
	recipe.Price = price

	return nil
}
