package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cpwcao/recipe-app-api/internal/logger"
	"github.com/cpwcao/recipe-app-api/models"
)

// ingredientRepository is the PostgreSQL-backed implementation of
// [IngredientRepository], symmetric to the tag repository.
type ingredientRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewIngredientRepository constructs an [IngredientRepository] backed by the
// provided database connection and logger.
func NewIngredientRepository(db *DB, logger *logger.Logger) IngredientRepository {
	logger.Debug().Msg("creating ingredient repository")
	return &ingredientRepository{
		db:     db,
		logger: logger,
	}
}

// CreateIngredient persists a new ingredient owned by ingredient.UserID.
func (r *ingredientRepository) CreateIngredient(ctx context.Context, ingredient models.Ingredient) (models.Ingredient, error) {
	log := logger.FromContext(ctx)

	var created models.Ingredient
	row := r.db.QueryRowContext(ctx, createIngredient, ingredient.Name, ingredient.UserID)
	if err := row.Scan(&created.ID, &created.Name, &created.UserID); err != nil {
		log.Err(err).Str("func", "*ingredientRepository.CreateIngredient").Msg("failed to insert ingredient")
		return models.Ingredient{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// ListIngredients returns all ingredients owned by userID, newest first.
func (r *ingredientRepository) ListIngredients(ctx context.Context, userID int64) ([]models.Ingredient, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listIngredients, userID)
	if err != nil {
		log.Err(err).Str("func", "*ingredientRepository.ListIngredients").Int64("user_id", userID).Msg("failed to execute ingredient list query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	ingredients := make([]models.Ingredient, 0, 16)
	for rows.Next() {
		var ingredient models.Ingredient
		if err := rows.Scan(&ingredient.ID, &ingredient.Name, &ingredient.UserID); err != nil {
			log.Err(err).Str("func", "*ingredientRepository.ListIngredients").Msg("failed to scan ingredient row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		ingredients = append(ingredients, ingredient)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*ingredientRepository.ListIngredients").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return ingredients, nil
}

// FindIngredientByID retrieves a single ingredient scoped to userID.
// Returns [ErrIngredientNotFound] when the row is absent or owned by
// someone else.
func (r *ingredientRepository) FindIngredientByID(ctx context.Context, userID, ingredientID int64) (models.Ingredient, error) {
	log := logger.FromContext(ctx)

	var ingredient models.Ingredient
	row := r.db.QueryRowContext(ctx, findIngredientByID, ingredientID, userID)
	if err := row.Scan(&ingredient.ID, &ingredient.Name, &ingredient.UserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Ingredient{}, ErrIngredientNotFound
		}
		log.Err(err).Str("func", "*ingredientRepository.FindIngredientByID").Msg("failed to scan ingredient row")
		return models.Ingredient{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return ingredient, nil
}

// UpdateIngredient renames an ingredient scoped to userID.
// Returns [ErrIngredientNotFound] when the row is absent or owned by
// someone else.
func (r *ingredientRepository) UpdateIngredient(ctx context.Context, userID, ingredientID int64, name string) (models.Ingredient, error) {
	log := logger.FromContext(ctx)

	var ingredient models.Ingredient
	row := r.db.QueryRowContext(ctx, updateIngredient, name, ingredientID, userID)
	if err := row.Scan(&ingredient.ID, &ingredient.Name, &ingredient.UserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Ingredient{}, ErrIngredientNotFound
		}
		log.Err(err).Str("func", "*ingredientRepository.UpdateIngredient").Msg("failed to update ingredient")
		return models.Ingredient{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return ingredient, nil
}

// DeleteIngredient removes an ingredient scoped to userID.
// Returns [ErrIngredientNotFound] when no row was deleted.
func (r *ingredientRepository) DeleteIngredient(ctx context.Context, userID, ingredientID int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteIngredient, ingredientID, userID)
	if err != nil {
		log.Err(err).Str("func", "*ingredientRepository.DeleteIngredient").Msg("failed to delete ingredient")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrIngredientNotFound
	}

	return nil
}
