package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cpwcao/recipe-app-api/internal/logger"
	"github.com/cpwcao/recipe-app-api/models"
)

// tagRepository is the PostgreSQL-backed implementation of [TagRepository].
// Every query is pinned to the owning user, so tags of other users behave
// exactly like absent rows.
type tagRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTagRepository constructs a [TagRepository] backed by the provided
// database connection and logger.
func NewTagRepository(db *DB, logger *logger.Logger) TagRepository {
	logger.Debug().Msg("creating tag repository")
	return &tagRepository{
		db:     db,
		logger: logger,
	}
}

// CreateTag persists a new tag owned by tag.UserID.
func (r *tagRepository) CreateTag(ctx context.Context, tag models.Tag) (models.Tag, error) {
	log := logger.FromContext(ctx)

	var created models.Tag
	row := r.db.QueryRowContext(ctx, createTag, tag.Name, tag.UserID)
	if err := row.Scan(&created.ID, &created.Name, &created.UserID); err != nil {
		log.Err(err).Str("func", "*tagRepository.CreateTag").Msg("failed to insert tag")
		return models.Tag{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// ListTags returns all tags owned by userID, newest first.
func (r *tagRepository) ListTags(ctx context.Context, userID int64) ([]models.Tag, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listTags, userID)
	if err != nil {
		log.Err(err).Str("func", "*tagRepository.ListTags").Int64("user_id", userID).Msg("failed to execute tag list query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	tags := make([]models.Tag, 0, 16)
	for rows.Next() {
		var tag models.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.UserID); err != nil {
			log.Err(err).Str("func", "*tagRepository.ListTags").Msg("failed to scan tag row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*tagRepository.ListTags").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return tags, nil
}

// FindTagByID retrieves a single tag scoped to userID.
// Returns [ErrTagNotFound] when the row is absent or owned by someone else.
func (r *tagRepository) FindTagByID(ctx context.Context, userID, tagID int64) (models.Tag, error) {
	log := logger.FromContext(ctx)

	var tag models.Tag
	row := r.db.QueryRowContext(ctx, findTagByID, tagID, userID)
	if err := row.Scan(&tag.ID, &tag.Name, &tag.UserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Tag{}, ErrTagNotFound
		}
		log.Err(err).Str("func", "*tagRepository.FindTagByID").Msg("failed to scan tag row")
		return models.Tag{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return tag, nil
}

// UpdateTag renames a tag scoped to userID.
// Returns [ErrTagNotFound] when the row is absent or owned by someone else.
func (r *tagRepository) UpdateTag(ctx context.Context, userID, tagID int64, name string) (models.Tag, error) {
	log := logger.FromContext(ctx)

	var tag models.Tag
	row := r.db.QueryRowContext(ctx, updateTag, name, tagID, userID)
	if err := row.Scan(&tag.ID, &tag.Name, &tag.UserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Tag{}, ErrTagNotFound
		}
		log.Err(err).Str("func", "*tagRepository.UpdateTag").Msg("failed to update tag")
		return models.Tag{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return tag, nil
}

// DeleteTag removes a tag scoped to userID. Association rows are removed by
// ON DELETE CASCADE; recipes referencing the tag are not touched.
// Returns [ErrTagNotFound] when no row was deleted.
func (r *tagRepository) DeleteTag(ctx context.Context, userID, tagID int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteTag, tagID, userID)
	if err != nil {
		log.Err(err).Str("func", "*tagRepository.DeleteTag").Msg("failed to delete tag")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrTagNotFound
	}

	return nil
}
