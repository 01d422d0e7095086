package store

import (
	"context"
	"fmt"

	"github.com/cpwcao/recipe-app-api/internal/config"
	"github.com/cpwcao/recipe-app-api/internal/logger"
)

// Storages bundles every persistence backend the services depend on:
// the relational repositories and the image store.
type Storages struct {
	UserRepository       UserRepository
	TokenRepository      TokenRepository
	TagRepository        TagRepository
	IngredientRepository IngredientRepository
	RecipeRepository     RecipeRepository
	ImageStorage         ImageStorage

	db *DB
}

// NewStorages connects to PostgreSQL, applies pending migrations, selects the
// image backend (S3 when a bucket is configured, local filesystem otherwise)
// and wires all repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		log.Err(err).Str("func", "NewStorages").Msg("failed to apply migrations")
		return nil, fmt.Errorf("applying migrations: %w", err)
	}

	var images ImageStorage
	if cfg.Images.S3.Bucket != "" {
		images, err = NewS3ImageStorage(ctx, cfg.Images.S3, log)
		if err != nil {
			db.Close()
			return nil, err
		}
	} else {
		images = NewFileImageStorage(cfg.Images.Dir, log)
	}

	return &Storages{
		UserRepository:       NewUserRepository(db, log),
		TokenRepository:      NewTokenRepository(db, log),
		TagRepository:        NewTagRepository(db, log),
		IngredientRepository: NewIngredientRepository(db, log),
		RecipeRepository:     NewRecipeRepository(db, log),
		ImageStorage:         images,
		db:                   db,
	}, nil
}

// Close releases the underlying database connection pool.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
