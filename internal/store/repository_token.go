package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cpwcao/recipe-app-api/internal/logger"
	"github.com/cpwcao/recipe-app-api/models"
)

// tokenRepository is the PostgreSQL-backed implementation of
// [TokenRepository]. Tokens are opaque keys in the "auth_tokens" table with
// a one-to-one binding to users enforced by a UNIQUE constraint.
type tokenRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTokenRepository constructs a [TokenRepository] backed by the provided
// database connection and logger.
func NewTokenRepository(db *DB, logger *logger.Logger) TokenRepository {
	logger.Debug().Msg("creating token repository")
	return &tokenRepository{
		db:     db,
		logger: logger,
	}
}

// GetOrCreateToken returns the user's existing token, or stores candidateKey
// as the new token when none exists yet. The upsert resolves both cases in
// one statement, so concurrent logins for the same user cannot issue two
// different keys.
func (r *tokenRepository) GetOrCreateToken(ctx context.Context, userID int64, candidateKey string) (models.Token, error) {
	log := logger.FromContext(ctx)

	var token models.Token
	row := r.db.QueryRowContext(ctx, getOrCreateToken, candidateKey, userID)
	if err := row.Scan(&token.Key, &token.UserID, &token.CreatedAt); err != nil {
		log.Err(err).Str("func", "*tokenRepository.GetOrCreateToken").Int64("user_id", userID).Msg("failed to upsert auth token")
		return models.Token{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return token, nil
}

// FindUserIDByKey resolves a bearer key to its owning user.
// Returns [ErrTokenNotFound] when the key is unknown.
func (r *tokenRepository) FindUserIDByKey(ctx context.Context, key string) (int64, error) {
	log := logger.FromContext(ctx)

	var userID int64
	row := r.db.QueryRowContext(ctx, findTokenUser, key)
	if err := row.Scan(&userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrTokenNotFound
		}
		log.Err(err).Str("func", "*tokenRepository.FindUserIDByKey").Msg("failed to look up auth token")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return userID, nil
}
