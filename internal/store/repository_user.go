package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cpwcao/recipe-app-api/internal/logger"
	"github.com/cpwcao/recipe-app-api/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles user account creation, lookup, profile updates and deletion
// against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with server-assigned fields (UserID, DateJoined).
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrEmailAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
//   - Scan failure → wrapped [ErrScanningRow].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser,
		user.Email, user.Name, user.Username, user.FirstName, user.LastName,
		user.PasswordHash, user.IsStaff, user.IsSuperuser)

	var created models.User
	if err := scanUser(row, &created); err != nil {
		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrEmailAlreadyExists
		case "":
			log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: scanning error")
			return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
		default:
			log.Err(err).Str("func", "*userRepository.CreateUser").Msg("unexpected DB error")
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return created, nil
}

// FindUserByEmail retrieves the user record whose email matches exactly.
// Returns [ErrNoUserWasFound] when no row matches.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	var found models.User
	row := r.db.QueryRowContext(ctx, findUserByEmail, email)
	if err := scanUser(row, &found); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.FindUserByEmail").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// FindUserByID retrieves the user record with the given identifier.
// Returns [ErrNoUserWasFound] when no row matches.
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	var found models.User
	row := r.db.QueryRowContext(ctx, findUserByID, userID)
	if err := scanUser(row, &found); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.FindUserByID").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// UpdateUser applies the non-nil fields of patch to the user row and returns
// the updated record.
//
// Error handling:
//   - Empty patch → the current row is returned unchanged.
//   - PostgreSQL unique_violation (23505) → [ErrEmailAlreadyExists].
//   - Missing row → [ErrNoUserWasFound].
func (r *userRepository) UpdateUser(ctx context.Context, patch models.UserPatch) (models.User, error) {
	log := logger.FromContext(ctx)

	if !hasUserPatchChanges(patch) {
		return r.FindUserByID(ctx, patch.UserID)
	}

	query, args, err := buildUpdateUserQuery(patch)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("failed to build update query")
		return models.User{}, err
	}

	var updated models.User
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := scanUser(row, &updated); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return models.User{}, ErrNoUserWasFound
		case postgresError(err) == pgerrcode.UniqueViolation:
			return models.User{}, ErrEmailAlreadyExists
		default:
			log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("error: scanning error")
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return updated, nil
}

// DeleteUser removes the user row. Tokens and owned resources are removed by
// the schema's ON DELETE CASCADE rules. Returns [ErrNoUserWasFound] when no
// row was deleted.
func (r *userRepository) DeleteUser(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteUser, userID)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Msg("error executing delete")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner, user *models.User) error {
	return row.Scan(
		&user.UserID,
		&user.Email,
		&user.Name,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.IsActive,
		&user.IsStaff,
		&user.IsSuperuser,
		&user.DateJoined,
	)
}
