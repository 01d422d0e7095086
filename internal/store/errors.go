package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an attempt to register a new user
	// fails because a user with the same email already exists in the database.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least one
	// user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrTokenNotFound is returned when a bearer key does not resolve to any
	// stored auth token.
	ErrTokenNotFound = errors.New("auth token was not found")

	// ErrTagNotFound is returned when a tag lookup scoped to the requesting
	// user produces no row. Tags owned by other users are reported the same
	// way so that their existence does not leak.
	ErrTagNotFound = errors.New("tag was not found")

	// ErrIngredientNotFound is the ingredient counterpart of ErrTagNotFound.
	ErrIngredientNotFound = errors.New("ingredient was not found")

	// ErrRecipeNotFound is returned when a recipe lookup scoped to the
	// requesting user produces no row.
	ErrRecipeNotFound = errors.New("recipe was not found")

	// ErrRelatedItemsNotFound is returned when a recipe association references
	// tag or ingredient IDs that do not exist or belong to a different user.
	// The surrounding transaction is rolled back, so no partial recipe
	// remains after this error.
	ErrRelatedItemsNotFound = errors.New("related tags or ingredients were not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
