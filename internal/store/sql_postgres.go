package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cpwcao/recipe-app-api/internal/config"
	"github.com/cpwcao/recipe-app-api/internal/logger"
	"github.com/cpwcao/recipe-app-api/migrations"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// connectAttempts and connectRetryInterval bound how long startup waits for a
// database that is still booting, e.g. when the server container comes up
// before PostgreSQL accepts connections.
const (
	connectAttempts      = 10
	connectRetryInterval = time.Second
)

type DB struct {
	*sql.DB
	logger *logger.Logger
}

func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	// establish connection
	conn, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	// setup connections
	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(4)

	// ping database, waiting out a PostgreSQL that is still starting
	err = waitForDatabase(ctx, conn, connectAttempts, connectRetryInterval, log)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error connecting database (ping)")
		return nil, err
	}
	log.Info().Str("func", "NewConnectPostgres").Msg("connected to database successfully")

	db := &DB{
		DB:     conn,
		logger: log,
	}

	return db, nil
}

// pinger is satisfied by *sql.DB.
type pinger interface {
	PingContext(ctx context.Context) error
}

// waitForDatabase pings the database until it responds, retrying up to
// attempts times with the given interval between tries. Returns the last
// ping error when every attempt fails, or the context error when ctx is
// cancelled while waiting.
func waitForDatabase(ctx context.Context, db pinger, attempts int, interval time.Duration, log *logger.Logger) error {
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = db.PingContext(ctx); err == nil {
			return nil
		}
		if attempt == attempts {
			break
		}

		log.Warn().Err(err).Int("attempt", attempt).Msg("database not ready yet, retrying")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}

	return err
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

// withTx begins a transaction, runs fn with the transactional handle, and
// then commits on success or rolls back on error/panic. Panics are rethrown.
func (db *DB) withTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if commitErr := tx.Commit(); commitErr != nil {
			err = fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
		}
	}()

	err = fn(tx)
	return err
}

func postgresError(err error) string {
	var pgErr *pgconn.PgError
	// if postgres returns error
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}
