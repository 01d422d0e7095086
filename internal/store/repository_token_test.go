package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cpwcao/recipe-app-api/internal/logger"
)

func newTestTokenRepo(t *testing.T) (*tokenRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &tokenRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func TestGetOrCreateToken_ReturnsExistingKey(t *testing.T) {
	repo, mock, db := newTestTokenRepo(t)
	defer db.Close()

	// the upsert returns the key already bound to the user,
	// not the freshly generated candidate
	rows := sqlmock.NewRows([]string{"key", "user_id", "created_at"}).
		AddRow("existing-key", int64(7), time.Now())

	mock.ExpectQuery("INSERT INTO auth_tokens").
		WithArgs("candidate-key", int64(7)).
		WillReturnRows(rows)

	token, err := repo.GetOrCreateToken(context.Background(), 7, "candidate-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token.Key != "existing-key" {
		t.Errorf("expected existing key, got %s", token.Key)
	}
	if token.UserID != 7 {
		t.Errorf("expected UserID=7, got %d", token.UserID)
	}
}

func TestFindUserIDByKey_Success(t *testing.T) {
	repo, mock, db := newTestTokenRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT user_id FROM auth_tokens").
		WithArgs("some-key").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(int64(5)))

	userID, err := repo.FindUserIDByKey(context.Background(), "some-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID != 5 {
		t.Errorf("expected userID=5, got %d", userID)
	}
}

func TestFindUserIDByKey_Unknown(t *testing.T) {
	repo, mock, db := newTestTokenRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT user_id FROM auth_tokens").
		WithArgs("bogus").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserIDByKey(context.Background(), "bogus")
	if !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound, got %v", err)
	}
}
