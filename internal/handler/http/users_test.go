package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cpwcao/recipe-app-api/internal/service"
	"github.com/cpwcao/recipe-app-api/internal/store"
	"github.com/cpwcao/recipe-app-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterEndpoint_Success(t *testing.T) {
	auth := &mockAuthService{
		registerFn: func(_ context.Context, request models.RegisterRequest) (models.User, error) {
			return models.User{UserID: 1, Email: request.Email, Name: request.Name, IsActive: true}, nil
		},
	}
	router := newTestRouter(t, &service.Services{AuthService: auth})

	body := `{"email":"alice@example.com","password":"secret-password","name":"Alice"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users/", strings.NewReader(body))
	rec := doRequest(router, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	assert.Equal(t, "alice@example.com", decoded["email"])
	// the password must never appear in any form
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestRegisterEndpoint_InvalidJSON(t *testing.T) {
	router := newTestRouter(t, &service.Services{AuthService: &mockAuthService{}})

	req := httptest.NewRequest(http.MethodPost, "/api/users/", strings.NewReader("{not json"))
	rec := doRequest(router, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Message)
}

func TestRegisterEndpoint_DuplicateEmail(t *testing.T) {
	auth := &mockAuthService{
		registerFn: func(_ context.Context, _ models.RegisterRequest) (models.User, error) {
			return models.User{}, store.ErrEmailAlreadyExists
		},
	}
	router := newTestRouter(t, &service.Services{AuthService: auth})

	body := `{"email":"taken@example.com","password":"secret-password"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users/", strings.NewReader(body))
	rec := doRequest(router, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTokenEndpoint_Success(t *testing.T) {
	auth := &mockAuthService{
		issueTokenFn: func(_ context.Context, request models.TokenRequest) (models.Token, error) {
			return models.Token{Key: "issued-key"}, nil
		},
	}
	router := newTestRouter(t, &service.Services{AuthService: auth})

	body := `{"email":"alice@example.com","password":"secret-password"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users/token/", strings.NewReader(body))
	rec := doRequest(router, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"token":"issued-key"}`, rec.Body.String())
}

func TestTokenEndpoint_WrongCredentials(t *testing.T) {
	auth := &mockAuthService{
		issueTokenFn: func(_ context.Context, _ models.TokenRequest) (models.Token, error) {
			return models.Token{}, service.ErrWrongCredentials
		},
	}
	router := newTestRouter(t, &service.Services{AuthService: auth})

	body := `{"email":"alice@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users/token/", strings.NewReader(body))
	rec := doRequest(router, req)

	// bad credentials on the login form are a client error, not a stale token
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProfileEndpoint_ReturnsCurrentUser(t *testing.T) {
	auth := authAsUser(7)
	auth.profileFn = func(_ context.Context, userID int64) (models.User, error) {
		return models.User{UserID: userID, Email: "alice@example.com"}, nil
	}
	router := newTestRouter(t, &service.Services{AuthService: auth})

	req := authorize(httptest.NewRequest(http.MethodGet, "/api/users/me/", nil))
	rec := doRequest(router, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	assert.Equal(t, "alice@example.com", decoded["email"])
}

func TestProfileEndpoint_RequiresAuth(t *testing.T) {
	router := newTestRouter(t, &service.Services{AuthService: &mockAuthService{}})

	req := httptest.NewRequest(http.MethodGet, "/api/users/me/", nil)
	rec := doRequest(router, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "message")
}

func TestUpdateProfileEndpoint_Patch(t *testing.T) {
	var gotUpdate models.UserUpdate
	auth := authAsUser(7)
	auth.updateProfileFn = func(_ context.Context, userID int64, update models.UserUpdate) (models.User, error) {
		gotUpdate = update
		return models.User{UserID: userID, Name: *update.Name}, nil
	}
	router := newTestRouter(t, &service.Services{AuthService: auth})

	req := authorize(httptest.NewRequest(http.MethodPatch, "/api/users/me/", strings.NewReader(`{"name":"New Name"}`)))
	rec := doRequest(router, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotUpdate.Name)
	assert.Equal(t, "New Name", *gotUpdate.Name)
	assert.Nil(t, gotUpdate.Email)
}

func TestDeleteProfileEndpoint(t *testing.T) {
	deleted := false
	auth := authAsUser(7)
	auth.deleteAccountFn = func(_ context.Context, userID int64) error {
		deleted = true
		return nil
	}
	router := newTestRouter(t, &service.Services{AuthService: auth})

	req := authorize(httptest.NewRequest(http.MethodDelete, "/api/users/me/", nil))
	rec := doRequest(router, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, deleted)
}
