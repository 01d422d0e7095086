package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cpwcao/recipe-app-api/internal/logger"
	"github.com/cpwcao/recipe-app-api/internal/service"
	"github.com/cpwcao/recipe-app-api/internal/store"
	"github.com/cpwcao/recipe-app-api/internal/utils"
	"github.com/cpwcao/recipe-app-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// authProbe returns a handler asserting the auth middleware stored the
// expected user ID in the request context.
func authProbe(t *testing.T, wantUserID int64, called *bool) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		userID, ok := utils.GetUserIDFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, wantUserID, userID)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	h := NewHandler(&service.Services{AuthService: &mockAuthService{}}, logger.Nop())

	called := false
	protected := h.auth(authProbe(t, 0, &called))

	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/recipes", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
	assert.Contains(t, rec.Body.String(), "credentials were not provided")
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	h := NewHandler(&service.Services{AuthService: &mockAuthService{}}, logger.Nop())

	called := false
	protected := h.auth(authProbe(t, 0, &called))

	req := httptest.NewRequest(http.MethodGet, "/api/recipes", nil)
	req.Header.Set("Authorization", "just-a-token-without-scheme")

	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthMiddleware_UnknownKey(t *testing.T) {
	auth := &mockAuthService{
		authenticateFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{}, store.ErrTokenNotFound
		},
	}
	h := NewHandler(&service.Services{AuthService: auth}, logger.Nop())

	called := false
	protected := h.auth(authProbe(t, 0, &called))

	req := httptest.NewRequest(http.MethodGet, "/api/recipes", nil)
	req.Header.Set("Authorization", "Bearer bogus-key")

	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
	assert.Contains(t, rec.Body.String(), "invalid token")
}

func TestAuthMiddleware_ValidKeyPassesUserID(t *testing.T) {
	auth := &mockAuthService{
		authenticateFn: func(_ context.Context, key string) (models.User, error) {
			require.Equal(t, "valid-key", key)
			return models.User{UserID: 42, IsActive: true}, nil
		},
	}
	h := NewHandler(&service.Services{AuthService: auth}, logger.Nop())

	called := false
	protected := h.auth(authProbe(t, 42, &called))

	req := httptest.NewRequest(http.MethodGet, "/api/recipes", nil)
	req.Header.Set("Authorization", "Bearer valid-key")

	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}
