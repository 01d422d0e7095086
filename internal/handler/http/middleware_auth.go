package http

import (
	"context"
	"net/http"

	"github.com/cpwcao/recipe-app-api/internal/logger"
	"github.com/cpwcao/recipe-app-api/internal/utils"
	"github.com/cpwcao/recipe-app-api/models"
)

// auth is an HTTP middleware that enforces bearer-token authentication.
//
// It inspects the incoming "Authorization" header, extracts the opaque
// bearer key, resolves it to a user via [service.AuthService.Authenticate],
// and — on success — stores the authenticated user's ID in the request
// context under [utils.UserIDCtxKey] before delegating to the next handler.
//
// The middleware rejects requests with HTTP 401 Unauthorized in the
// following cases:
//   - The "Authorization" header is absent ([ErrEmptyAuthorizationHeader]).
//   - The header value cannot be parsed as a bearer credential
//     ([ErrInvalidAuthorizationHeader]).
//   - The key is unknown or its account has been deactivated.
//
// All rejection events are logged using the context-scoped logger obtained
// via [logger.FromRequest].
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			utils.WriteJSON(w, models.ErrorResponse{Message: ErrEmptyAuthorizationHeader.Error()}, http.StatusUnauthorized)
			return
		}

		key, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Send()
			utils.WriteJSON(w, models.ErrorResponse{Message: ErrInvalidAuthorizationHeader.Error()}, http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		user, err := h.services.AuthService.Authenticate(ctx, key)
		if err != nil {
			log.Err(err).Msg("bearer token rejected")
			utils.WriteJSON(w, models.ErrorResponse{Message: "invalid token"}, http.StatusUnauthorized)
			return
		}

		// Store the authenticated user's ID in the context so that downstream
		// handlers can retrieve it without re-resolving the token.
		ctx = context.WithValue(ctx, utils.UserIDCtxKey, user.UserID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
