package http

import (
	"errors"
	"net/http"

	"github.com/cpwcao/recipe-app-api/internal/logger"
	"github.com/cpwcao/recipe-app-api/internal/service"
	"github.com/cpwcao/recipe-app-api/internal/store"
	"github.com/cpwcao/recipe-app-api/internal/utils"
	"github.com/cpwcao/recipe-app-api/models"
)

// errorStatusMap routes every known business error to its HTTP status.
//
// Two deliberate choices:
//   - Wrong login credentials map to 400, not 401: the caller is not holding
//     a stale token, the submitted form is simply wrong.
//   - Cross-user access is indistinguishable from a missing row by the time
//     the error surfaces, so both arrive here as not-found and map to 404,
//     never 403.
var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrInvalidEmail:        http.StatusBadRequest,
	service.ErrPasswordTooShort:    http.StatusBadRequest,
	service.ErrWrongCredentials:    http.StatusBadRequest,
	service.ErrInvalidImage:        http.StatusBadRequest,

	store.ErrEmailAlreadyExists:   http.StatusBadRequest,
	store.ErrRelatedItemsNotFound: http.StatusBadRequest,
	store.ErrNoUserWasFound:       http.StatusNotFound,
	store.ErrTagNotFound:          http.StatusNotFound,
	store.ErrIngredientNotFound:   http.StatusNotFound,
	store.ErrRecipeNotFound:       http.StatusNotFound,
	store.ErrTokenNotFound:        http.StatusUnauthorized,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError renders err as the uniform JSON error body with the mapped
// status. Internal errors are logged and masked behind a generic message so
// that driver details never leak to clients.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.FromRequest(r).Err(err).Msg("request failed with internal error")
		message = http.StatusText(http.StatusInternalServerError)
	}

	utils.WriteJSON(w, models.ErrorResponse{Message: message}, status)
}
