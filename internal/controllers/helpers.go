package controllers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/keyhaven/lockbox-service/internal/middleware"
	"github.com/keyhaven/lockbox-service/internal/utils"
)

// userIDFromRequest pulls the authenticated user out of the request context.
// A false return means the 401 response has already been written.
func userIDFromRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	ctxUserID := r.Context().Value(middleware.ContextKeyUserID)
	if ctxUserID == nil {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeUnauthorized,
			"No userID in context", nil,
		)
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(ctxUserID.(string))
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeUnauthorized,
			"Malformed userID in context", nil, err,
		)
		return uuid.Nil, false
	}
	return userID, true
}

// respondServiceError maps service-layer errors onto the wire taxonomy.
func respondServiceError(w http.ResponseWriter, err error, publicMessage string) {
	switch {
	case errors.Is(err, utils.ErrNotFound):
		utils.RespondErrorWithCode(
			w, http.StatusNotFound, utils.ErrCodeNotFound, "Entry not found", nil, err,
		)
	case errors.Is(err, utils.ErrExternalServiceFailure):
		utils.RespondErrorWithCode(
			w, http.StatusBadGateway, utils.ErrCodeExternalServiceFailure,
			"Suggestion service unavailable", nil, err,
		)
	default:
		var appErr *utils.AppError
		if errors.As(err, &appErr) {
			utils.HandleAppError(w, err)
			return
		}
		utils.RespondErrorWithCode(
			w, http.StatusInternalServerError, utils.ErrCodeInternal, publicMessage, nil, err,
		)
	}
}
