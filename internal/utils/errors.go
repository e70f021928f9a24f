package utils

import (
	"errors"
	"net/http"
)

// Domain-level errors used by the service layer to provide
// fine-grained failure reasons.
var (
	// ErrNotFound means a store operation referenced a record that does not
	// exist (for that user).
	ErrNotFound = errors.New("not_found")

	// ErrStaleCursor means the page session has no recorded cursor for the
	// requested page. Pagination is sequential-access-only; the caller should
	// reset to page 1.
	ErrStaleCursor = errors.New("stale_cursor")

	// ErrPageOutOfRange means a next/prev intent past the first or last page.
	ErrPageOutOfRange = errors.New("page_out_of_range")

	// ErrCSVEmpty means the uploaded CSV had no data rows.
	ErrCSVEmpty = errors.New("csv_empty")

	// ErrExternalServiceFailure covers failures of the text-generation
	// backend (network/auth/quota/malformed response).
	ErrExternalServiceFailure = errors.New("external_service_failure")
)

// AppError for structured error handling from services to controllers.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Details    any
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, appErr.Details, appErr.Err)
	} else {
		// Fallback for unexpected error types
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}
