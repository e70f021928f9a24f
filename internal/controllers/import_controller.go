package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/keyhaven/lockbox-service/internal/services"
	"github.com/keyhaven/lockbox-service/internal/utils"
)

// Large enough for tens of thousands of rows; anything bigger is likely not
// a lockbox CSV.
const maxImportBytes = 10 << 20

type ImportController struct {
	importService services.ImportService
}

func NewImportController(is services.ImportService) *ImportController {
	return &ImportController{importService: is}
}

// ----------------------------------------------------------------
// POST /api/v1/entries/import  (body: text/csv)
// ----------------------------------------------------------------
func (c *ImportController) ImportCSVHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"Could not read CSV body", nil, err,
		)
		return
	}

	summary, err := c.importService.Import(r.Context(), userID, string(body))
	if err != nil {
		c.respondImportError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, summary)
}

func (c *ImportController) respondImportError(w http.ResponseWriter, err error) {
	var missingErr *services.MissingHeadersError
	var batchErr *services.BatchValidationError

	switch {
	case errors.Is(err, utils.ErrCSVEmpty):
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeCSVEmpty,
			"CSV file is empty or contains only headers", nil, err,
		)
	case errors.As(err, &missingErr):
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeCSVMissingHeaders,
			"CSV is missing required headers", missingErr.Missing, err,
		)
	case errors.As(err, &batchErr):
		// Batch rejected: every collected row error goes back in full.
		utils.RespondErrorWithCode(
			w, http.StatusUnprocessableEntity, utils.ErrCodeValidation,
			"Some rows in the CSV could not be validated; nothing was imported", batchErr.Rows, err,
		)
	default:
		respondServiceError(w, err, "Failed to import CSV")
	}
}
