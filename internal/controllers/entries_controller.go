package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/keyhaven/lockbox-service/internal/dtos"
	"github.com/keyhaven/lockbox-service/internal/services"
	"github.com/keyhaven/lockbox-service/internal/utils"
)

var entryValidate = validator.New()

type EntriesController struct {
	entryService services.EntryService
}

func NewEntriesController(es services.EntryService) *EntriesController {
	return &EntriesController{entryService: es}
}

// ----------------------------------------------------------------
// POST /api/v1/entries
// ----------------------------------------------------------------
func (c *EntriesController) CreateEntryHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	var body dtos.EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"Invalid JSON for entry payload", nil, err,
		)
		return
	}
	if err := entryValidate.Struct(body); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation,
			"Missing required entry fields", nil, err,
		)
		return
	}

	entry, overwritten, err := c.entryService.Create(r.Context(), userID, body)
	if err != nil {
		respondServiceError(w, err, "Failed to create entry")
		return
	}

	status := http.StatusCreated
	if overwritten {
		status = http.StatusOK
	}
	utils.RespondWithJSON(w, status, entry)
}

// ----------------------------------------------------------------
// PUT /api/v1/entries/{id}
// ----------------------------------------------------------------
func (c *EntriesController) UpdateEntryHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"Malformed entry id", nil, err,
		)
		return
	}

	var body dtos.EntryUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"Invalid JSON for entry update payload", nil, err,
		)
		return
	}
	if err := entryValidate.Struct(body); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation,
			"Updated fields must be non-empty", nil, err,
		)
		return
	}

	entry, err := c.entryService.Update(r.Context(), userID, id, body)
	if err != nil {
		respondServiceError(w, err, "Failed to update entry")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, entry)
}

// ----------------------------------------------------------------
// DELETE /api/v1/entries/{id}
// ----------------------------------------------------------------
func (c *EntriesController) DeleteEntryHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"Malformed entry id", nil, err,
		)
		return
	}

	if err := c.entryService.Delete(r.Context(), userID, id); err != nil {
		respondServiceError(w, err, "Failed to delete entry")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ----------------------------------------------------------------
// GET /api/v1/entries/lookup?property=..&unit=..
// ----------------------------------------------------------------
func (c *EntriesController) LookupEntryHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	property := r.URL.Query().Get("property")
	unit := r.URL.Query().Get("unit")
	if property == "" || unit == "" {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"property and unit query params are required", nil,
		)
		return
	}

	entry, err := c.entryService.Lookup(r.Context(), userID, property, unit)
	if err != nil {
		respondServiceError(w, err, "Failed to look up entry")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.LookupResponse{
		Found: entry != nil,
		Entry: entry,
	})
}

// ----------------------------------------------------------------
// GET /api/v1/properties
// ----------------------------------------------------------------
func (c *EntriesController) ListPropertyNamesHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}
	names, err := c.entryService.PropertyNames(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err, "Failed to list property names")
		return
	}
	if names == nil {
		names = []string{}
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.PropertyNamesResponse{PropertyNames: names})
}

// ----------------------------------------------------------------
// GET /api/v1/properties/units?property=..
// ----------------------------------------------------------------
func (c *EntriesController) ListUnitNumbersHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}
	property := r.URL.Query().Get("property")
	units, err := c.entryService.UnitNumbers(r.Context(), userID, property)
	if err != nil {
		respondServiceError(w, err, "Failed to list unit numbers")
		return
	}
	if units == nil {
		units = []string{}
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.UnitNumbersResponse{UnitNumbers: units})
}
