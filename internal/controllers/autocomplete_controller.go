package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/keyhaven/lockbox-service/internal/dtos"
	"github.com/keyhaven/lockbox-service/internal/services"
	"github.com/keyhaven/lockbox-service/internal/utils"
)

type AutocompleteController struct {
	autocomplete services.AutocompleteService
}

func NewAutocompleteController(as services.AutocompleteService) *AutocompleteController {
	return &AutocompleteController{autocomplete: as}
}

// ----------------------------------------------------------------
// POST /api/v1/autocomplete/property-name
// ----------------------------------------------------------------
func (c *AutocompleteController) PropertyNameHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	var body dtos.PropertyNameAutocompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"Invalid JSON for autocomplete payload", nil, err,
		)
		return
	}
	if err := entryValidate.Struct(body); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation,
			"property_name_prefix is required", nil, err,
		)
		return
	}

	resp, err := c.autocomplete.SuggestPropertyName(
		r.Context(), userID, body.PropertyNamePrefix, body.ExistingPropertyNames,
	)
	if err != nil {
		respondServiceError(w, err, "Failed to suggest property name")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ----------------------------------------------------------------
// POST /api/v1/autocomplete/unit-numbers
// ----------------------------------------------------------------
func (c *AutocompleteController) UnitNumbersHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	var body dtos.UnitNumberAutocompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"Invalid JSON for autocomplete payload", nil, err,
		)
		return
	}
	if err := entryValidate.Struct(body); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation,
			"property_name and user_input are required", nil, err,
		)
		return
	}

	resp, err := c.autocomplete.SuggestUnitNumbers(
		r.Context(), userID, body.PropertyName, body.UserInput, body.ExistingUnitNumbers,
	)
	if err != nil {
		respondServiceError(w, err, "Failed to suggest unit numbers")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
