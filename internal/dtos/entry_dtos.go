package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/keyhaven/lockbox-service/internal/models"
)

/*
EntryRequest is the payload for POST /api/v1/entries. When the natural key
(property_name, unit_number) already exists the request is rejected with 409
unless Overwrite is set, in which case the existing entry is updated in place.
*/
type EntryRequest struct {
	PropertyName    string  `json:"property_name" validate:"required"`
	UnitNumber      string  `json:"unit_number" validate:"required"`
	LockboxLocation string  `json:"lockbox_location" validate:"required"`
	LockboxCode     string  `json:"lockbox_code" validate:"required"`
	Notes           *string `json:"notes,omitempty"`
	Overwrite       bool    `json:"overwrite,omitempty"`
}

/*
EntryUpdateRequest is the payload for PUT /api/v1/entries/{id}. All fields
are optional; absent fields are left untouched. Notes set to "" clears them.
*/
type EntryUpdateRequest struct {
	PropertyName    *string `json:"property_name,omitempty" validate:"omitempty,min=1"`
	UnitNumber      *string `json:"unit_number,omitempty" validate:"omitempty,min=1"`
	LockboxLocation *string `json:"lockbox_location,omitempty" validate:"omitempty,min=1"`
	LockboxCode     *string `json:"lockbox_code,omitempty" validate:"omitempty,min=1"`
	Notes           *string `json:"notes,omitempty"`
}

type EntryDTO struct {
	ID              uuid.UUID `json:"id"`
	PropertyName    string    `json:"property_name"`
	UnitNumber      string    `json:"unit_number"`
	LockboxLocation string    `json:"lockbox_location"`
	LockboxCode     string    `json:"lockbox_code"`
	Notes           *string   `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func EntryDTOFromModel(e *models.LockboxEntry) *EntryDTO {
	if e == nil {
		return nil
	}
	return &EntryDTO{
		ID:              e.ID,
		PropertyName:    e.PropertyName,
		UnitNumber:      e.UnitNumber,
		LockboxLocation: e.LockboxLocation,
		LockboxCode:     e.LockboxCode,
		Notes:           e.Notes,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

/*
LookupResponse answers the live "this already exists" check the form runs
while the user types a property/unit pair.
*/
type LookupResponse struct {
	Found bool      `json:"found"`
	Entry *EntryDTO `json:"entry,omitempty"`
}

/*
PageResponse is one page of the user's entries plus the session's position.
*/
type PageResponse struct {
	Entries    []*EntryDTO `json:"entries"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalCount int         `json:"total_count"`
	TotalPages int         `json:"total_pages"`
	HasMore    bool        `json:"has_more"`
}

type PageSizeRequest struct {
	PageSize int `json:"page_size" validate:"required,min=1,max=100"`
}

type PropertyNamesResponse struct {
	PropertyNames []string `json:"property_names"`
}

type UnitNumbersResponse struct {
	UnitNumbers []string `json:"unit_numbers"`
}
