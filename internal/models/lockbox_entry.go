package models

import (
	"time"

	"github.com/google/uuid"
)

// LockboxEntry records where the lockbox for a given unit hangs and what
// code opens it. One entry per (user_id, property_name, unit_number);
// uniqueness is enforced by lookup-before-insert in the service layer, not
// by a constraint in the store.
type LockboxEntry struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	PropertyName    string    `json:"property_name"`
	UnitNumber      string    `json:"unit_number"`
	LockboxLocation string    `json:"lockbox_location"`
	LockboxCode     string    `json:"lockbox_code"`
	Notes           *string   `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Cursor returns the sort-key pair of this entry, used to resume a
// range query strictly after it.
func (e *LockboxEntry) Cursor() *EntryCursor {
	return &EntryCursor{PropertyName: e.PropertyName, UnitNumber: e.UnitNumber}
}

// EntryCursor is an opaque position marker in the
// (property_name, unit_number) sort order. Ephemeral: it lives only in the
// page session, never in the store.
type EntryCursor struct {
	PropertyName string `json:"property_name"`
	UnitNumber   string `json:"unit_number"`
}
