package services

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/keyhaven/lockbox-service/internal/dtos"
	"github.com/keyhaven/lockbox-service/internal/models"
	"github.com/keyhaven/lockbox-service/internal/repositories"
	"github.com/keyhaven/lockbox-service/internal/utils"
)

// EntryService owns single-entry CRUD plus the natural-key lookup the form
// uses for its "this already exists" warning.
type EntryService interface {
	// Create inserts a new entry, or — when the natural key already exists
	// and req.Overwrite is set — updates the existing one in place. The bool
	// reports whether an existing entry was overwritten.
	Create(ctx context.Context, userID uuid.UUID, req dtos.EntryRequest) (*dtos.EntryDTO, bool, error)
	Update(ctx context.Context, userID, id uuid.UUID, req dtos.EntryUpdateRequest) (*dtos.EntryDTO, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Lookup(ctx context.Context, userID uuid.UUID, propertyName, unitNumber string) (*dtos.EntryDTO, error)

	PropertyNames(ctx context.Context, userID uuid.UUID) ([]string, error)
	UnitNumbers(ctx context.Context, userID uuid.UUID, propertyName string) ([]string, error)
}

type entryService struct {
	repo repositories.LockboxEntryRepository
}

func NewEntryService(repo repositories.LockboxEntryRepository) EntryService {
	return &entryService{repo: repo}
}

func (s *entryService) Create(ctx context.Context, userID uuid.UUID, req dtos.EntryRequest) (*dtos.EntryDTO, bool, error) {
	// Lookup-before-insert: the store has no uniqueness constraint on the
	// natural key, so the check lives here. Single writer per session, so the
	// check-then-write window is accepted.
	existing, err := s.repo.FindByPropertyAndUnit(ctx, userID, req.PropertyName, req.UnitNumber)
	if err != nil {
		return nil, false, err
	}

	if existing != nil {
		if !req.Overwrite {
			return nil, false, &utils.AppError{
				StatusCode: http.StatusConflict,
				Code:       utils.ErrCodeConflict,
				Message:    "An entry for this property and unit already exists",
				Details:    dtos.EntryDTOFromModel(existing),
			}
		}
		upd := repositories.EntryUpdate{
			LockboxLocation: &req.LockboxLocation,
			LockboxCode:     &req.LockboxCode,
			Notes:           req.Notes,
		}
		if err := s.repo.Update(ctx, userID, existing.ID, upd); err != nil {
			return nil, false, err
		}
		updated, err := s.repo.GetByID(ctx, userID, existing.ID)
		if err != nil {
			return nil, false, err
		}
		return dtos.EntryDTOFromModel(updated), true, nil
	}

	e := &models.LockboxEntry{
		ID:              uuid.New(),
		UserID:          userID,
		PropertyName:    req.PropertyName,
		UnitNumber:      req.UnitNumber,
		LockboxLocation: req.LockboxLocation,
		LockboxCode:     req.LockboxCode,
		Notes:           req.Notes,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, false, err
	}
	return dtos.EntryDTOFromModel(e), false, nil
}

func (s *entryService) Update(ctx context.Context, userID, id uuid.UUID, req dtos.EntryUpdateRequest) (*dtos.EntryDTO, error) {
	upd := repositories.EntryUpdate{
		PropertyName:    req.PropertyName,
		UnitNumber:      req.UnitNumber,
		LockboxLocation: req.LockboxLocation,
		LockboxCode:     req.LockboxCode,
		Notes:           req.Notes,
	}
	if err := s.repo.Update(ctx, userID, id, upd); err != nil {
		return nil, err
	}
	e, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, utils.ErrNotFound
	}
	return dtos.EntryDTOFromModel(e), nil
}

func (s *entryService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.Delete(ctx, userID, id)
}

func (s *entryService) Lookup(ctx context.Context, userID uuid.UUID, propertyName, unitNumber string) (*dtos.EntryDTO, error) {
	if propertyName == "" || unitNumber == "" {
		return nil, nil
	}
	e, err := s.repo.FindByPropertyAndUnit(ctx, userID, propertyName, unitNumber)
	if err != nil {
		return nil, err
	}
	return dtos.EntryDTOFromModel(e), nil
}

func (s *entryService) PropertyNames(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return s.repo.DistinctPropertyNames(ctx, userID)
}

func (s *entryService) UnitNumbers(ctx context.Context, userID uuid.UUID, propertyName string) ([]string, error) {
	if propertyName == "" {
		return []string{}, nil
	}
	return s.repo.DistinctUnitNumbers(ctx, userID, propertyName)
}
