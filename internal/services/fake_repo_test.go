package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/keyhaven/lockbox-service/internal/models"
	"github.com/keyhaven/lockbox-service/internal/repositories"
	"github.com/keyhaven/lockbox-service/internal/utils"
)

// fakeEntryRepo is an in-memory LockboxEntryRepository with the same
// contract as the pgx implementation: owner-scoped everything, keyset
// pagination over (property_name, unit_number), ErrNotFound on zero-row
// updates and deletes.
type fakeEntryRepo struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*models.LockboxEntry

	creates int
	updates int
	deletes int
}

func newFakeEntryRepo() *fakeEntryRepo {
	return &fakeEntryRepo{entries: make(map[uuid.UUID]*models.LockboxEntry)}
}

var _ repositories.LockboxEntryRepository = (*fakeEntryRepo)(nil)

func (f *fakeEntryRepo) Create(_ context.Context, e *models.LockboxEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now
	cp := *e
	f.entries[e.ID] = &cp
	f.creates++
	return nil
}

func (f *fakeEntryRepo) GetByID(_ context.Context, userID, id uuid.UUID) (*models.LockboxEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[id]
	if !ok || e.UserID != userID {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEntryRepo) FindByPropertyAndUnit(_ context.Context, userID uuid.UUID, propertyName, unitNumber string) (*models.LockboxEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.UserID == userID && e.PropertyName == propertyName && e.UnitNumber == unitNumber {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeEntryRepo) ListPage(_ context.Context, userID uuid.UUID, pageSize int, after *models.EntryCursor) ([]*models.LockboxEntry, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	sorted := f.sortedByUser(userID)
	var out []*models.LockboxEntry
	for _, e := range sorted {
		if after != nil && !cursorLess(after, e) {
			continue
		}
		cp := *e
		out = append(out, &cp)
		if len(out) == pageSize+1 {
			break
		}
	}
	hasMore := len(out) > pageSize
	if hasMore {
		out = out[:pageSize]
	}
	return out, hasMore, nil
}

func (f *fakeEntryRepo) CountByUser(_ context.Context, userID uuid.UUID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, e := range f.entries {
		if e.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeEntryRepo) DistinctPropertyNames(_ context.Context, userID uuid.UUID) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := map[string]bool{}
	var out []string
	for _, e := range f.entries {
		if e.UserID == userID && !seen[e.PropertyName] {
			seen[e.PropertyName] = true
			out = append(out, e.PropertyName)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (f *fakeEntryRepo) DistinctUnitNumbers(_ context.Context, userID uuid.UUID, propertyName string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := map[string]bool{}
	var out []string
	for _, e := range f.entries {
		if e.UserID == userID && e.PropertyName == propertyName && !seen[e.UnitNumber] {
			seen[e.UnitNumber] = true
			out = append(out, e.UnitNumber)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (f *fakeEntryRepo) Update(_ context.Context, userID, id uuid.UUID, upd repositories.EntryUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[id]
	if !ok || e.UserID != userID {
		return utils.ErrNotFound
	}
	if upd.PropertyName != nil {
		e.PropertyName = *upd.PropertyName
	}
	if upd.UnitNumber != nil {
		e.UnitNumber = *upd.UnitNumber
	}
	if upd.LockboxLocation != nil {
		e.LockboxLocation = *upd.LockboxLocation
	}
	if upd.LockboxCode != nil {
		e.LockboxCode = *upd.LockboxCode
	}
	if upd.Notes != nil {
		notes := *upd.Notes
		e.Notes = &notes
	}
	e.UpdatedAt = time.Now()
	f.updates++
	return nil
}

func (f *fakeEntryRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[id]
	if !ok || e.UserID != userID {
		return utils.ErrNotFound
	}
	delete(f.entries, id)
	f.deletes++
	return nil
}

/* ---------- helpers ---------- */

func (f *fakeEntryRepo) sortedByUser(userID uuid.UUID) []*models.LockboxEntry {
	var out []*models.LockboxEntry
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PropertyName != out[j].PropertyName {
			return out[i].PropertyName < out[j].PropertyName
		}
		return out[i].UnitNumber < out[j].UnitNumber
	})
	return out
}

// cursorLess reports whether the cursor sorts strictly before the entry.
func cursorLess(c *models.EntryCursor, e *models.LockboxEntry) bool {
	if c.PropertyName != e.PropertyName {
		return c.PropertyName < e.PropertyName
	}
	return c.UnitNumber < e.UnitNumber
}

func seedEntry(repo *fakeEntryRepo, userID uuid.UUID, property, unit string) *models.LockboxEntry {
	e := &models.LockboxEntry{
		ID:              uuid.New(),
		UserID:          userID,
		PropertyName:    property,
		UnitNumber:      unit,
		LockboxLocation: "front door",
		LockboxCode:     "1234",
	}
	_ = repo.Create(context.Background(), e)
	return e
}
