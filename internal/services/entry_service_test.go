package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyhaven/lockbox-service/internal/dtos"
	"github.com/keyhaven/lockbox-service/internal/utils"
)

func TestCreateThenLookupRoundTrip(t *testing.T) {
	repo := newFakeEntryRepo()
	svc := NewEntryService(repo)
	userID := uuid.New()

	created, overwritten, err := svc.Create(context.Background(), userID, dtos.EntryRequest{
		PropertyName:    "Main Street Complex",
		UnitNumber:      "101",
		LockboxLocation: "front door",
		LockboxCode:     "1234",
		Notes:           utils.Ptr("first floor"),
	})
	require.NoError(t, err)
	assert.False(t, overwritten)
	assert.NotEqual(t, uuid.Nil, created.ID)

	found, err := svc.Lookup(context.Background(), userID, "Main Street Complex", "101")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "1234", found.LockboxCode)
	require.NotNil(t, found.Notes)
	assert.Equal(t, "first floor", *found.Notes)
}

func TestLookupMissingAndBlankArgs(t *testing.T) {
	svc := NewEntryService(newFakeEntryRepo())
	userID := uuid.New()

	found, err := svc.Lookup(context.Background(), userID, "Nowhere", "1")
	require.NoError(t, err)
	assert.Nil(t, found)

	found, err = svc.Lookup(context.Background(), userID, "", "1")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestCreateDuplicateConflicts(t *testing.T) {
	repo := newFakeEntryRepo()
	svc := NewEntryService(repo)
	userID := uuid.New()

	req := dtos.EntryRequest{
		PropertyName:    "Main Street Complex",
		UnitNumber:      "101",
		LockboxLocation: "front door",
		LockboxCode:     "1234",
	}
	first, _, err := svc.Create(context.Background(), userID, req)
	require.NoError(t, err)

	req.LockboxCode = "9999"
	_, _, err = svc.Create(context.Background(), userID, req)

	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.StatusCode)
	assert.Equal(t, utils.ErrCodeConflict, appErr.Code)

	// The conflicting entry rides along so the client can offer overwrite.
	existing, ok := appErr.Details.(*dtos.EntryDTO)
	require.True(t, ok)
	assert.Equal(t, first.ID, existing.ID)
	assert.Equal(t, "1234", existing.LockboxCode)

	assert.Equal(t, 1, repo.creates)
}

func TestCreateWithOverwriteUpdatesInPlace(t *testing.T) {
	repo := newFakeEntryRepo()
	svc := NewEntryService(repo)
	userID := uuid.New()

	req := dtos.EntryRequest{
		PropertyName:    "Main Street Complex",
		UnitNumber:      "101",
		LockboxLocation: "front door",
		LockboxCode:     "1234",
	}
	first, _, err := svc.Create(context.Background(), userID, req)
	require.NoError(t, err)

	req.LockboxCode = "9999"
	req.LockboxLocation = "back gate"
	req.Overwrite = true
	second, overwritten, err := svc.Create(context.Background(), userID, req)
	require.NoError(t, err)

	assert.True(t, overwritten)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "9999", second.LockboxCode)
	assert.Equal(t, "back gate", second.LockboxLocation)

	n, err := repo.CountByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSameKeyDifferentUsersDoNotConflict(t *testing.T) {
	svc := NewEntryService(newFakeEntryRepo())
	req := dtos.EntryRequest{
		PropertyName:    "Main Street Complex",
		UnitNumber:      "101",
		LockboxLocation: "front door",
		LockboxCode:     "1234",
	}

	_, _, err := svc.Create(context.Background(), uuid.New(), req)
	require.NoError(t, err)
	_, _, err = svc.Create(context.Background(), uuid.New(), req)
	require.NoError(t, err)
}

func TestUpdatePartialFields(t *testing.T) {
	repo := newFakeEntryRepo()
	svc := NewEntryService(repo)
	userID := uuid.New()
	seeded := seedEntry(repo, userID, "Maple Ave", "1A")

	updated, err := svc.Update(context.Background(), userID, seeded.ID, dtos.EntryUpdateRequest{
		LockboxCode: utils.Ptr("0000"),
	})
	require.NoError(t, err)

	assert.Equal(t, "0000", updated.LockboxCode)
	// Untouched fields keep their values.
	assert.Equal(t, "Maple Ave", updated.PropertyName)
	assert.Equal(t, "front door", updated.LockboxLocation)
}

func TestUpdateMissingEntry(t *testing.T) {
	svc := NewEntryService(newFakeEntryRepo())

	_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), dtos.EntryUpdateRequest{
		LockboxCode: utils.Ptr("0000"),
	})
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestDeleteMissingEntryLeavesStateUntouched(t *testing.T) {
	repo := newFakeEntryRepo()
	svc := NewEntryService(repo)
	userID := uuid.New()
	seedEntry(repo, userID, "Maple Ave", "1A")

	err := svc.Delete(context.Background(), userID, uuid.New())
	assert.ErrorIs(t, err, utils.ErrNotFound)

	n, err := repo.CountByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 0, repo.deletes)
}

func TestDeleteIsOwnerScoped(t *testing.T) {
	repo := newFakeEntryRepo()
	svc := NewEntryService(repo)
	alice := uuid.New()
	bob := uuid.New()
	seeded := seedEntry(repo, alice, "Maple Ave", "1A")

	err := svc.Delete(context.Background(), bob, seeded.ID)
	assert.ErrorIs(t, err, utils.ErrNotFound)

	require.NoError(t, svc.Delete(context.Background(), alice, seeded.ID))
}

func TestUnitNumbersBlankPropertyIsEmpty(t *testing.T) {
	repo := newFakeEntryRepo()
	svc := NewEntryService(repo)
	userID := uuid.New()
	seedEntry(repo, userID, "Maple Ave", "1A")

	units, err := svc.UnitNumbers(context.Background(), userID, "")
	require.NoError(t, err)
	assert.Empty(t, units)

	units, err = svc.UnitNumbers(context.Background(), userID, "Maple Ave")
	require.NoError(t, err)
	assert.Equal(t, []string{"1A"}, units)
}
