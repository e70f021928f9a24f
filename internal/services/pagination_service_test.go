package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyhaven/lockbox-service/internal/dtos"
	"github.com/keyhaven/lockbox-service/internal/utils"
)

// seedSequential creates n entries whose sort order is their creation order.
func seedSequential(repo *fakeEntryRepo, userID uuid.UUID, n int) []string {
	keys := make([]string, 0, n)
	for i := 0; i < n; i++ {
		property := fmt.Sprintf("Property %02d", i/3)
		unit := fmt.Sprintf("%03d", i%3)
		seedEntry(repo, userID, property, unit)
		keys = append(keys, property+"/"+unit)
	}
	return keys
}

func collectKeys(pages ...*dtos.PageResponse) []string {
	var out []string
	for _, p := range pages {
		for _, e := range p.Entries {
			out = append(out, e.PropertyName+"/"+e.UnitNumber)
		}
	}
	return out
}

func TestForwardTraversalVisitsEveryEntryOnce(t *testing.T) {
	for _, tc := range []struct {
		total, pageSize int
	}{
		{total: 10, pageSize: 3},
		{total: 9, pageSize: 3},
		{total: 1, pageSize: 10},
		{total: 25, pageSize: 10},
	} {
		t.Run(fmt.Sprintf("n=%d size=%d", tc.total, tc.pageSize), func(t *testing.T) {
			repo := newFakeEntryRepo()
			userID := uuid.New()
			want := seedSequential(repo, userID, tc.total)

			svc := NewPaginationService(repo)
			ctx := context.Background()

			page, err := svc.Resize(ctx, userID, tc.pageSize)
			require.NoError(t, err)

			visited := []*dtos.PageResponse{page}
			for page.HasMore {
				page, err = svc.Next(ctx, userID)
				require.NoError(t, err)
				visited = append(visited, page)
			}

			// Every record exactly once, in ascending order, no gaps.
			assert.Equal(t, want, collectKeys(visited...))

			// hasMore is true iff currentPage*pageSize < N.
			for _, p := range visited {
				assert.Equal(t, p.Page*tc.pageSize < tc.total, p.HasMore,
					"page %d", p.Page)
				assert.Equal(t, tc.total, p.TotalCount)
			}

			wantPages := (tc.total + tc.pageSize - 1) / tc.pageSize
			assert.Len(t, visited, wantPages)
			assert.Equal(t, wantPages, visited[0].TotalPages)
		})
	}
}

func TestNextPastLastPageFails(t *testing.T) {
	repo := newFakeEntryRepo()
	userID := uuid.New()
	seedSequential(repo, userID, 4)

	svc := NewPaginationService(repo)
	ctx := context.Background()

	_, err := svc.Resize(ctx, userID, 5)
	require.NoError(t, err)

	_, err = svc.Next(ctx, userID)
	assert.ErrorIs(t, err, utils.ErrPageOutOfRange)
}

func TestBackwardNavigationReplaysHistory(t *testing.T) {
	repo := newFakeEntryRepo()
	userID := uuid.New()
	seedSequential(repo, userID, 9)

	svc := NewPaginationService(repo)
	ctx := context.Background()

	p1, err := svc.Resize(ctx, userID, 3)
	require.NoError(t, err)
	p2, err := svc.Next(ctx, userID)
	require.NoError(t, err)
	p3, err := svc.Next(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 3, p3.Page)

	back2, err := svc.Prev(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, back2.Page)
	assert.Equal(t, collectKeys(p2), collectKeys(back2))

	back1, err := svc.Prev(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, back1.Page)
	assert.Equal(t, collectKeys(p1), collectKeys(back1))

	_, err = svc.Prev(ctx, userID)
	assert.ErrorIs(t, err, utils.ErrPageOutOfRange)
}

func TestResizeResetsToPageOne(t *testing.T) {
	repo := newFakeEntryRepo()
	userID := uuid.New()
	want := seedSequential(repo, userID, 12)

	svc := NewPaginationService(repo)
	ctx := context.Background()

	_, err := svc.Resize(ctx, userID, 3)
	require.NoError(t, err)
	_, err = svc.Next(ctx, userID)
	require.NoError(t, err)

	page, err := svc.Resize(ctx, userID, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 5, page.PageSize)
	assert.Equal(t, want[:5], collectKeys(page))
}

func TestRefreshStaysOnCurrentPageAfterEdit(t *testing.T) {
	repo := newFakeEntryRepo()
	userID := uuid.New()
	seedSequential(repo, userID, 9)

	svc := NewPaginationService(repo)
	ctx := context.Background()

	_, err := svc.Resize(ctx, userID, 3)
	require.NoError(t, err)
	p2, err := svc.Next(ctx, userID)
	require.NoError(t, err)

	// Delete the first entry of page 2, then refresh in place: the page
	// re-fetches from its recorded start cursor, pulling one entry forward.
	victim, err := repo.FindByPropertyAndUnit(ctx, userID, p2.Entries[0].PropertyName, p2.Entries[0].UnitNumber)
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, userID, victim.ID))

	refreshed, err := svc.Refresh(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, refreshed.Page)
	assert.Equal(t, 8, refreshed.TotalCount)
	assert.Equal(t, collectKeys(p2)[1:], collectKeys(refreshed)[:2])
}

func TestResetReturnsToFirstPage(t *testing.T) {
	repo := newFakeEntryRepo()
	userID := uuid.New()
	want := seedSequential(repo, userID, 9)

	svc := NewPaginationService(repo)
	ctx := context.Background()

	_, err := svc.Resize(ctx, userID, 3)
	require.NoError(t, err)
	_, err = svc.Next(ctx, userID)
	require.NoError(t, err)
	_, err = svc.Next(ctx, userID)
	require.NoError(t, err)

	page, err := svc.Reset(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, want[:3], collectKeys(page))
}

func TestSessionsAreIndependentPerUser(t *testing.T) {
	repo := newFakeEntryRepo()
	alice := uuid.New()
	bob := uuid.New()
	seedSequential(repo, alice, 6)
	seedSequential(repo, bob, 6)

	svc := NewPaginationService(repo)
	ctx := context.Background()

	_, err := svc.Resize(ctx, alice, 3)
	require.NoError(t, err)
	_, err = svc.Next(ctx, alice)
	require.NoError(t, err)

	// Bob's fresh session still starts on page 1.
	page, err := svc.Current(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Len(t, page.Entries, 6)
}

func TestCurrentOnEmptyStore(t *testing.T) {
	svc := NewPaginationService(newFakeEntryRepo())

	page, err := svc.Current(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Empty(t, page.Entries)
	assert.False(t, page.HasMore)
	assert.Equal(t, 0, page.TotalCount)
	assert.Equal(t, 1, page.TotalPages)
}
