package services

import (
	"context"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/keyhaven/lockbox-service/internal/dtos"
	"github.com/keyhaven/lockbox-service/internal/models"
	"github.com/keyhaven/lockbox-service/internal/repositories"
	"github.com/keyhaven/lockbox-service/internal/utils"
)

const DefaultPageSize = 10

/*
PaginationService runs the page session state machine over the entry store.

The store only supports "start strictly after cursor" range queries, so
backward navigation replays a history of page-start cursors recorded while
moving forward: history[i] is the cursor page i+1 was fetched after
(history[0] is nil — page 1 starts from the top). Random jumps to pages that
were never traversed forward are unsupported; they fail with ErrStaleCursor
and the client recovers via Reset.
*/
type PaginationService interface {
	// Current returns the current page, creating a fresh page-1 session on
	// first use.
	Current(ctx context.Context, userID uuid.UUID) (*dtos.PageResponse, error)
	Next(ctx context.Context, userID uuid.UUID) (*dtos.PageResponse, error)
	Prev(ctx context.Context, userID uuid.UUID) (*dtos.PageResponse, error)
	// Refresh re-fetches the current page from its recorded start cursor so
	// edits become visible without losing position.
	Refresh(ctx context.Context, userID uuid.UUID) (*dtos.PageResponse, error)
	Reset(ctx context.Context, userID uuid.UUID) (*dtos.PageResponse, error)
	Resize(ctx context.Context, userID uuid.UUID, pageSize int) (*dtos.PageResponse, error)
}

// pageSession is the per-user pagination state. One logical session per
// user; the mutex serializes overlapping HTTP requests from that user.
type pageSession struct {
	mu       sync.Mutex
	page     int
	pageSize int
	// history[i] = cursor that page i+1 starts after; history[0] is nil.
	history []*models.EntryCursor
	// lastCursor points at the last row of the current page; it seeds Next.
	lastCursor *models.EntryCursor
	hasMore    bool
}

type paginationService struct {
	repo repositories.LockboxEntryRepository

	mu       sync.Mutex
	sessions map[uuid.UUID]*pageSession
}

func NewPaginationService(repo repositories.LockboxEntryRepository) PaginationService {
	return &paginationService{
		repo:     repo,
		sessions: make(map[uuid.UUID]*pageSession),
	}
}

func (s *paginationService) session(userID uuid.UUID) *pageSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		sess = &pageSession{
			page:     1,
			pageSize: DefaultPageSize,
			history:  []*models.EntryCursor{nil},
		}
		s.sessions[userID] = sess
	}
	return sess
}

/* ---------- intents ---------- */

func (s *paginationService) Current(ctx context.Context, userID uuid.UUID) (*dtos.PageResponse, error) {
	sess := s.session(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	start, err := sess.startCursor(sess.page)
	if err != nil {
		return nil, err
	}
	return s.fetch(ctx, userID, sess, sess.page, start)
}

func (s *paginationService) Next(ctx context.Context, userID uuid.UUID) (*dtos.PageResponse, error) {
	sess := s.session(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !sess.hasMore {
		return nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodePageOutOfRange,
			Message:    "Already on the last page",
			Err:        utils.ErrPageOutOfRange,
		}
	}

	cursor := sess.lastCursor
	resp, err := s.fetch(ctx, userID, sess, sess.page+1, cursor)
	if err != nil {
		return nil, err
	}

	// Record the start cursor of the page just entered so Prev/Refresh can
	// replay it. Forward navigation truncates any stale deeper history.
	if len(sess.history) > sess.page-1 {
		sess.history = sess.history[:sess.page-1]
	}
	sess.history = append(sess.history, cursor)
	return resp, nil
}

func (s *paginationService) Prev(ctx context.Context, userID uuid.UUID) (*dtos.PageResponse, error) {
	sess := s.session(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.page <= 1 {
		return nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodePageOutOfRange,
			Message:    "Already on the first page",
			Err:        utils.ErrPageOutOfRange,
		}
	}

	start, err := sess.startCursor(sess.page - 1)
	if err != nil {
		return nil, err
	}
	return s.fetch(ctx, userID, sess, sess.page-1, start)
}

func (s *paginationService) Refresh(ctx context.Context, userID uuid.UUID) (*dtos.PageResponse, error) {
	sess := s.session(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	start, err := sess.startCursor(sess.page)
	if err != nil {
		return nil, err
	}
	return s.fetch(ctx, userID, sess, sess.page, start)
}

func (s *paginationService) Reset(ctx context.Context, userID uuid.UUID) (*dtos.PageResponse, error) {
	sess := s.session(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.history = []*models.EntryCursor{nil}
	return s.fetch(ctx, userID, sess, 1, nil)
}

func (s *paginationService) Resize(ctx context.Context, userID uuid.UUID, pageSize int) (*dtos.PageResponse, error) {
	sess := s.session(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	// A new page size invalidates every recorded page boundary.
	sess.pageSize = pageSize
	sess.history = []*models.EntryCursor{nil}
	return s.fetch(ctx, userID, sess, 1, nil)
}

/* ---------- internals ---------- */

// startCursor returns the recorded cursor that the given page starts after.
// Missing history means the page was never reached by forward traversal.
func (sess *pageSession) startCursor(page int) (*models.EntryCursor, error) {
	if page < 1 || page > len(sess.history) {
		return nil, &utils.AppError{
			StatusCode: http.StatusConflict,
			Code:       utils.ErrCodeStaleCursor,
			Message:    "No cursor recorded for this page; reset to page 1",
			Err:        utils.ErrStaleCursor,
		}
	}
	return sess.history[page-1], nil
}

// fetch runs the store query and, on success, commits the session to the
// fetched page.
func (s *paginationService) fetch(
	ctx context.Context,
	userID uuid.UUID,
	sess *pageSession,
	page int,
	after *models.EntryCursor,
) (*dtos.PageResponse, error) {
	entries, hasMore, err := s.repo.ListPage(ctx, userID, sess.pageSize, after)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	sess.page = page
	sess.hasMore = hasMore
	if len(entries) > 0 {
		sess.lastCursor = entries[len(entries)-1].Cursor()
	} else {
		sess.lastCursor = after
	}

	out := make([]*dtos.EntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, dtos.EntryDTOFromModel(e))
	}

	totalPages := (total + sess.pageSize - 1) / sess.pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	return &dtos.PageResponse{
		Entries:    out,
		Page:       page,
		PageSize:   sess.pageSize,
		TotalCount: total,
		TotalPages: totalPages,
		HasMore:    hasMore,
	}, nil
}
