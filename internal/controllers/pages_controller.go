package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/keyhaven/lockbox-service/internal/dtos"
	"github.com/keyhaven/lockbox-service/internal/services"
	"github.com/keyhaven/lockbox-service/internal/utils"
)

// PagesController exposes the page session intents. The session itself lives
// server-side; every handler answers with the freshly fetched page.
type PagesController struct {
	pages services.PaginationService
}

func NewPagesController(ps services.PaginationService) *PagesController {
	return &PagesController{pages: ps}
}

// GET /api/v1/entries
func (c *PagesController) CurrentPageHandler(w http.ResponseWriter, r *http.Request) {
	c.run(w, r, c.pages.Current)
}

// POST /api/v1/entries/page/next
func (c *PagesController) NextPageHandler(w http.ResponseWriter, r *http.Request) {
	c.run(w, r, c.pages.Next)
}

// POST /api/v1/entries/page/prev
func (c *PagesController) PrevPageHandler(w http.ResponseWriter, r *http.Request) {
	c.run(w, r, c.pages.Prev)
}

// POST /api/v1/entries/page/refresh
func (c *PagesController) RefreshPageHandler(w http.ResponseWriter, r *http.Request) {
	c.run(w, r, c.pages.Refresh)
}

// POST /api/v1/entries/page/reset
func (c *PagesController) ResetPageHandler(w http.ResponseWriter, r *http.Request) {
	c.run(w, r, c.pages.Reset)
}

// ----------------------------------------------------------------
// PUT /api/v1/entries/page/size
// ----------------------------------------------------------------
func (c *PagesController) ResizePageHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	var body dtos.PageSizeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"Invalid JSON for page size payload", nil, err,
		)
		return
	}
	if err := entryValidate.Struct(body); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation,
			"page_size must be between 1 and 100", nil, err,
		)
		return
	}

	page, err := c.pages.Resize(r.Context(), userID, body.PageSize)
	if err != nil {
		respondServiceError(w, err, "Failed to resize page")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, page)
}

func (c *PagesController) run(
	w http.ResponseWriter,
	r *http.Request,
	intent func(ctx context.Context, userID uuid.UUID) (*dtos.PageResponse, error),
) {
	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}
	page, err := intent(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err, "Failed to fetch page")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, page)
}
