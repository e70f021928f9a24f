package controllers

import (
	"net/http"

	"github.com/keyhaven/lockbox-service/internal/services"
	"github.com/keyhaven/lockbox-service/internal/utils"
)

type SessionController struct {
	sessions services.SessionService
}

func NewSessionController(ss services.SessionService) *SessionController {
	return &SessionController{sessions: ss}
}

// ----------------------------------------------------------------
// POST /api/v1/session
// ----------------------------------------------------------------
func (c *SessionController) CreateSessionHandler(w http.ResponseWriter, r *http.Request) {
	sess, err := c.sessions.IssueAnonymousSession()
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusInternalServerError, utils.ErrCodeInternal,
			"Failed to create session", nil, err,
		)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, sess)
}
