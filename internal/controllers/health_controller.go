package controllers

import (
	"net/http"

	"github.com/keyhaven/lockbox-service/internal/app"
	"github.com/keyhaven/lockbox-service/internal/dtos"
	"github.com/keyhaven/lockbox-service/internal/utils"
)

type HealthController struct {
	app *app.App
}

func NewHealthController(a *app.App) *HealthController {
	return &HealthController{app: a}
}

// ----------------------------------------------------------------
// GET /health
// ----------------------------------------------------------------
func (c *HealthController) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	if err := c.app.DB.Ping(r.Context()); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusServiceUnavailable, utils.ErrCodeInternal,
			"Database unreachable", nil, err,
		)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.HealthResponse{Status: "ok"})
}
