package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/c14220110/poliklinik-dashboard/internal/screening/models"
	"github.com/c14220110/poliklinik-dashboard/pkg/caldate"
	"github.com/c14220110/poliklinik-dashboard/pkg/utils"
	"github.com/c14220110/poliklinik-dashboard/ws"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type NurseViews interface {
	NurseDashboard(ctx context.Context, today caldate.Date) (models.NurseDashboard, error)
	VitalsQueue(ctx context.Context, today caldate.Date) ([]models.QueueEntry, error)
}

type Publisher interface {
	Publish(eventType string, data interface{}) error
}

// SusterController melayani tampilan dashboard suster.
type SusterController struct {
	Service NurseViews
	Hub     Publisher
	Loc     *time.Location
	log     zerolog.Logger
}

func NewSusterController(service NurseViews, hub Publisher, loc *time.Location, log zerolog.Logger) *SusterController {
	return &SusterController{Service: service, Hub: hub, Loc: loc, log: log}
}

func badToday(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, map[string]interface{}{
		"status":  http.StatusBadRequest,
		"message": "Invalid today date, expected YYYY-MM-DD",
		"data":    nil,
	})
}

// GetNurseDashboard handles GET /api/screening/dashboard?today=YYYY-MM-DD
func (sc *SusterController) GetNurseDashboard(c echo.Context) error {
	today, err := utils.DateQueryParam(c, "today", sc.Loc)
	if err != nil {
		return badToday(c)
	}

	dash, err := sc.Service.NurseDashboard(c.Request().Context(), today)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  http.StatusInternalServerError,
			"message": "Failed to retrieve nurse dashboard: " + err.Error(),
			"data":    nil,
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Nurse dashboard retrieved successfully",
		"data":    dash,
	})
}

// GetVitalsQueue handles GET /api/screening/vitals-queue?today=YYYY-MM-DD
func (sc *SusterController) GetVitalsQueue(c echo.Context) error {
	today, err := utils.DateQueryParam(c, "today", sc.Loc)
	if err != nil {
		return badToday(c)
	}

	queue, err := sc.Service.VitalsQueue(c.Request().Context(), today)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  http.StatusInternalServerError,
			"message": "Failed to retrieve vitals queue: " + err.Error(),
			"data":    nil,
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Vitals queue retrieved successfully",
		"data":    queue,
	})
}

// RefreshVitalsQueue handles POST /api/screening/vitals-queue/refresh. It
// recomputes the queue and pushes it to every connected nurse station.
func (sc *SusterController) RefreshVitalsQueue(c echo.Context) error {
	today, err := utils.DateQueryParam(c, "today", sc.Loc)
	if err != nil {
		return badToday(c)
	}

	queue, err := sc.Service.VitalsQueue(c.Request().Context(), today)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  http.StatusInternalServerError,
			"message": "Failed to refresh vitals queue: " + err.Error(),
			"data":    nil,
		})
	}

	if sc.Hub != nil {
		if err := sc.Hub.Publish(ws.EventVitalsQueueUpdate, queue); err != nil {
			sc.log.Warn().Err(err).Msg("vitals queue push failed")
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Vitals queue refreshed",
		"data":    queue,
	})
}
