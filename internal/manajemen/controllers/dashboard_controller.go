package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/c14220110/poliklinik-dashboard/internal/manajemen/models"
	"github.com/c14220110/poliklinik-dashboard/pkg/caldate"
	"github.com/c14220110/poliklinik-dashboard/pkg/utils"
	"github.com/c14220110/poliklinik-dashboard/ws"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type SummaryReader interface {
	Get(ctx context.Context, anchor caldate.Date) (models.FinancialSummary, error)
	Refresh(ctx context.Context, anchor caldate.Date) (models.FinancialSummary, error)
}

type Publisher interface {
	Publish(eventType string, data interface{}) error
}

type DashboardController struct {
	Summaries SummaryReader
	Hub       Publisher
	Loc       *time.Location
	log       zerolog.Logger
}

func NewDashboardController(summaries SummaryReader, hub Publisher, loc *time.Location, log zerolog.Logger) *DashboardController {
	return &DashboardController{Summaries: summaries, Hub: hub, Loc: loc, log: log}
}

// GetDashboard handles GET /api/management/dashboard?anchor=YYYY-MM-DD
func (dc *DashboardController) GetDashboard(c echo.Context) error {
	anchor, err := utils.DateQueryParam(c, "anchor", dc.Loc)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "Invalid anchor date, expected YYYY-MM-DD",
			"data":    nil,
		})
	}

	sum, err := dc.Summaries.Get(c.Request().Context(), anchor)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  http.StatusInternalServerError,
			"message": "Failed to build dashboard: " + err.Error(),
			"data":    nil,
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Dashboard retrieved successfully",
		"data":    sum,
	})
}

// RefreshDashboard handles POST /api/management/dashboard/refresh. The fresh
// summary is also pushed to websocket subscribers.
func (dc *DashboardController) RefreshDashboard(c echo.Context) error {
	anchor, err := utils.DateQueryParam(c, "anchor", dc.Loc)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "Invalid anchor date, expected YYYY-MM-DD",
			"data":    nil,
		})
	}

	sum, err := dc.Summaries.Refresh(c.Request().Context(), anchor)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  http.StatusInternalServerError,
			"message": "Failed to refresh dashboard: " + err.Error(),
			"data":    nil,
		})
	}

	if dc.Hub != nil {
		if err := dc.Hub.Publish(ws.EventDashboardUpdate, sum); err != nil {
			dc.log.Warn().Err(err).Msg("financial summary push failed")
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Dashboard refreshed",
		"data":    sum,
	})
}
