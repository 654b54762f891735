package controllers

import (
	"context"
	"net/http"
	"time"

	screeningModels "github.com/c14220110/poliklinik-dashboard/internal/screening/models"
	"github.com/c14220110/poliklinik-dashboard/pkg/caldate"
	"github.com/c14220110/poliklinik-dashboard/pkg/utils"
	"github.com/labstack/echo/v4"
)

type AppointmentTriager interface {
	Triage(ctx context.Context, today caldate.Date) (screeningModels.TriageResult, error)
}

// AppointmentController melayani daftar janji temu untuk staf administrasi,
// dipisah menjadi upcoming dan history.
type AppointmentController struct {
	Service AppointmentTriager
	Loc     *time.Location
}

func NewAppointmentController(service AppointmentTriager, loc *time.Location) *AppointmentController {
	return &AppointmentController{Service: service, Loc: loc}
}

// GetAppointmentTriage handles GET /api/administrasi/appointments/triage?today=YYYY-MM-DD
func (ac *AppointmentController) GetAppointmentTriage(c echo.Context) error {
	today, err := utils.DateQueryParam(c, "today", ac.Loc)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "Invalid today date, expected YYYY-MM-DD",
			"data":    nil,
		})
	}

	res, err := ac.Service.Triage(c.Request().Context(), today)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  http.StatusInternalServerError,
			"message": "Failed to retrieve appointments: " + err.Error(),
			"data":    nil,
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Appointments retrieved successfully",
		"data":    res,
	})
}
