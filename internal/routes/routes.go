package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	adminControllers "github.com/c14220110/poliklinik-dashboard/internal/administrasi/controllers"
	"github.com/c14220110/poliklinik-dashboard/internal/common/middlewares"
	manajemenControllers "github.com/c14220110/poliklinik-dashboard/internal/manajemen/controllers"
	screeningControllers "github.com/c14220110/poliklinik-dashboard/internal/screening/controllers"
	"github.com/c14220110/poliklinik-dashboard/pkg/utils"
	"github.com/c14220110/poliklinik-dashboard/ws"
)

// Handlers dikumpulkan di main lalu didaftarkan oleh Init.
type Handlers struct {
	Dashboard    *manajemenControllers.DashboardController
	Suster       *screeningControllers.SusterController
	Appointments *adminControllers.AppointmentController
	Billing      *adminControllers.BillingController
	Hub          *ws.Hub
}

// Init menginisialisasi semua routes menggunakan Echo framework
func Init(e *echo.Echo, h Handlers, jwtSecret string) {
	auth := middlewares.JWTMiddleware(jwtSecret)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":  http.StatusOK,
			"message": "ok",
			"data":    nil,
		})
	})

	// Grup API utama
	api := e.Group("/api")

	// **Grup Management**
	management := api.Group("/management", auth, middlewares.RequireRole(utils.RoleAdmin))
	management.GET("/dashboard", h.Dashboard.GetDashboard)
	management.POST("/dashboard/refresh", h.Dashboard.RefreshDashboard)

	// **Grup Administrasi**
	administrasi := api.Group("/administrasi", auth)
	administrasi.GET("/appointments/triage", h.Appointments.GetAppointmentTriage,
		middlewares.RequireRole(utils.RoleAdmin, utils.RoleStaff, utils.RoleNurse))
	administrasi.GET("/billing/recent", h.Billing.ListBilling,
		middlewares.RequireRole(utils.RoleAdmin, utils.RoleStaff))

	// **Grup Screening**
	screening := api.Group("/screening", auth)
	screening.GET("/dashboard", h.Suster.GetNurseDashboard, middlewares.RequireRole(utils.RoleNurse, utils.RoleAdmin))
	screening.GET("/vitals-queue", h.Suster.GetVitalsQueue, middlewares.RequireRole(utils.RoleNurse))
	screening.POST("/vitals-queue/refresh", h.Suster.RefreshVitalsQueue, middlewares.RequireRole(utils.RoleNurse))

	if h.Hub != nil {
		e.GET("/ws", ws.ServeWS(h.Hub), auth)
	}
}
