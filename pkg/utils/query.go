package utils

import (
	"time"

	"github.com/c14220110/poliklinik-dashboard/pkg/caldate"
	"github.com/labstack/echo/v4"
)

// DateQueryParam membaca query param tanggal (YYYY-MM-DD). Kosong berarti
// hari ini di loc.
func DateQueryParam(c echo.Context, name string, loc *time.Location) (caldate.Date, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return caldate.Today(loc), nil
	}
	return caldate.Parse(raw)
}
