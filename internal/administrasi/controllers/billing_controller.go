package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/c14220110/poliklinik-dashboard/internal/administrasi/models"
	"github.com/labstack/echo/v4"
)

type InvoiceLister interface {
	InvoicePage(ctx context.Context) (models.InvoicePage, error)
}

// BillingController menangani permintaan terkait data Billing.
type BillingController struct {
	Source InvoiceLister
}

func NewBillingController(source InvoiceLister) *BillingController {
	return &BillingController{Source: source}
}

// ListBilling mengembalikan invoice terbaru dalam bentuk tampilan tabel:
// { "status": HTTP_CODE, "message": "Feedback", "data": [ ... ] }
// Optional ?status=pending filters case-insensitively.
func (bc *BillingController) ListBilling(c echo.Context) error {
	limit := 0
	if s := c.QueryParam("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			return c.JSON(http.StatusBadRequest, map[string]interface{}{
				"status":  http.StatusBadRequest,
				"message": "Invalid limit",
				"data":    nil,
			})
		}
		limit = v
	}
	statusFilter := c.QueryParam("status")

	page, err := bc.Source.InvoicePage(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  http.StatusInternalServerError,
			"message": "Failed to retrieve billing data: " + err.Error(),
			"data":    nil,
		})
	}

	views := make([]models.InvoiceView, 0, len(page.Invoices))
	for _, inv := range page.Invoices {
		if statusFilter != "" && !inv.HasStatus(statusFilter) {
			continue
		}
		views = append(views, inv.View())
		if limit > 0 && len(views) == limit {
			break
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Billing data retrieved successfully",
		"data":    views,
	})
}
