package services

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/c14220110/poliklinik-dashboard/internal/administrasi/models"
	manajemenModels "github.com/c14220110/poliklinik-dashboard/internal/manajemen/models"
	"github.com/c14220110/poliklinik-dashboard/pkg/caldate"
	"github.com/c14220110/poliklinik-dashboard/pkg/utils"
	"github.com/rs/zerolog"
)

// Nilai kolom Billing.status.
const (
	BillingStatusPending = 0
	BillingStatusPaid    = 1
)

// BillingService membaca pendapatan harian dan invoice terbaru langsung dari
// tabel Billing. It is the DATA_SOURCE=mariadb counterpart of the hospital API.
type BillingService struct {
	DB       *sql.DB
	Loc      *time.Location
	PageSize int
	log      zerolog.Logger
}

func NewBillingService(db *sql.DB, loc *time.Location, pageSize int, log zerolog.Logger) *BillingService {
	if loc == nil {
		loc = time.UTC
	}
	if pageSize <= 0 {
		pageSize = 50
	}
	return &BillingService{DB: db, Loc: loc, PageSize: pageSize, log: log}
}

// DailyRevenue menjumlahkan Billing.total untuk satu hari kalender di zona
// waktu rumah sakit.
func (s *BillingService) DailyRevenue(ctx context.Context, date caldate.Date) (manajemenModels.DailyRevenueResponse, error) {
	start := time.Date(date.Year, date.Month, date.Day, 0, 0, 0, 0, s.Loc)
	end := start.AddDate(0, 0, 1)

	query := "SELECT COALESCE(SUM(b.total),0) FROM Billing b WHERE b.created_at >= ? AND b.created_at < ?"
	var total float64
	if err := s.DB.QueryRowContext(ctx, query, start, end).Scan(&total); err != nil {
		return manajemenModels.DailyRevenueResponse{}, fmt.Errorf("sum billing %s: %w", date, err)
	}
	s.log.Debug().Str("date", date.String()).Float64("total", total).Msg("daily revenue from billing")

	return manajemenModels.DailyRevenueResponse{
		Summary: &manajemenModels.RevenueSummary{TotalRevenue: &total},
	}, nil
}

// InvoicePage mengambil billing terbaru beserta nama pasien, newest first.
func (s *BillingService) InvoicePage(ctx context.Context) (models.InvoicePage, error) {
	query := `
		SELECT b.id_billing, b.total, b.status, b.created_at, p.nama
		FROM Billing b
		JOIN Pasien p ON b.id_pasien = p.id_pasien
		ORDER BY b.created_at DESC
		LIMIT ?
	`
	rows, err := s.DB.QueryContext(ctx, query, s.PageSize)
	if err != nil {
		return models.InvoicePage{}, fmt.Errorf("query billing: %w", err)
	}
	defer rows.Close()

	invoices := []models.InvoiceRecord{}
	for rows.Next() {
		var (
			idBilling int64
			total     sql.NullFloat64
			status    int
			createdAt time.Time
			nama      sql.NullString
		)
		if err := rows.Scan(&idBilling, &total, &status, &createdAt, &nama); err != nil {
			return models.InvoicePage{}, fmt.Errorf("scan billing: %w", err)
		}
		invoices = append(invoices, billingToInvoice(idBilling, total, status, createdAt.In(s.Loc), nama))
	}
	if err := rows.Err(); err != nil {
		return models.InvoicePage{}, fmt.Errorf("iterate billing: %w", err)
	}
	return models.InvoicePage{Invoices: invoices}, nil
}

func billingToInvoice(id int64, total sql.NullFloat64, status int, createdAt time.Time, nama sql.NullString) models.InvoiceRecord {
	idStr := strconv.FormatInt(id, 10)
	number := fmt.Sprintf("BIL-%06d", id)

	inv := models.InvoiceRecord{
		ID:            utils.FlexibleID(idStr),
		InvoiceNumber: &number,
		Status:        BillingStatusLabel(status),
		IssueDate:     caldate.Of(createdAt).String(),
	}
	if total.Valid {
		amount := models.Amount(total.Float64)
		inv.Total = &amount
	}
	if nama.Valid && nama.String != "" {
		name := nama.String
		inv.PatientName = &name
	}
	return inv
}

// BillingStatusLabel maps the numeric column to the wire status string.
func BillingStatusLabel(status int) string {
	switch status {
	case BillingStatusPending:
		return "pending"
	case BillingStatusPaid:
		return "paid"
	default:
		return "status-" + strconv.Itoa(status)
	}
}
