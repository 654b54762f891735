package services

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/c14220110/poliklinik-dashboard/pkg/caldate"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBillingMock(t *testing.T) (*BillingService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewBillingService(db, time.UTC, 20, zerolog.Nop()), mock
}

func TestBillingService_DailyRevenue(t *testing.T) {
	svc, mock := newBillingMock(t)
	start := time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(b.total),0) FROM Billing b")).
		WithArgs(start, start.AddDate(0, 0, 1)).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(350000.0))

	resp, err := svc.DailyRevenue(context.Background(), caldate.MustParse("2024-06-07"))

	require.NoError(t, err)
	require.NotNil(t, resp.Summary)
	assert.Equal(t, 350000.0, *resp.Summary.TotalRevenue)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBillingService_DailyRevenueError(t *testing.T) {
	svc, mock := newBillingMock(t)
	mock.ExpectQuery("SELECT COALESCE").WillReturnError(errors.New("connection refused"))

	_, err := svc.DailyRevenue(context.Background(), caldate.MustParse("2024-06-07"))

	assert.ErrorContains(t, err, "connection refused")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBillingService_InvoicePage(t *testing.T) {
	svc, mock := newBillingMock(t)
	created := time.Date(2024, 6, 7, 9, 15, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id_billing", "total", "status", "created_at", "nama"}).
		AddRow(int64(7), 150000.0, int64(BillingStatusPending), created, "Budi Santoso").
		AddRow(int64(6), nil, int64(BillingStatusPaid), created.Add(-time.Hour), nil)
	mock.ExpectQuery(regexp.QuoteMeta("FROM Billing b")).
		WithArgs(int64(20)).
		WillReturnRows(rows)

	page, err := svc.InvoicePage(context.Background())

	require.NoError(t, err)
	require.Len(t, page.Invoices, 2)

	first := page.Invoices[0]
	assert.Equal(t, "7", string(first.ID))
	assert.Equal(t, "BIL-000007", first.DisplayNumber())
	assert.Equal(t, "Budi Santoso", first.DisplayPatientName())
	assert.Equal(t, 150000.0, first.ResolvedAmount())
	assert.True(t, first.IsPending())
	assert.Equal(t, "2024-06-07", first.IssueDate)

	second := page.Invoices[1]
	assert.Equal(t, "Unknown", second.DisplayPatientName())
	assert.Zero(t, second.ResolvedAmount())
	assert.Equal(t, "paid", second.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBillingService_InvoicePageScanError(t *testing.T) {
	svc, mock := newBillingMock(t)
	rows := sqlmock.NewRows([]string{"id_billing", "total", "status", "created_at", "nama"}).
		AddRow("not-a-number", 1.0, int64(0), time.Now(), "x")
	mock.ExpectQuery("FROM Billing b").WillReturnRows(rows)

	_, err := svc.InvoicePage(context.Background())

	assert.ErrorContains(t, err, "scan billing")
}

func TestBillingStatusLabel(t *testing.T) {
	assert.Equal(t, "pending", BillingStatusLabel(0))
	assert.Equal(t, "paid", BillingStatusLabel(1))
	assert.Equal(t, "status-9", BillingStatusLabel(9))
}
