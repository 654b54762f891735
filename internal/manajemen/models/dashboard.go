package models

import (
	adminModels "github.com/c14220110/poliklinik-dashboard/internal/administrasi/models"
	"github.com/c14220110/poliklinik-dashboard/pkg/caldate"
)

// RevenueSummary is the "summary" object of GET /billing/daily-revenue.
// TotalRevenue stays a pointer so an absent value can be told apart from 0.
type RevenueSummary struct {
	TotalRevenue *float64 `json:"totalRevenue"`
}

// DailyRevenueResponse is the raw body of one daily revenue query.
type DailyRevenueResponse struct {
	Summary *RevenueSummary `json:"summary"`
}

// RevenueSnapshot is the normalized revenue of one day.
type RevenueSnapshot struct {
	Date         caldate.Date `json:"date"`
	TotalRevenue float64      `json:"total_revenue"`
}

// WeeklyRevenueEntry is a snapshot plus the chart label ("Mon", "Tue", ...).
type WeeklyRevenueEntry struct {
	RevenueSnapshot
	Day string `json:"day"`
}

type PaymentMethodShare struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// FinancialSummary is the admin dashboard's finance block. It is rebuilt on
// every aggregation and never modified afterwards.
type FinancialSummary struct {
	AnchorDate      caldate.Date         `json:"anchor_date"`
	DailyIncome     float64              `json:"daily_income"`
	PendingPayments float64              `json:"pending_payments"`
	WeeklyRevenue   []WeeklyRevenueEntry `json:"weekly_revenue"`
	// MonthlyRevenue is the trailing seven day total. The name matches the
	// dashboard tile; it is not a calendar month.
	MonthlyRevenue float64                   `json:"monthly_revenue"`
	PaymentMethods []PaymentMethodShare      `json:"payment_methods"`
	RecentInvoices []adminModels.InvoiceView `json:"recent_invoices"`
	// FailedSources lists the requests that were replaced by zero/empty
	// fallbacks, e.g. "daily_revenue:2024-06-03" or "invoices".
	FailedSources []string `json:"failed_sources"`
}
