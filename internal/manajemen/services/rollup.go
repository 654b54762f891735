package services

import (
	"context"
	"errors"
	"math"

	adminModels "github.com/c14220110/poliklinik-dashboard/internal/administrasi/models"
	"github.com/c14220110/poliklinik-dashboard/internal/manajemen/models"
	"github.com/c14220110/poliklinik-dashboard/pkg/caldate"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// WeekDays is the length of the revenue window ending at the anchor date.
const WeekDays = 7

// RecentInvoiceLimit is how many invoices the dashboard table shows.
const RecentInvoiceLimit = 5

var ErrNilFetcher = errors.New("rollup: fetch function is nil")

type DailyRevenueFetcher func(ctx context.Context, date caldate.Date) (models.DailyRevenueResponse, error)

type InvoicePageFetcher func(ctx context.Context) (adminModels.InvoicePage, error)

// PlaceholderPaymentMethods is a fixed illustrative split. No endpoint
// reports a breakdown by payment method yet, so it is not derived from data.
var PlaceholderPaymentMethods = []models.PaymentMethodShare{
	{Name: "Cash", Value: 45},
	{Name: "Insurance", Value: 35},
	{Name: "Card", Value: 20},
}

// Aggregator builds FinancialSummary values. It keeps no state between calls.
type Aggregator struct {
	log zerolog.Logger
}

func NewAggregator(log zerolog.Logger) *Aggregator {
	return &Aggregator{log: log}
}

// Aggregate fetches the seven days ending at anchor and one invoice page, all
// concurrently. A failed day becomes zero revenue and a failed invoice page
// becomes an empty list; neither fails the call. Results are placed by the
// index of the date that requested them, not by completion order.
// There are no retries here and no deduplication of concurrent calls.
func (a *Aggregator) Aggregate(ctx context.Context, anchor caldate.Date, fetchDailyRevenue DailyRevenueFetcher, fetchInvoicePage InvoicePageFetcher) (models.FinancialSummary, error) {
	if fetchDailyRevenue == nil || fetchInvoicePage == nil {
		return models.FinancialSummary{}, ErrNilFetcher
	}

	days := anchor.LastDays(WeekDays)
	snapshots := make([]models.RevenueSnapshot, len(days))
	dayFailed := make([]bool, len(days))

	var (
		invoices      []adminModels.InvoiceRecord
		invoiceFailed bool
	)

	var g errgroup.Group
	for i, day := range days {
		i, day := i, day
		g.Go(func() error {
			resp, err := fetchDailyRevenue(ctx, day)
			if err != nil {
				a.log.Warn().Err(err).Str("date", day.String()).Msg("daily revenue fetch failed, using 0")
				snapshots[i] = models.RevenueSnapshot{Date: day}
				dayFailed[i] = true
				return nil
			}
			snapshots[i] = models.RevenueSnapshot{Date: day, TotalRevenue: normalizeRevenue(resp)}
			return nil
		})
	}
	g.Go(func() error {
		page, err := fetchInvoicePage(ctx)
		if err != nil {
			a.log.Warn().Err(err).Msg("invoice fetch failed, pending payments default to 0")
			invoiceFailed = true
			return nil
		}
		invoices = page.Invoices
		return nil
	})
	// every goroutine recovers locally, so Wait only joins
	_ = g.Wait()

	return buildSummary(anchor, snapshots, dayFailed, invoices, invoiceFailed), nil
}

func buildSummary(anchor caldate.Date, snapshots []models.RevenueSnapshot, dayFailed []bool, invoices []adminModels.InvoiceRecord, invoiceFailed bool) models.FinancialSummary {
	sum := models.FinancialSummary{
		AnchorDate:     anchor,
		WeeklyRevenue:  make([]models.WeeklyRevenueEntry, 0, len(snapshots)),
		PaymentMethods: append([]models.PaymentMethodShare(nil), PlaceholderPaymentMethods...),
		RecentInvoices: []adminModels.InvoiceView{},
		FailedSources:  []string{},
	}

	for i, snap := range snapshots {
		sum.WeeklyRevenue = append(sum.WeeklyRevenue, models.WeeklyRevenueEntry{
			RevenueSnapshot: snap,
			Day:             snap.Date.ShortDay(),
		})
		sum.MonthlyRevenue += snap.TotalRevenue
		if snap.Date == anchor {
			sum.DailyIncome = snap.TotalRevenue
		}
		if dayFailed[i] {
			sum.FailedSources = append(sum.FailedSources, "daily_revenue:"+snap.Date.String())
		}
	}

	for i, inv := range invoices {
		if inv.IsPending() {
			sum.PendingPayments += inv.ResolvedAmount()
		}
		if i < RecentInvoiceLimit {
			sum.RecentInvoices = append(sum.RecentInvoices, inv.View())
		}
	}
	if invoiceFailed {
		sum.FailedSources = append(sum.FailedSources, "invoices")
	}
	return sum
}

// normalizeRevenue unwraps summary.totalRevenue. Missing, non-finite and
// negative values count as 0.
func normalizeRevenue(resp models.DailyRevenueResponse) float64 {
	if resp.Summary == nil || resp.Summary.TotalRevenue == nil {
		return 0
	}
	v := *resp.Summary.TotalRevenue
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
