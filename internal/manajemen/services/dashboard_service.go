package services

import (
	"context"

	adminModels "github.com/c14220110/poliklinik-dashboard/internal/administrasi/models"
	"github.com/c14220110/poliklinik-dashboard/internal/manajemen/models"
	"github.com/c14220110/poliklinik-dashboard/pkg/caldate"
	"github.com/rs/zerolog"
)

// RevenueSource is implemented by the hospital API client and by the MariaDB
// billing service.
type RevenueSource interface {
	DailyRevenue(ctx context.Context, date caldate.Date) (models.DailyRevenueResponse, error)
	InvoicePage(ctx context.Context) (adminModels.InvoicePage, error)
}

type DashboardService struct {
	Source     RevenueSource
	Aggregator *Aggregator
	log        zerolog.Logger
}

func NewDashboardService(source RevenueSource, log zerolog.Logger) *DashboardService {
	return &DashboardService{
		Source:     source,
		Aggregator: NewAggregator(log),
		log:        log,
	}
}

// GetFinancialSummary computes the admin dashboard finance block for the
// week ending at anchor.
func (svc *DashboardService) GetFinancialSummary(ctx context.Context, anchor caldate.Date) (models.FinancialSummary, error) {
	sum, err := svc.Aggregator.Aggregate(ctx, anchor, svc.Source.DailyRevenue, svc.Source.InvoicePage)
	if err != nil {
		return models.FinancialSummary{}, err
	}
	svc.log.Info().
		Str("anchor", anchor.String()).
		Float64("daily_income", sum.DailyIncome).
		Float64("monthly_revenue", sum.MonthlyRevenue).
		Strs("failed_sources", sum.FailedSources).
		Msg("financial summary aggregated")
	return sum, nil
}
