package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/c14220110/poliklinik-dashboard/config"
	adminControllers "github.com/c14220110/poliklinik-dashboard/internal/administrasi/controllers"
	adminServices "github.com/c14220110/poliklinik-dashboard/internal/administrasi/services"
	"github.com/c14220110/poliklinik-dashboard/internal/common/middlewares"
	"github.com/c14220110/poliklinik-dashboard/internal/hospitalapi"
	manajemenControllers "github.com/c14220110/poliklinik-dashboard/internal/manajemen/controllers"
	manajemenServices "github.com/c14220110/poliklinik-dashboard/internal/manajemen/services"
	"github.com/c14220110/poliklinik-dashboard/internal/routes"
	screeningControllers "github.com/c14220110/poliklinik-dashboard/internal/screening/controllers"
	screeningServices "github.com/c14220110/poliklinik-dashboard/internal/screening/services"
	"github.com/c14220110/poliklinik-dashboard/pkg/caldate"
	"github.com/c14220110/poliklinik-dashboard/pkg/logger"
	"github.com/c14220110/poliklinik-dashboard/pkg/storage/cache"
	"github.com/c14220110/poliklinik-dashboard/pkg/storage/mariadb"
	"github.com/c14220110/poliklinik-dashboard/ws"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "poliklinik-dashboard",
		Short:         "Poliklinik dashboard aggregation service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(rollupCmd())
	rootCmd.AddCommand(triageCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard HTTP and websocket server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func rollupCmd() *cobra.Command {
	var anchor string
	cmd := &cobra.Command{
		Use:   "rollup",
		Short: "Print the financial summary for the seven days ending at --anchor",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			log := logger.NewWithWriter(cfg.AppEnv, os.Stderr)

			day, err := dateFlag(anchor, cfg)
			if err != nil {
				return err
			}
			api := newHospitalClient(cfg, log)
			source, closeSource, err := revenueSource(cfg, api, log)
			if err != nil {
				return err
			}
			defer closeSource()

			sum, err := manajemenServices.NewDashboardService(source, log).GetFinancialSummary(cmd.Context(), day)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), sum)
		},
	}
	cmd.Flags().StringVar(&anchor, "anchor", "", "anchor date YYYY-MM-DD (default today in APP_TIMEZONE)")
	return cmd
}

func triageCmd() *cobra.Command {
	var today string
	cmd := &cobra.Command{
		Use:   "triage",
		Short: "Print appointments split into upcoming and history relative to --today",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			log := logger.NewWithWriter(cfg.AppEnv, os.Stderr)

			day, err := dateFlag(today, cfg)
			if err != nil {
				return err
			}
			svc := screeningServices.NewTriageService(newHospitalClient(cfg, log), log)
			res, err := svc.Triage(cmd.Context(), day)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVar(&today, "today", "", "reference date YYYY-MM-DD (default today in APP_TIMEZONE)")
	return cmd
}

func runServer() error {
	cfg := config.LoadConfig()
	log := logger.New(cfg.AppEnv)
	loc := cfg.Location()

	api := newHospitalClient(cfg, log)
	source, closeSource, err := revenueSource(cfg, api, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up revenue source")
	}
	defer closeSource()

	kv, closeKV := summaryCache(cfg, log)
	defer closeKV()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := ws.NewHub(log)
	go hub.Run(ctx)

	dashboardService := manajemenServices.NewDashboardService(source, log)
	guard := manajemenServices.NewSummaryGuard(dashboardService, kv, cfg.SummaryCacheTTL, log)
	triageService := screeningServices.NewTriageService(api, log)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middlewares.Recovery(log))
	e.Use(middlewares.RequestID())
	e.Use(middlewares.Logger(log))

	routes.Init(e, routes.Handlers{
		Dashboard:    manajemenControllers.NewDashboardController(guard, hub, loc, log),
		Suster:       screeningControllers.NewSusterController(triageService, hub, loc, log),
		Appointments: adminControllers.NewAppointmentController(triageService, loc),
		Billing:      adminControllers.NewBillingController(source),
		Hub:          hub,
	}, cfg.JWTSecret)

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("data_source", cfg.DataSource).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

func newHospitalClient(cfg *config.Config, log zerolog.Logger) *hospitalapi.Client {
	return hospitalapi.NewClient(hospitalapi.Options{
		BaseURL:  cfg.HospitalAPIURL,
		Token:    cfg.HospitalAPIToken,
		Timeout:  cfg.HospitalTimeout,
		PageSize: cfg.InvoicePageSize,
	}, log.With().Str("component", "hospitalapi").Logger())
}

// revenueSource memilih sumber pendapatan & invoice sesuai DATA_SOURCE.
func revenueSource(cfg *config.Config, api *hospitalapi.Client, log zerolog.Logger) (manajemenServices.RevenueSource, func(), error) {
	switch cfg.DataSource {
	case config.DataSourceAPI:
		return api, func() {}, nil
	case config.DataSourceMariaDB:
		db, err := mariadb.Connect(cfg)
		if err != nil {
			return nil, nil, err
		}
		svc := adminServices.NewBillingService(db, cfg.Location(), cfg.InvoicePageSize, log.With().Str("component", "billing").Logger())
		return svc, func() { db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown DATA_SOURCE %q", cfg.DataSource)
	}
}

// summaryCache uses Redis when REDIS_ADDR is set and reachable, otherwise an
// in-process store.
func summaryCache(cfg *config.Config, log zerolog.Logger) (cache.KVStore, func()) {
	if cfg.RedisAddr == "" {
		return cache.NewMemoryKVStore(), func() {}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	store, err := cache.DialRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable, using in-memory summary cache")
		return cache.NewMemoryKVStore(), func() {}
	}
	return store, func() { _ = store.Close() }
}

func dateFlag(value string, cfg *config.Config) (caldate.Date, error) {
	if value == "" {
		return caldate.Today(cfg.Location()), nil
	}
	return caldate.Parse(value)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
