package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/jpmardones/despensa/internal/api/handlers"
	"github.com/jpmardones/despensa/internal/api/middleware"
	"github.com/jpmardones/despensa/internal/catalog"
	"github.com/jpmardones/despensa/internal/config"
	"github.com/jpmardones/despensa/internal/ledger"
	"github.com/jpmardones/despensa/internal/pantry"
	"github.com/jpmardones/despensa/internal/reconcile"
	"github.com/jpmardones/despensa/internal/store"
	"github.com/jpmardones/despensa/internal/ws"
	"github.com/jpmardones/despensa/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server and sweep scheduler",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	st, err := store.NewPostgresStore(ctx, cfg.Database.DSN())
	cancel()
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer st.Close()

	cat := catalog.NewCache(
		catalog.NewStoreCatalog(st),
		catalog.WithTTL(cfg.Catalog.CacheTTL),
	)

	ledgerClient := ledger.NewHTTPClient(cfg.Ledger.Token,
		ledger.WithBaseURL(cfg.Ledger.BaseURL),
		ledger.WithLimit(cfg.Ledger.TransactionLimit),
		ledger.WithRateLimiter(ledger.NewRateLimiter(
			cfg.Ledger.RateLimit.PerSecond,
			cfg.Ledger.RateLimit.Burst,
			cfg.Ledger.RateLimit.DailyLimit,
		)),
	)

	hub := ws.NewHub(log)
	feed := pantry.NewFeed(st, cat, hub, pantry.WithFeedLogger(log))

	svc := reconcile.NewService(st, ledgerClient, cat, feed,
		reconcile.WithLogger(log),
	)

	scheduler, err := reconcile.NewScheduler(svc, cfg.Schedule.SweepInterval, log)
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(middleware.Recovery(log))
	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Metrics())

	healthHandler := handlers.NewHealthHandler(st)
	e.GET("/healthz", healthHandler.Healthz)
	e.GET("/readyz", healthHandler.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.GET("/ws/pantry", echo.WrapHandler(ws.Handler(hub, feed, log)))

	api := humaecho.New(e, huma.DefaultConfig("Despensa API", Version))
	handlers.RegisterQueueRoutes(api, handlers.NewQueueHandler(svc))
	handlers.RegisterPantryRoutes(api, handlers.NewPantryHandler(svc))
	handlers.RegisterBacklogRoutes(api, handlers.NewBacklogHandler(svc))
	handlers.RegisterCatalogRoutes(api, handlers.NewCatalogHandler(cat))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", "addr", addr)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	log.Info("server stopped")
	return nil
}
