package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/pickpulse/internal/api"
	"github.com/yourusername/pickpulse/internal/cache"
	"github.com/yourusername/pickpulse/internal/config"
	"github.com/yourusername/pickpulse/internal/database"
	"github.com/yourusername/pickpulse/internal/grading"
	"github.com/yourusername/pickpulse/internal/health"
	"github.com/yourusername/pickpulse/internal/logger"
	"github.com/yourusername/pickpulse/internal/metrics"
	"github.com/yourusername/pickpulse/internal/repository"
	"github.com/yourusername/pickpulse/internal/scheduler"
	"github.com/yourusername/pickpulse/internal/service"
	"github.com/yourusername/pickpulse/internal/upstream"
)

const shutdownTimeout = 15 * time.Second

func newServeCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long:  `Serves decisions, performance reports, health probes and metrics over HTTP.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := loadConfig(ctx, *configFile)
			if err != nil {
				return err
			}
			return serve(ctx, cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	appLog := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	metrics.InitRegistry()

	engine, err := newEngine(cfg)
	if err != nil {
		return err
	}
	seasonStart, err := cfg.SeasonStartDate()
	if err != nil {
		return err
	}

	var db *database.DB
	deps := map[string]health.Pinger{}
	if cfg.Database.Enabled {
		db, err = database.Initialize(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close()
		deps["database"] = db
		appLog.Info("Database connection established")
	}
	repos := repository.NewRepositories(db)

	reportCache := cache.NewReportCache(cfg.CacheTTL(), cfg.Performance.CacheMaxSize)
	fetcher := upstream.NewSlateClient(&cfg.Upstream, appLog)

	decisions := service.NewDecisionService(engine, fetcher, appLog)
	performance := service.NewPerformanceService(
		grading.NewAggregator(grading.DefaultThresholds()),
		repos.GradedPicks,
		reportCache,
		seasonStart,
		appLog,
	)

	if cfg.Performance.RefreshEnabled {
		sched := scheduler.NewScheduler(performance, appLog)
		if err := sched.ScheduleReportRefresh(cfg.Performance.RefreshSchedule); err != nil {
			return fmt.Errorf("failed to schedule report refresh: %w", err)
		}
		if err := sched.Start(); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
		defer sched.Stop()
		go sched.RunRefresh()
	}

	checker := health.NewChecker(health.Config{
		ServiceName:  cfg.App.Name,
		Version:      engine.Config().Version,
		Logger:       appLog,
		Dependencies: deps,
	})

	routerCfg := api.RouterConfig{
		CORSOrigins:    cfg.Server.CORSOrigins,
		RequestTimeout: cfg.RequestTimeout(),
		Health:         checker,
		Logger:         appLog,
	}
	if cfg.Metrics.Enabled {
		routerCfg.MetricsPath = cfg.Metrics.Path
		routerCfg.MetricsHandler = metrics.Handler()
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      api.NewRouter(api.NewHandler(decisions, performance, appLog), routerCfg),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		appLog.WithFields(logrus.Fields{
			"addr":        srv.Addr,
			"environment": cfg.App.Environment,
			"upstream":    cfg.Upstream.Enabled,
			"database":    cfg.Database.Enabled,
			"version":     Version,
		}).Info("PickPulse listening")
		serverErrors <- srv.ListenAndServe()
	}()
	checker.SetReady(true)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		appLog.Info("Shutdown signal received")
	}

	checker.SetReady(false)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	appLog.Info("Server stopped")
	return nil
}
