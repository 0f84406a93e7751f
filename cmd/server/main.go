package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"relocation-planner-service/internal/adapters/cache"
	"relocation-planner-service/internal/adapters/notify"
	"relocation-planner-service/internal/adapters/repositories"
	"relocation-planner-service/internal/api"
	"relocation-planner-service/internal/api/handlers"
	"relocation-planner-service/internal/config"
	"relocation-planner-service/internal/domain"
	"relocation-planner-service/internal/platform/db"
	"relocation-planner-service/internal/ports"
	"relocation-planner-service/internal/services"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

// main is the application composition root.
// It wires concrete adapters (Postgres or SQLite, Redis, webhook) behind ports and starts the HTTP server.
func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, closeLog := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer closeLog()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, dialect, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(ctx, conn, dialect, cfg.SeedPath); err != nil {
		return err
	}

	repo := newRepository(conn, dialect)

	deps := services.Deps{
		CacheTTL:    cfg.PlanCacheTTL,
		HookTimeout: cfg.HookTimeout,
		Hooks: services.Hooks{
			Visualizer: notify.LogVisualizer{Logger: logger},
			Alerter:    notify.LogAlerter{Logger: logger},
			Explainer:  notify.LogExplainer{Logger: logger},
		},
	}

	if cfg.RedisURL != "" {
		planCache, err := cache.NewRedisPlanCacheFromURL(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer planCache.Close()
		deps.Cache = planCache
	}

	if cfg.AlertWebhookURL != "" {
		alerter, err := notify.NewWebhookAlerter(cfg.AlertWebhookURL, cfg.AlertWebhookSecret,
			notify.WithMaxAttempts(cfg.AlertWebhookMaxAttempts),
		)
		if err != nil {
			return err
		}
		deps.Hooks.Alerter = alerter
	}

	defaults := handlers.PlannerDefaults{
		Target:         domain.Position{X: cfg.Planner.TargetX, Y: cfg.Planner.TargetY},
		Threshold:      cfg.Planner.Threshold,
		OrderPolicy:    cfg.Planner.OrderPolicy,
		TieBreakPolicy: cfg.Planner.TieBreakPolicy,
	}
	// Fail fast on misconfigured policies rather than on the first request.
	if _, err := services.ResolveMatchOptions(defaults.OrderPolicy, defaults.TieBreakPolicy); err != nil {
		return err
	}

	router := api.NewRouter(repo, deps, defaults)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server listening", "addr", srv.Addr, "dialect", dialect, "cache", deps.Cache != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		slog.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func openStore(cfg config.Config) (*sql.DB, repositories.Dialect, error) {
	if cfg.DatabaseURL != "" {
		conn, err := db.Open(cfg.DatabaseURL)
		return conn, repositories.DialectPostgres, err
	}
	conn, err := db.OpenSQLite(cfg.DBPath)
	return conn, repositories.DialectSQLite, err
}

func newRepository(conn *sql.DB, dialect repositories.Dialect) ports.PopulationRepository {
	if dialect == repositories.DialectPostgres {
		return repositories.NewPostgresPopulationRepository(conn)
	}
	return repositories.NewSqlitePopulationRepository(conn)
}

func initAndSeed(ctx context.Context, conn *sql.DB, dialect repositories.Dialect, seedPath string) error {
	if err := repositories.InitSchema(ctx, conn, dialect); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if _, err := os.Stat(seedPath); errors.Is(err, os.ErrNotExist) {
		slog.Info("no seed file, skipping seed", "path", seedPath)
		return nil
	}

	if err := repositories.SeedFromFile(ctx, conn, dialect, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
