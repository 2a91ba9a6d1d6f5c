// Package main is the entry point for the fuel logbook API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/mvbarbosa/fuellog/internal/config"
	"github.com/mvbarbosa/fuellog/internal/event"
	"github.com/mvbarbosa/fuellog/internal/handler"
	"github.com/mvbarbosa/fuellog/internal/i18n"
	"github.com/mvbarbosa/fuellog/internal/kv"
	"github.com/mvbarbosa/fuellog/internal/middleware"
	"github.com/mvbarbosa/fuellog/internal/repo"
	"github.com/mvbarbosa/fuellog/internal/service"
	"github.com/mvbarbosa/fuellog/internal/validate"
	"github.com/mvbarbosa/fuellog/migrations"
)

// maxImportBody bounds the POST /import payload (1 MiB is roomy for a full
// backup: 100 trips plus vehicles is a few tens of KB).
const maxImportBody = 1 << 20

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog JSON handler writes machine-readable output suitable for log
	// aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Store ------------------------------------------------------------
	// DATABASE_URL selects the Postgres backend; otherwise records live as
	// JSON files under DATA_DIR. The capability probe runs before the server
	// accepts traffic so an unusable store fails fast, not mid-request.
	var store kv.Store
	if cfg.DatabaseURL != "" {
		if err := runMigrations(cfg.DatabaseURL); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}

		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to create database pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		store = kv.NewPgStore(pool)
		slog.Info("using postgres store")
	} else {
		fileStore, err := kv.NewFileStore(cfg.DataDir)
		if err != nil {
			slog.Error("failed to open data directory", "error", err, "dir", cfg.DataDir)
			os.Exit(1)
		}
		store = fileStore
		slog.Info("using file store", "dir", cfg.DataDir)
	}

	if err := store.Probe(context.Background()); err != nil {
		slog.Error("storage probe failed", "error", err)
		os.Exit(1)
	}
	slog.Info("storage probe ok")

	// --- Services ---------------------------------------------------------
	bus := event.New()
	limits := validate.DefaultLimits()

	vehicleRepo := repo.NewVehicleRepo(store)
	tripRepo := repo.NewTripRepo(store)
	settingsRepo := repo.NewSettingsRepo(store)

	locale := i18n.New(context.Background(), settingsRepo, bus, cfg.DefaultLanguage)
	vehicles := service.NewVehicleService(vehicleRepo, bus, limits)
	trips := service.NewTripService(tripRepo, bus, limits, cfg.HistoryLimit)
	history := service.NewHistoryService(tripRepo, bus)
	stats := service.NewStatsService(tripRepo, bus, cfg.StatsWindowDays, cfg.StatsDebounce)
	defer stats.Close()
	backup := service.NewBackupService(vehicleRepo, tripRepo, settingsRepo, bus, cfg.HistoryLimit)

	// --- Router -----------------------------------------------------------
	// Middleware order: RequestID → RealIP → Logger → Recoverer → CORS →
	// body size limit. Recoverer catches panics and returns HTTP 500 instead
	// of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxImportBody))

	srvHandler := handler.NewServer(vehicles, trips, history, stats, backup, locale)
	r.Mount("/", srvHandler.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// runMigrations applies the embedded goose migrations before the pool opens.
func runMigrations(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}
	_, err = provider.Up(context.Background())
	return err
}
