package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/neexbeast/travelviz/internal/activity"
	"github.com/neexbeast/travelviz/internal/api"
	"github.com/neexbeast/travelviz/internal/backend"
	"github.com/neexbeast/travelviz/internal/config"
	"github.com/neexbeast/travelviz/internal/datasource"
	"github.com/neexbeast/travelviz/internal/metrics"
	"github.com/neexbeast/travelviz/internal/page"
	"github.com/neexbeast/travelviz/internal/session"
	"github.com/neexbeast/travelviz/internal/storage"
)

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		slog.Error("loading config", "env", env, "err", err)
		os.Exit(1)
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.Logging.Level)}))

	if err := run(cfg, log); err != nil {
		log.Error("server exited with error", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx := context.Background()

	// Connect to PostgreSQL.
	pool, err := storage.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	// Run migrations.
	applied, err := storage.RunMigrations(ctx, pool, cfg.Database.MigrationsDir)
	if err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	log.Info("migrations applied", "count", len(applied), "files", applied)

	// Connect to Redis.
	redisClient, err := session.Connect(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	defer func() { _ = redisClient.Close() }()

	// Metrics.
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics, err := metrics.NewHTTP(reg)
	if err != nil {
		return fmt.Errorf("registering http metrics: %w", err)
	}
	observer, err := backend.NewObserver(reg)
	if err != nil {
		return fmt.Errorf("registering backend metrics: %w", err)
	}

	// Pick the data source once: the remote backend when it answers, demo data otherwise.
	client := backend.New(cfg.Backend, log, backend.WithObserver(observer))
	src := datasource.Select(ctx, client,
		datasource.NewRemote(client),
		datasource.NewFixed(cfg.Demo.MinDelay(), cfg.Demo.MaxDelay(), log),
		log,
	)

	// Wire dependencies.
	sessions := session.NewStore(redisClient, cfg.Redis.SessionTTL())
	prefs := storage.NewRepository(pool)
	activityLog := activity.NewLog(redisClient)

	handlers := api.NewHandlers(api.Pages{
		Upload:          page.NewUpload(src, sessions, prefs, log),
		Destinations:    page.NewDestinations(src, sessions, log),
		Visualizations:  page.NewVisualizations(src, sessions, log),
		Recommendations: page.NewRecommendations(src, sessions, log),
		Booking:         page.NewBooking(src, log),
		Imagine:         page.NewImagine(src, log),
		Preferences:     page.NewPreferences(prefs, activityLog, log),
	}, int64(cfg.HTTP.MaxUploadMB)<<20, log)

	router := api.NewRouter(handlers, api.RouterConfig{
		RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
		AllowedOrigins:    cfg.CORS.AllowedOrigins,
		Metrics:           httpMetrics,
		MetricsHandler:    promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		MetricsToken:      cfg.Metrics.BearerToken,
		Health:            api.HealthHandlerFunc(src.Mode(), pool, sessions, log),
		HandlerTimeout:    cfg.HTTP.WriteTimeout(),
		SecureCookies:     cfg.HTTP.SecureCookies,
	}, log)

	srv := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: cfg.HTTP.WriteTimeout(),
		IdleTimeout:  time.Duration(cfg.HTTP.IdleTimeoutSec) * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("server goroutine panicked", "recover", r)
				errCh <- fmt.Errorf("server panicked: %v", r)
			}
		}()
		log.Info("server starting", "port", cfg.HTTP.Port, "mode", src.Mode(), "backend", client.BaseURL())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("listening: %w", err)
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown signal received", "signal", sig)
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	log.Info("server shut down cleanly")
	return nil
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}
