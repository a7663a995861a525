package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"statutes/internal/cache"
	"statutes/internal/config"
	handlers "statutes/internal/http/handler"
	"statutes/internal/http/middleware"
	"statutes/internal/logging"
	"statutes/internal/otel"
	"statutes/internal/repository/cached"
	"statutes/internal/service"
)

// @title Statutes Browser API
// @version 1.0
// @description Read-only browsing of statutory law texts by jurisdiction.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	logger := logging.New(os.Stdout, cfg.Location())
	logging.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, logger)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to register http metrics: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.LoggerWithWriter(os.Stdout, cfg.Location()))
	app.Use(httpMetrics.Handler())
	app.Use(middleware.SecureHeaders())

	if err := cfg.Validate(); err != nil {
		var cfgErr *config.Error
		if !errors.As(err, &cfgErr) {
			log.Fatalf("invalid configuration: %v", err)
		}
		logger.Error("config", "config_invalid", err, map[string]any{
			"missing":     cfgErr.Missing,
			"invalid":     cfgErr.Invalid,
			"remediation": cfgErr.Remediation(),
		})
		handlers.RegisterSetupRoutes(app, cfgErr, reg)
	} else {
		store, closeStore, err := openStore(ctx, cfg, logger)
		if err != nil {
			log.Fatalf("failed to open statute store: %v", err)
		}
		defer closeStore()

		cacheMetrics, err := cache.NewMetrics(reg)
		if err != nil {
			log.Fatalf("failed to register cache metrics: %v", err)
		}
		memo := cache.New(cfg.Browse.CacheTTL(),
			cache.WithMetrics(cacheMetrics),
			cache.WithCallTimeout(cfg.Store.Timeout()),
		)

		svc := service.NewStatuteService(cached.New(store, memo), service.Options{
			RecordType:      cfg.Store.RecordType,
			SingleSelection: cfg.Browse.SelectionMode == config.SelectionSingle,
			EscapeWildcards: cfg.Browse.EscapeWildcards,
		})

		// Store calls inherit the request deadline
		app.Use(middleware.Deadline(cfg.Store.Timeout()))

		handlers.RegisterRoutes(app, handlers.Deps{
			Statutes:        svc,
			Store:           store,
			Gatherer:        reg,
			SingleSelection: cfg.Browse.SelectionMode == config.SelectionSingle,
			Logger:          logger,
		})
		log.Infof("statute store ready: driver=%s table=%s cache_ttl=%s", cfg.Store.Driver, cfg.Store.Table, cfg.Browse.CacheTTL())
	}

	go func() {
		<-ctx.Done()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Errorf("shutdown: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
