package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/avinashdhn/mechmap/internal/adapters/http"
	natsadapter "github.com/avinashdhn/mechmap/internal/adapters/nats"
	"github.com/avinashdhn/mechmap/internal/adapters/postgres"
	"github.com/avinashdhn/mechmap/internal/adapters/temporal"
	"github.com/avinashdhn/mechmap/internal/adapters/valkey"
	"github.com/avinashdhn/mechmap/internal/core/ports"
	"github.com/avinashdhn/mechmap/internal/core/usecases"
	"github.com/avinashdhn/mechmap/internal/pkg/config"
	"github.com/avinashdhn/mechmap/internal/pkg/logging"
	"github.com/avinashdhn/mechmap/internal/pkg/telemetry"
	"github.com/avinashdhn/mechmap/internal/pkg/token"
)

func main() {
	cfg, err := config.Load("mechmap-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup(logLevel, "json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Database
	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Cache
	cache, err := valkey.New(cfg.Valkey.Addr)
	if err != nil {
		slog.Warn("valkey unavailable", "error", err)
	} else {
		defer cache.Close()
	}

	// NATS
	publisher, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable", "error", err)
	} else {
		defer publisher.Close()
	}

	// Raw NATS connection for WebSocket relay
	natsConn, err := natsadapter.RawConn(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats ws conn unavailable", "error", err)
	}

	// Temporal (optional): moderation decisions route through a
	// workflow when configured, otherwise apply directly.
	var starter ports.ModerationStarter
	if cfg.Temporal.Enabled {
		ts, err := temporal.NewStarter(cfg.Temporal.HostPort, cfg.Temporal.TaskQueue)
		if err != nil {
			slog.Warn("temporal unavailable", "error", err)
		} else {
			defer ts.Close()
			starter = ts
		}
	}

	// Repos
	userRepo := postgres.NewUserRepo(db)
	providerRepo := postgres.NewProviderRepo(db)
	serviceRepo := postgres.NewServiceRepo(db)

	// Ports.CacheService is satisfied by *valkey.Cache; a nil interface
	// keeps the usecases cache-free when valkey is down.
	var cachePort ports.CacheService
	if cache != nil {
		cachePort = cache
	}
	var pubPort ports.EventPublisher
	if publisher != nil {
		pubPort = publisher
	}

	// Use cases
	tokens := token.NewManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	authSvc := usecases.NewAuthService(userRepo, tokens)
	providerSvc := usecases.NewProviderService(providerRepo, cachePort, pubPort, starter)
	nearbySvc := usecases.NewNearbyService(
		providerRepo, serviceRepo, cachePort,
		cfg.Nearby.RadiusKm, cfg.Nearby.IncludeStatuses, cfg.Nearby.CacheTTLSeconds,
	)
	serviceSvc := usecases.NewServiceService(serviceRepo, pubPort)
	moderationSvc := usecases.NewModerationService(providerRepo, cachePort, pubPort, starter)

	deps := &http.Dependencies{
		Auth:       authSvc,
		Providers:  providerSvc,
		Nearby:     nearbySvc,
		Services:   serviceSvc,
		Moderation: moderationSvc,
		Tokens:     tokens,
		NATS:       natsConn,
		DB:         db,
		Cache:      cache,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "MechMap API",
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000, http://localhost:5173",
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// Give in-flight requests up to 10s to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
