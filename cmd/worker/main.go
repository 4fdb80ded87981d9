package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	natsadapter "github.com/avinashdhn/mechmap/internal/adapters/nats"
	"github.com/avinashdhn/mechmap/internal/adapters/postgres"
	"github.com/avinashdhn/mechmap/internal/adapters/valkey"
	"github.com/avinashdhn/mechmap/internal/core/ports"
	"github.com/avinashdhn/mechmap/internal/core/usecases"
	"github.com/avinashdhn/mechmap/internal/pkg/config"
	"github.com/avinashdhn/mechmap/internal/pkg/logging"
	"github.com/avinashdhn/mechmap/internal/workflows"
)

func main() {
	cfg, err := config.Load("mechmap-worker")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup(logLevel, "json")

	ctx := context.Background()

	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	cache, err := valkey.New(cfg.Valkey.Addr)
	if err != nil {
		slog.Warn("valkey unavailable", "error", err)
	} else {
		defer cache.Close()
	}

	publisher, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable", "error", err)
	} else {
		defer publisher.Close()
	}

	var cachePort ports.CacheService
	if cache != nil {
		cachePort = cache
	}
	var pubPort ports.EventPublisher
	if publisher != nil {
		pubPort = publisher
	}

	// The activity applies decisions directly; no starter here, the
	// worker is the end of the chain.
	providerRepo := postgres.NewProviderRepo(db)
	moderationSvc := usecases.NewModerationService(providerRepo, cachePort, pubPort, nil)

	// Connect to Temporal
	c, err := client.Dial(client.Options{
		HostPort: cfg.Temporal.HostPort,
	})
	if err != nil {
		log.Fatalf("temporal client: %v", err)
	}
	defer c.Close()

	w := worker.New(c, cfg.Temporal.TaskQueue, worker.Options{})

	w.RegisterWorkflow(workflows.ModerationWorkflow)
	w.RegisterActivity(&workflows.ModerationActivities{
		Moderation: moderationSvc,
	})

	slog.Info("moderation worker started", "task_queue", cfg.Temporal.TaskQueue)
	if err := w.Run(worker.InterruptCh()); err != nil {
		log.Fatalf("worker: %v", err)
	}
}
