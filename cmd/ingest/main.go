package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/chicpic/backend/internal/application/ingest"
	"github.com/chicpic/backend/internal/infrastructure/config"
	"github.com/chicpic/backend/internal/infrastructure/logger"
	"github.com/chicpic/backend/internal/infrastructure/persistence"
	"github.com/chicpic/backend/internal/infrastructure/refdata"
	"github.com/chicpic/backend/internal/infrastructure/scheduler"
	"github.com/chicpic/backend/internal/infrastructure/shopify"
	"github.com/chicpic/backend/internal/infrastructure/snapshot"
	"go.uber.org/zap"
)

func main() {
	var (
		shopName  string
		skipFetch bool
		skipParse bool
		daemon    bool
	)

	flag.StringVar(&shopName, "shop", "", "Run a single shop (default: all enabled shops)")
	flag.BoolVar(&skipFetch, "skip-fetch", false, "Reuse the raw snapshot on disk instead of fetching")
	flag.BoolVar(&skipParse, "skip-parse", false, "Reuse the parsed snapshot on disk instead of parsing")
	flag.BoolVar(&daemon, "daemon", false, "Keep running and ingest on the configured cron schedule")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Chicpic ingestion",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Build the ingestion pipeline
	ref := refdata.NewStore(cfg.Data.FixturesDir)
	registry, err := ingest.NewRegistry(ref, log)
	if err != nil {
		log.Fatal("Failed to build pipeline registry", zap.Error(err))
	}

	service := ingest.NewService(
		registry,
		shopify.NewClient(cfg.Fetch, log),
		snapshot.NewStore(cfg.Data.SnapshotDir),
		persistence.NewGormTransactionScope(db.DB),
		persistence.NewGormIngestionRunRepository(db.DB),
		log,
	)

	shops := cfg.Shops.Enabled
	if len(shops) == 0 {
		shops = registry.ShopNames()
	}
	if shopName != "" {
		shops = []string{shopName}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if daemon {
		runDaemon(ctx, service, shops, cfg, log)
		return
	}

	opts := ingest.RunOptions{SkipFetch: skipFetch, SkipParse: skipParse}
	failed := false
	for _, shop := range shops {
		run, err := service.Run(ctx, shop, opts)
		if err != nil {
			log.Error("Ingestion failed", zap.String("shop", shop), zap.Error(err))
			failed = true
			continue
		}
		log.Info("Ingestion finished",
			zap.String("shop", shop),
			zap.String("status", string(run.Status)),
		)
	}
	if failed {
		os.Exit(1)
	}
}

// runDaemon keeps the process alive and ingests on the cron schedule
func runDaemon(ctx context.Context, service *ingest.Service, shops []string, cfg *config.Config, log *zap.Logger) {
	sched := scheduler.NewIngestScheduler(service, shops, cfg.Scheduler.CronSchedule, log)
	if err := sched.Start(ctx); err != nil {
		log.Fatal("Failed to start scheduler", zap.Error(err))
	}

	<-ctx.Done()
	log.Info("Shutting down")
	sched.Stop()
}
