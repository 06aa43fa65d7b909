package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/ticket-insights/internal/api/http"
	"github.com/spec-kit/ticket-insights/internal/api/http/handlers"
	"github.com/spec-kit/ticket-insights/internal/collab"
	"github.com/spec-kit/ticket-insights/internal/config"
	"github.com/spec-kit/ticket-insights/internal/events"
	"github.com/spec-kit/ticket-insights/internal/jira"
	"github.com/spec-kit/ticket-insights/internal/observability"
	"github.com/spec-kit/ticket-insights/internal/persistence"
	"github.com/spec-kit/ticket-insights/internal/repository"
	"github.com/spec-kit/ticket-insights/internal/service"
	"github.com/spec-kit/ticket-insights/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations && pg.PoolHandle() != nil {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	service.NewAuditService(dispatcher, logger).RegisterHandlers()

	jiraClient := jira.NewClient(cfg.Jira, metrics, logger)
	mapper := jira.NewMapper(cfg.Jira, cfg.Report.Stream, time.Now)
	holder := service.NewSnapshotHolder()

	var snapshots service.SnapshotSaver
	if repo := repository.NewSnapshotRepository(pg.PoolHandle()); repo != nil {
		snapshots = repo
	}
	var cache service.SnapshotCache
	if c := repository.NewRedisSnapshotCache(redis.Client); c != nil {
		cache = c
	}

	syncService := service.NewSyncService(*cfg, service.SyncDependencies{
		Client:     jiraClient,
		Mapper:     mapper,
		Holder:     holder,
		Snapshots:  snapshots,
		Cache:      cache,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})

	syncService.WarmStart(ctx)
	go func() {
		if _, err := syncService.Refresh(ctx); err != nil {
			logger.Warn("initial refresh failed", zap.Error(err))
		}
	}()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics)
	reportHandler := handlers.NewReportHandler(syncService, holder)
	ticketsHandler := handlers.NewTicketsHandler(holder)

	var minutesHandler *handlers.MinutesHandler
	if cfg.Parser.BaseURL != "" {
		minutesStore := collab.NewRedisMinutesStore(redis.Client)
		minutesService := service.NewMinutesService(service.MinutesDependencies{
			Extractor:  collab.NewExtractorClient(cfg.Parser.BaseURL, time.Duration(cfg.Parser.TimeoutSeconds)*time.Second),
			Parser:     collab.NewParserClient(cfg.Parser, logger),
			Store:      minutesStore,
			Tickets:    jiraClient,
			Calendar:   calendarDrafter(*cfg),
			Dispatcher: dispatcher,
			Metrics:    metrics,
			Logger:     logger,
		})
		minutesHandler = handlers.NewMinutesHandler(minutesService, minutesStore, cfg.App.IdentityHeader, cfg.Report.Owner)
	} else {
		logger.Info("PARSER_BASE_URL not set; minutes endpoints disabled")
	}

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  healthHandler,
		Report:  reportHandler,
		Tickets: ticketsHandler,
		Minutes: minutesHandler,
	})

	refreshWorker := worker.NewRefreshWorker(syncService, cfg.Report.RefreshCron, logger)
	if err := refreshWorker.Start(ctx); err != nil {
		logger.Fatal("failed to start refresh worker", zap.Error(err))
	}

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	refreshWorker.Stop()
	_ = app.Shutdown()
}

func calendarDrafter(cfg config.Config) collab.CalendarDrafter {
	if cfg.Calendar.BaseURL == "" {
		return nil
	}
	return collab.NewCalendarClient(cfg.Calendar)
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
