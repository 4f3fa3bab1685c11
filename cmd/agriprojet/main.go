package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/agriprojet/agriprojet/internal/app"
	"github.com/agriprojet/agriprojet/internal/crops"
	"github.com/agriprojet/agriprojet/internal/export"
	"github.com/agriprojet/agriprojet/internal/observability"
	"github.com/agriprojet/agriprojet/internal/platform/cache"
	"github.com/agriprojet/agriprojet/internal/platform/db"
	"github.com/agriprojet/agriprojet/internal/projects"
	projectshttp "github.com/agriprojet/agriprojet/internal/projects/http"
	"github.com/agriprojet/agriprojet/jobs"
	"github.com/agriprojet/agriprojet/report"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN, db.Options{
		MaxConns:        cfg.PGMaxConns,
		MinConns:        cfg.PGMinConns,
		MaxConnLifetime: cfg.PGMaxConnLifetime,
	})
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	repo := projects.NewRepository(dbpool)
	if err := repo.Migrate(ctx); err != nil {
		logger.Error("migrate", slog.Any("error", err))
		os.Exit(1)
	}

	var reportCache *projects.Cache
	redisClient, err := cache.New(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Warn("redis unavailable, reports will not be cached", slog.Any("error", err))
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
		reportCache = projects.NewCache(redisClient, cfg.ReportCacheTTL)
		if err := reportCache.ListenForInvalidation(ctx, ""); err != nil {
			logger.Warn("subscribe cache invalidation", slog.Any("error", err))
		}
	}

	var baseCrops []crops.Crop
	if cfg.CropCatalogPath != "" {
		baseCrops, err = crops.LoadFile(cfg.CropCatalogPath)
		if err != nil {
			logger.Error("load crop catalog", slog.String("path", cfg.CropCatalogPath), slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("crop catalog loaded", slog.Int("custom_crops", len(baseCrops)))
	}
	catalog, err := crops.NewCatalog(baseCrops...)
	if err != nil {
		logger.Error("build crop catalog", slog.Any("error", err))
		os.Exit(1)
	}

	redisOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB}
	queue := jobs.NewClient(redisOpts, cfg.RefreshDedup)
	defer func() {
		if err := queue.Close(); err != nil {
			logger.Warn("queue close", slog.Any("error", err))
		}
	}()

	service := projects.NewService(repo, reportCache, queue, projects.ServiceConfig{
		Assumptions: cfg.Assumptions(),
		BaseCrops:   baseCrops,
		Logger:      logger,
	})

	metrics := observability.NewMetrics()
	metrics.RegisterReportStats(func() (int64, int64) {
		s := service.Stats()
		return s.Builds, s.CacheHits
	})

	gotenberg := report.NewClient(cfg.GotenbergURL, cfg.GotenbergTimeout)
	if err := gotenberg.Ping(ctx); err != nil {
		logger.Warn("gotenberg unreachable, pdf exports will fail", slog.Any("error", err))
	}
	apiHandler := projectshttp.NewHandler(logger, service, catalog, &export.PDFExporter{Renderer: gotenberg})
	apiHandler.ExportLimit = cfg.ExportRateLimit

	inspector := asynq.NewInspector(redisOpts)
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:     logger,
		Config:     cfg,
		APIHandler: apiHandler,
		JobHandler: jobHandler,
		Metrics:    metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
