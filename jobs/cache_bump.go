package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	jobmetrics "github.com/agriprojet/agriprojet/internal/jobs"
)

// CacheBumper invalidates every cached report.
type CacheBumper interface {
	Bump(ctx context.Context) error
}

// ProjectLister lists every stored project id.
type ProjectLister interface {
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
}

// RefreshRequester enqueues a refresh for one project.
type RefreshRequester interface {
	RequestRefresh(ctx context.Context, projectID string) error
}

// CacheBumpJob moves the report cache to a new version and optionally
// re-enqueues a refresh for every project.
type CacheBumpJob struct {
	Cache   CacheBumper
	Lister  ProjectLister
	Queue   RefreshRequester
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewCacheBumpJob wires dependencies for the cache bump handler. lister and
// queue may be nil, in which case nothing is warmed.
func NewCacheBumpJob(cache CacheBumper, lister ProjectLister, queue RefreshRequester, logger *slog.Logger, metrics *jobmetrics.Metrics) *CacheBumpJob {
	return &CacheBumpJob{Cache: cache, Lister: lister, Queue: queue, Logger: logger, Metrics: metrics}
}

// Handle processes cache bump tasks.
func (j *CacheBumpJob) Handle(ctx context.Context, t *asynq.Task) (resultErr error) {
	if j == nil || j.Cache == nil {
		return errors.New("cache bump: handler not configured")
	}
	var payload CacheBumpPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
	}

	tracker := j.metrics().Track(TaskCacheBump)
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger()
	if err := j.Cache.Bump(ctx); err != nil {
		logger.Error("bump report cache", slog.Any("error", err))
		return err
	}
	if !payload.Warm || j.Lister == nil || j.Queue == nil {
		logger.Info("report cache bumped")
		return nil
	}

	ids, err := j.Lister.ListIDs(ctx)
	if err != nil {
		logger.Error("list projects", slog.Any("error", err))
		return err
	}
	queued := 0
	for _, id := range ids {
		if err := j.Queue.RequestRefresh(ctx, id.String()); err != nil {
			logger.Warn("enqueue refresh", slog.String("project_id", id.String()), slog.Any("error", err))
			continue
		}
		queued++
	}
	logger.Info("report cache bumped", slog.Int("projects", len(ids)), slog.Int("queued", queued))
	return nil
}

func (j *CacheBumpJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskCacheBump))
	}
	return slog.Default().With(slog.String("job", TaskCacheBump))
}

func (j *CacheBumpJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}
