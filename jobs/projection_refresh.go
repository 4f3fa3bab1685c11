package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	jobmetrics "github.com/agriprojet/agriprojet/internal/jobs"
	"github.com/agriprojet/agriprojet/internal/projects"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// ReportRefresher recomputes a project report and stores it in the cache.
type ReportRefresher interface {
	Refresh(ctx context.Context, id uuid.UUID) (projects.Report, error)
}

// ProjectionRefreshJob warms the report cache after a project is saved.
type ProjectionRefreshJob struct {
	Refresher ReportRefresher
	Logger    *slog.Logger
	Metrics   *jobmetrics.Metrics
	Timeout   time.Duration
}

// NewProjectionRefreshJob wires dependencies for the refresh handler.
func NewProjectionRefreshJob(refresher ReportRefresher, logger *slog.Logger, metrics *jobmetrics.Metrics) *ProjectionRefreshJob {
	return &ProjectionRefreshJob{
		Refresher: refresher,
		Logger:    logger,
		Metrics:   metrics,
		Timeout:   30 * time.Second,
	}
}

// Handle processes projection refresh tasks.
func (j *ProjectionRefreshJob) Handle(ctx context.Context, t *asynq.Task) (resultErr error) {
	if j == nil || j.Refresher == nil {
		return errors.New("projection refresh: handler not configured")
	}
	var payload ProjectionRefreshPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	id, err := uuid.Parse(payload.ProjectID)
	if err != nil {
		return asynq.SkipRetry
	}

	tracker := j.metrics().Track(TaskProjectionRefresh)
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger().With(slog.String("project_id", id.String()))
	if j.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.Timeout)
		defer cancel()
	}

	start := time.Now()
	report, err := j.Refresher.Refresh(ctx, id)
	if errors.Is(err, projects.ErrNotFound) {
		logger.Info("project gone, skipping refresh")
		return nil
	}
	if err != nil {
		logger.Error("refresh report", slog.Any("error", err))
		return err
	}

	unbalanced := report.UnbalancedYears()
	j.metrics().AddUnbalanced(len(unbalanced))
	logger.Info("report refreshed",
		slog.Bool("balanced", len(unbalanced) == 0),
		slog.Duration("duration", time.Since(start)))
	return nil
}

func (j *ProjectionRefreshJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskProjectionRefresh))
	}
	return slog.Default().With(slog.String("job", TaskProjectionRefresh))
}

func (j *ProjectionRefreshJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}
