package jobs

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskProjectionRefresh recomputes the report of one project and warms the cache.
	TaskProjectionRefresh = "projection:refresh"
	// TaskCacheBump invalidates every cached report.
	TaskCacheBump = "cache:bump"
)

// ProjectionRefreshPayload identifies the project to recompute.
type ProjectionRefreshPayload struct {
	ProjectID string `json:"projectId"`
}

// CacheBumpPayload configures the cache bump. Warm re-enqueues a refresh for
// every stored project once the version moved.
type CacheBumpPayload struct {
	Warm bool `json:"warm"`
}

// NewProjectionRefreshTask constructs a refresh task for projectID.
func NewProjectionRefreshTask(projectID string) (*asynq.Task, error) {
	projectID = strings.TrimSpace(projectID)
	if _, err := uuid.Parse(projectID); err != nil {
		return nil, err
	}
	body, err := json.Marshal(ProjectionRefreshPayload{ProjectID: projectID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskProjectionRefresh, body, asynq.Queue(QueueDefault)), nil
}

// NewCacheBumpTask constructs the cache invalidation task.
func NewCacheBumpTask(warm bool) (*asynq.Task, error) {
	body, err := json.Marshal(CacheBumpPayload{Warm: warm})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCacheBump, body, asynq.Queue(QueueDefault)), nil
}
