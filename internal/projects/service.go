package projects

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/agriprojet/agriprojet/internal/crops"
	"github.com/agriprojet/agriprojet/internal/projection"
)

// Store is the persistence the service relies on.
type Store interface {
	Create(ctx context.Context, p Project) error
	Get(ctx context.Context, id uuid.UUID) (Project, error)
	ListByUser(ctx context.Context, userID string) ([]Summary, error)
	Update(ctx context.Context, p Project) error
	Delete(ctx context.Context, id uuid.UUID, userID string) error
}

// RefreshQueue schedules a background recompute of a project report.
type RefreshQueue interface {
	RequestRefresh(ctx context.Context, projectID string) error
}

// ServiceConfig carries the defaults applied to every project.
type ServiceConfig struct {
	Assumptions projection.Assumptions
	// BaseCrops are added to the default catalog of every project.
	BaseCrops []crops.Crop
	Logger    *slog.Logger
	Now       func() time.Time
}

// Service validates, stores and reports on projects.
type Service struct {
	store    Store
	cache    *Cache
	queue    RefreshQueue
	validate *validator.Validate
	cfg      ServiceConfig
	group    singleflight.Group
	// defaults fingerprints cfg.Assumptions and cfg.BaseCrops in report keys.
	defaults string

	builds    atomic.Int64
	cacheHits atomic.Int64
}

// Stats counts report builds and cache hits since the service started.
type Stats struct {
	Builds    int64 `json:"builds"`
	CacheHits int64 `json:"cacheHits"`
}

// NewService wires a store with an optional cache and refresh queue.
func NewService(store Store, cache *Cache, queue RefreshQueue, cfg ServiceConfig) *Service {
	if cfg.Now == nil {
		cfg.Now = func() time.Time { return time.Now().UTC() }
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Assumptions == (projection.Assumptions{}) {
		cfg.Assumptions = projection.DefaultAssumptions()
	}
	defaults, err := DefaultsHash(cfg.Assumptions, cfg.BaseCrops)
	if err != nil {
		cfg.Logger.Warn("hash service defaults", slog.Any("error", err))
	}
	return &Service{store: store, cache: cache, queue: queue, validate: validator.New(), cfg: cfg, defaults: defaults}
}

// Defaults returns the assumptions applied when a project sets none.
func (s *Service) Defaults() projection.Assumptions {
	return s.cfg.Assumptions
}

// Catalog builds the crop catalog of a project: the defaults, the service
// base crops and the project's custom crops.
func (s *Service) Catalog(content Content) (*crops.Catalog, error) {
	custom := make([]crops.Crop, 0, len(s.cfg.BaseCrops)+len(content.CustomCrops))
	custom = append(custom, s.cfg.BaseCrops...)
	custom = append(custom, content.CustomCrops...)
	catalog, err := crops.NewCatalog(custom...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return catalog, nil
}

// Validate checks the content of a project.
func (s *Service) Validate(content Content) error {
	if err := s.validate.Struct(content); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if a := content.Parameters.Assumptions; a != nil {
		if err := s.validate.Struct(a); err != nil {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}
	if err := checkEnums(content); err != nil {
		return err
	}
	if _, err := s.Catalog(content); err != nil {
		return err
	}
	return nil
}

// CheckPlan rejects plan lines carrying an unknown production mode or funding
// type. An empty mode is accepted and resolved from the line itself.
func CheckPlan(plan projection.Plan) error {
	for _, p := range plan.Products {
		if p.Mode != "" && !p.Mode.Valid() {
			return fmt.Errorf("%w: product %s has unknown mode %q", ErrValidation, p.ID, p.Mode)
		}
	}
	for _, f := range plan.Funding {
		if !f.Type.Valid() {
			return fmt.Errorf("%w: funding %s has unknown type %q", ErrValidation, f.ID, f.Type)
		}
	}
	return nil
}

// checkEnums rejects unknown parcel and plantation states. Empty values are
// accepted where a default applies.
func checkEnums(content Content) error {
	for _, p := range content.Parcels {
		if p.Status != "" && !p.Status.Valid() {
			return fmt.Errorf("%w: parcel %s has unknown status %q", ErrValidation, p.ID, p.Status)
		}
	}
	for _, pl := range content.Plantations {
		if pl.ExploitationType != "" && !pl.ExploitationType.Valid() {
			return fmt.Errorf("%w: plantation %s has unknown exploitation type %q", ErrValidation, pl.ID, pl.ExploitationType)
		}
		if pl.Status != "" && !pl.Status.Valid() {
			return fmt.Errorf("%w: plantation %s has unknown status %q", ErrValidation, pl.ID, pl.Status)
		}
	}
	return CheckPlan(content.Plan)
}

// Create stores a new project for userID.
func (s *Service) Create(ctx context.Context, userID string, content Content) (Project, error) {
	userID, err := requireUser(userID)
	if err != nil {
		return Project{}, err
	}
	if err := s.Validate(content); err != nil {
		return Project{}, err
	}
	now := s.cfg.Now()
	p := Project{Content: content, ID: uuid.New(), UserID: userID, CreatedAt: now, UpdatedAt: now}
	if err := s.store.Create(ctx, p); err != nil {
		return Project{}, err
	}
	s.requestRefresh(ctx, p.ID)
	return p, nil
}

// Get loads a project owned by userID.
func (s *Service) Get(ctx context.Context, userID string, id uuid.UUID) (Project, error) {
	userID, err := requireUser(userID)
	if err != nil {
		return Project{}, err
	}
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return Project{}, err
	}
	if p.UserID != userID {
		return Project{}, ErrForbidden
	}
	return p, nil
}

// List returns the projects of userID.
func (s *Service) List(ctx context.Context, userID string) ([]Summary, error) {
	userID, err := requireUser(userID)
	if err != nil {
		return nil, err
	}
	return s.store.ListByUser(ctx, userID)
}

// Update replaces the content of a project owned by userID.
func (s *Service) Update(ctx context.Context, userID string, id uuid.UUID, content Content) (Project, error) {
	p, err := s.Get(ctx, userID, id)
	if err != nil {
		return Project{}, err
	}
	if err := s.Validate(content); err != nil {
		return Project{}, err
	}
	p.Content = content
	p.UpdatedAt = s.cfg.Now()
	if err := s.store.Update(ctx, p); err != nil {
		return Project{}, err
	}
	s.requestRefresh(ctx, p.ID)
	return p, nil
}

// Delete removes a project owned by userID.
func (s *Service) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id, userID)
}

// Report returns the report of a project owned by userID.
func (s *Service) Report(ctx context.Context, userID string, id uuid.UUID) (Report, error) {
	p, err := s.Get(ctx, userID, id)
	if err != nil {
		return Report{}, err
	}
	return s.ReportFor(ctx, p)
}

// Refresh recomputes the report of any project and stores it in the cache.
func (s *Service) Refresh(ctx context.Context, id uuid.UUID) (Report, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return Report{}, err
	}
	return s.ReportFor(ctx, p)
}

// ReportFor returns the report of p, from the cache when the content has not
// changed. Concurrent requests for the same content share one build.
func (s *Service) ReportFor(ctx context.Context, p Project) (Report, error) {
	hash, err := ContentHash(p.Content)
	if err != nil {
		return Report{}, err
	}
	parts := keyReport(p.ID, hash, s.defaults)
	key, err := s.cache.BuildKey(ctx, parts...)
	if err != nil {
		s.cfg.Logger.Warn("report cache key", slog.Any("error", err))
		key = strings.Join(parts, ":")
	}

	value, err, _ := singleflightBuild(ctx, &s.group, key, func(ctx context.Context) (any, error) {
		var report Report
		hit, err := s.cache.FetchJSON(ctx, key, &report, func(context.Context) (any, error) {
			return s.build(p, hash)
		})
		if hit {
			s.cacheHits.Add(1)
		}
		return report, err
	})
	if err != nil {
		return Report{}, err
	}
	return value.(Report), nil
}

func (s *Service) build(p Project, hash string) (Report, error) {
	catalog, err := s.Catalog(p.Content)
	if err != nil {
		return Report{}, err
	}
	a := s.cfg.Assumptions
	if p.Parameters.Assumptions != nil {
		a = *p.Parameters.Assumptions
	}
	report := BuildReport(p, catalog, a)
	report.ContentHash = hash

	s.builds.Add(1)
	if !report.Balanced() {
		s.cfg.Logger.Warn("projected balance sheet does not balance",
			slog.String("project_id", p.ID.String()),
			slog.Any("years", report.UnbalancedYears()))
	}
	return report, nil
}

// Stats returns the build and cache counters.
func (s *Service) Stats() Stats {
	return Stats{Builds: s.builds.Load(), CacheHits: s.cacheHits.Load()}
}

func (s *Service) requestRefresh(ctx context.Context, id uuid.UUID) {
	if s.queue == nil {
		return
	}
	if err := s.queue.RequestRefresh(ctx, id.String()); err != nil {
		s.cfg.Logger.Warn("enqueue report refresh", slog.String("project_id", id.String()), slog.Any("error", err))
	}
}

func requireUser(userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", ErrUserRequired
	}
	return userID, nil
}

func singleflightBuild(ctx context.Context, group *singleflight.Group, key string, fn func(context.Context) (any, error)) (any, error, bool) {
	resultChan := group.DoChan(key, func() (any, error) {
		return fn(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err(), false
	case res := <-resultChan:
		return res.Val, res.Err, res.Shared
	}
}
