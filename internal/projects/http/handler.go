// Package projectshttp exposes the calculators and the project store over a
// JSON API.
package projectshttp

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/agriprojet/agriprojet/internal/crops"
	"github.com/agriprojet/agriprojet/internal/export"
	"github.com/agriprojet/agriprojet/internal/platform/httpx"
	"github.com/agriprojet/agriprojet/internal/projection"
	"github.com/agriprojet/agriprojet/internal/projects"
)

// UserHeader carries the caller identity set by the upstream gateway.
const UserHeader = "X-User-ID"

const (
	requestTimeout = 10 * time.Second
	exportTimeout  = 45 * time.Second
)

var errInvalidID = errors.New("invalid project id")

// ProjectService is the project contract used by the handler.
type ProjectService interface {
	Create(ctx context.Context, userID string, content projects.Content) (projects.Project, error)
	Get(ctx context.Context, userID string, id uuid.UUID) (projects.Project, error)
	List(ctx context.Context, userID string) ([]projects.Summary, error)
	Update(ctx context.Context, userID string, id uuid.UUID, content projects.Content) (projects.Project, error)
	Delete(ctx context.Context, userID string, id uuid.UUID) error
	ReportFor(ctx context.Context, p projects.Project) (projects.Report, error)
	Defaults() projection.Assumptions
}

// PDFService renders a business plan to PDF bytes.
type PDFService interface {
	RenderBusinessPlan(ctx context.Context, doc export.Document) ([]byte, error)
}

// Handler serves the /api routes.
type Handler struct {
	logger   *slog.Logger
	service  ProjectService
	catalog  *crops.Catalog
	pdf      PDFService
	validate *validator.Validate
	bufPool  sync.Pool
	now      func() time.Time
	// ExportLimit caps export requests per user and minute.
	ExportLimit int
}

// NewHandler constructs the API handler. catalog is the reference crop table
// served by the stateless calculators.
func NewHandler(logger *slog.Logger, service ProjectService, catalog *crops.Catalog, pdf PDFService) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if catalog == nil {
		catalog = crops.MustDefault()
	}
	h := &Handler{
		logger:      logger,
		service:     service,
		catalog:     catalog,
		pdf:         pdf,
		validate:    validator.New(),
		now:         time.Now,
		ExportLimit: 10,
	}
	h.bufPool.New = func() any { return new(bytes.Buffer) }
	return h
}

// WithNow overrides the handler clock for testing.
func (h *Handler) WithNow(fn func() time.Time) {
	if fn != nil {
		h.now = fn
	}
}

func userID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(UserHeader))
}

func projectID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, errors.Join(httpx.ErrValidation, errInvalidID)
	}
	return id, nil
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, httpx.ErrNotFound),
		errors.Is(err, httpx.ErrDuplicate),
		errors.Is(err, httpx.ErrValidation),
		errors.Is(err, httpx.ErrForbidden),
		errors.Is(err, httpx.ErrUnauthorized):
	default:
		h.logger.Error("request failed",
			slog.String("op", op),
			slog.String("path", r.URL.Path),
			slog.Any("error", err))
	}
	httpx.RespondError(w, err)
}

func (h *Handler) getBuffer() *bytes.Buffer {
	buf := h.bufPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func (h *Handler) putBuffer(buf *bytes.Buffer) {
	buf.Reset()
	h.bufPool.Put(buf)
}
