package projectshttp

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/agriprojet/agriprojet/internal/platform/httpx"
)

// MountRoutes registers the API endpoints onto the router.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	limit := h.ExportLimit
	if limit <= 0 {
		limit = 10
	}
	limiter := httprate.Limit(limit, time.Minute,
		httprate.WithKeyFuncs(rateLimitKey),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			httpx.Problem(w, http.StatusTooManyRequests, "Too Many Requests", "export rate limit reached")
		}),
	)

	r.Get("/crops", h.handleCrops)
	r.Route("/calc", func(r chi.Router) {
		r.Post("/parcel", h.handleCalcParcel)
		r.Post("/portfolio", h.handleCalcPortfolio)
		r.Get("/cycles", h.handleCalcCycles)
		r.Post("/statement", h.handleCalcStatement)
	})
	r.Route("/projects", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Get("/", h.handleList)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Put("/", h.handleUpdate)
			r.Delete("/", h.handleDelete)
			r.Get("/report", h.handleReport)
			r.Group(func(gr chi.Router) {
				gr.Use(limiter)
				gr.Get("/export.csv", h.handleExportCSV)
				gr.Get("/export.xlsx", h.handleExportXLSX)
				gr.Get("/export.pdf", h.handleExportPDF)
			})
		})
	})
}

func rateLimitKey(r *http.Request) (string, error) {
	if user := userID(r); user != "" {
		return "user:" + user, nil
	}
	key, err := httprate.KeyByIP(r)
	if err != nil {
		return "", err
	}
	return "ip:" + key, nil
}
