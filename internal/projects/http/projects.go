package projectshttp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/agriprojet/agriprojet/internal/export"
	"github.com/agriprojet/agriprojet/internal/platform/httpx"
	"github.com/agriprojet/agriprojet/internal/projects"
)

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var content projects.Content
	if err := httpx.DecodeJSON(w, r, &content); err != nil {
		httpx.RespondError(w, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	p, err := h.service.Create(ctx, userID(r), content)
	if err != nil {
		h.respondError(w, r, "create project", err)
		return
	}
	w.Header().Set("Location", "/api/projects/"+p.ID.String())
	httpx.JSON(w, http.StatusCreated, p)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	list, err := h.service.List(ctx, userID(r))
	if err != nil {
		h.respondError(w, r, "list projects", err)
		return
	}
	if list == nil {
		list = []projects.Summary{}
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadProject(w, r)
	if !ok {
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := projectID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var content projects.Content
	if err := httpx.DecodeJSON(w, r, &content); err != nil {
		httpx.RespondError(w, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	p, err := h.service.Update(ctx, userID(r), id, content)
	if err != nil {
		h.respondError(w, r, "update project", err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := projectID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := h.service.Delete(ctx, userID(r), id); err != nil {
		h.respondError(w, r, "delete project", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.loadDocument(w, r, requestTimeout)
	if !ok {
		return
	}
	httpx.JSON(w, http.StatusOK, doc.Report)
}

func (h *Handler) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.loadDocument(w, r, requestTimeout)
	if !ok {
		return
	}
	buf := h.getBuffer()
	defer h.putBuffer(buf)

	kind := strings.TrimSpace(r.URL.Query().Get("kind"))
	var err error
	switch kind {
	case "", "statements":
		kind = "statements"
		err = export.WriteStatementCSV(buf, doc.Report)
	case "cashflow":
		err = export.WriteCashFlowCSV(buf, doc.Report)
	default:
		httpx.RespondError(w, fmt.Errorf("%w: unknown export kind %q", httpx.ErrValidation, kind))
		return
	}
	if err != nil {
		h.respondError(w, r, "write csv", err)
		return
	}
	h.attach(w, "text/csv; charset=utf-8", filename(doc, kind, "csv"), buf.Bytes())
}

func (h *Handler) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.loadDocument(w, r, requestTimeout)
	if !ok {
		return
	}
	buf := h.getBuffer()
	defer h.putBuffer(buf)

	if err := export.WriteWorkbook(buf, doc); err != nil {
		h.respondError(w, r, "write xlsx", err)
		return
	}
	h.attach(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", filename(doc, "plan", "xlsx"), buf.Bytes())
}

func (h *Handler) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	if h.pdf == nil {
		httpx.RespondError(w, fmt.Errorf("%w: pdf exporter not configured", httpx.ErrUnavailable))
		return
	}
	doc, ok := h.loadDocument(w, r, exportTimeout)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), exportTimeout)
	defer cancel()

	pdf, err := h.pdf.RenderBusinessPlan(ctx, doc)
	if err != nil {
		h.respondError(w, r, "render pdf", err)
		return
	}
	h.attach(w, "application/pdf", filename(doc, "plan", "pdf"), pdf)
}

func (h *Handler) loadProject(w http.ResponseWriter, r *http.Request) (projects.Project, bool) {
	id, err := projectID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return projects.Project{}, false
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	p, err := h.service.Get(ctx, userID(r), id)
	if err != nil {
		h.respondError(w, r, "get project", err)
		return projects.Project{}, false
	}
	return p, true
}

func (h *Handler) loadDocument(w http.ResponseWriter, r *http.Request, timeout time.Duration) (export.Document, bool) {
	p, ok := h.loadProject(w, r)
	if !ok {
		return export.Document{}, false
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	report, err := h.service.ReportFor(ctx, p)
	if err != nil {
		h.respondError(w, r, "build report", err)
		return export.Document{}, false
	}
	return export.NewDocument(p, report, h.now()), true
}

func (h *Handler) attach(w http.ResponseWriter, contentType, name string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", name))
	if _, err := w.Write(body); err != nil {
		h.logger.Warn("stream export", slog.String("file", name), slog.Any("error", err))
	}
}

func filename(doc export.Document, kind, ext string) string {
	return fmt.Sprintf("agriprojet-%s-%s.%s", doc.Report.ProjectID.String()[:8], kind, ext)
}
