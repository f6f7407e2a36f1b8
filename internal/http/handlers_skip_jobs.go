package httpx

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/irishmetals/skipdispatch/internal/docket"
	"github.com/irishmetals/skipdispatch/internal/domain/model"
	"github.com/irishmetals/skipdispatch/internal/service"
)

// SkipJobHandlers serves the office side of the job lifecycle.
type SkipJobHandlers struct {
	Svc    *service.JobLifecycleService
	Logger *slog.Logger
}

// Create handles POST /api/skip-jobs.
func (h *SkipJobHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateJobRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	res, err := h.Svc.CreateJob(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, h.Logger, err)
		return
	}
	WriteJSON(w, http.StatusCreated, res)
}

// List handles GET /api/skip-jobs.
func (h *SkipJobHandlers) List(w http.ResponseWriter, r *http.Request) {
	opts, err := parseJobListOptions(r)
	if err != nil {
		writeServiceError(w, r, h.Logger, err)
		return
	}
	items, err := h.Svc.ListJobs(r.Context(), opts)
	if err != nil {
		writeServiceError(w, r, h.Logger, err)
		return
	}
	if items == nil {
		items = []*model.SkipJobListItem{}
	}
	WriteJSON(w, http.StatusOK, items)
}

// Get handles GET /api/skip-jobs/{id}.
func (h *SkipJobHandlers) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := h.Svc.GetJobDetail(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, h.Logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, detail)
}

// History handles GET /api/skip-jobs/{id}/history.
func (h *SkipJobHandlers) History(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Svc.ListHistory(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, h.Logger, err)
		return
	}
	if entries == nil {
		entries = []*model.StatusHistoryEntry{}
	}
	WriteJSON(w, http.StatusOK, entries)
}

// Send handles POST /api/skip-jobs/{id}/send.
func (h *SkipJobHandlers) Send(w http.ResponseWriter, r *http.Request) {
	res, err := h.Svc.SendJob(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, h.Logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, res)
}

// Start handles POST /api/skip-jobs/{id}/start.
func (h *SkipJobHandlers) Start(w http.ResponseWriter, r *http.Request) {
	res, err := h.Svc.StartJob(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, h.Logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, res)
}

// Update handles PATCH /api/skip-jobs/{id}.
func (h *SkipJobHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateJobRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	res, err := h.Svc.UpdateJob(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		writeServiceError(w, r, h.Logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, res)
}

// Delete handles DELETE /api/skip-jobs/{id}.
func (h *SkipJobHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	res, err := h.Svc.DeleteJob(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, h.Logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, res)
}

// Docket handles GET /api/skip-jobs/{id}/docket and streams the PDF.
func (h *SkipJobHandlers) Docket(w http.ResponseWriter, r *http.Request) {
	pdf, docketNo, err := h.Svc.RenderDocket(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, h.Logger, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+docket.AttachmentName(docketNo)+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		return
	}
}

// UpdateWeight handles PATCH /api/completions/{id}/weight.
func (h *SkipJobHandlers) UpdateWeight(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateCompletionWeightRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	res, err := h.Svc.UpdateCompletionWeight(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		writeServiceError(w, r, h.Logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, res)
}
