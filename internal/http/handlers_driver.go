package httpx

import (
	"log/slog"
	"net/http"

	"github.com/irishmetals/skipdispatch/internal/domain/model"
	"github.com/irishmetals/skipdispatch/internal/service"
)

// DriverHandlers serve the magic-link pages. The token in the path is the
// only credential a driver has.
type DriverHandlers struct {
	Svc    *service.JobLifecycleService
	Logger *slog.Logger
}

// View handles GET /api/driver/jobs/{token}.
func (h *DriverHandlers) View(w http.ResponseWriter, r *http.Request) {
	view, err := h.Svc.GetDriverView(r.Context(), r.PathValue("token"))
	if err != nil {
		writeServiceError(w, r, h.Logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, view)
}

// Start handles POST /api/driver/jobs/{token}/start.
func (h *DriverHandlers) Start(w http.ResponseWriter, r *http.Request) {
	res, err := h.Svc.StartJobByToken(r.Context(), r.PathValue("token"))
	if err != nil {
		writeServiceError(w, r, h.Logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, res)
}

// Complete handles POST /api/driver/jobs/{token}/complete.
func (h *DriverHandlers) Complete(w http.ResponseWriter, r *http.Request) {
	var req model.CompleteJobRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	req.Token = r.PathValue("token")
	res, err := h.Svc.CompleteJob(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, h.Logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, res)
}
