package httpx

import (
	"log/slog"
	"net/http"

	"github.com/irishmetals/skipdispatch/internal/domain/model"
	"github.com/irishmetals/skipdispatch/internal/service"
)

const (
	defaultTrackerLimit = 1000
	maxTrackerLimit     = 5000
)

// ReferenceHandlers serve lookups used to fill the office forms, and the
// skip tracker.
type ReferenceHandlers struct {
	Svc    *service.JobLifecycleService
	Logger *slog.Logger
}

// Customers handles GET /api/customers.
func (h *ReferenceHandlers) Customers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.Svc.ListCustomers(r.Context())
	if err != nil {
		writeServiceError(w, r, h.Logger, err)
		return
	}
	if customers == nil {
		customers = []*model.Customer{}
	}
	WriteJSON(w, http.StatusOK, customers)
}

// Drivers handles GET /api/drivers. Only active drivers are listed.
func (h *ReferenceHandlers) Drivers(w http.ResponseWriter, r *http.Request) {
	drivers, err := h.Svc.ListActiveDrivers(r.Context())
	if err != nil {
		writeServiceError(w, r, h.Logger, err)
		return
	}
	if drivers == nil {
		drivers = []*model.Driver{}
	}
	WriteJSON(w, http.StatusOK, drivers)
}

// Tracker handles GET /api/tracker.
func (h *ReferenceHandlers) Tracker(w http.ResponseWriter, r *http.Request) {
	limit, _ := ParseLimitOffset(r, defaultTrackerLimit, maxTrackerLimit)
	summary, err := h.Svc.Tracker(r.Context(), limit)
	if err != nil {
		writeServiceError(w, r, h.Logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, summary)
}
