package handlers

import (
	"net/http"

	"skymentor/internal/middleware"
	"skymentor/internal/service"
	"skymentor/internal/webutil"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Mentor serves the mentor's summary view.
func (h *DashboardHandler) Mentor(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	dashboard, err := h.dashboardService.Mentor(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, dashboard, logger)
}

// Mentee serves the mentee's summary view.
func (h *DashboardHandler) Mentee(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	dashboard, err := h.dashboardService.Mentee(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, dashboard, logger)
}

// Admin serves the drop-zone-wide counts.
func (h *DashboardHandler) Admin(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	dashboard, err := h.dashboardService.Admin(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, dashboard, logger)
}
