package handlers

import (
	"net/http"

	"skymentor/internal/middleware"
	"skymentor/internal/model"
	"skymentor/internal/service"
	"skymentor/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	availabilityService service.AvailabilityService
}

func NewAvailabilityHandler(availabilityService service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availabilityService: availabilityService}
}

// Create adds an availability window for the caller.
func (h *AvailabilityHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	role, err := middleware.GetRoleFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.CreateAvailabilityRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	window, err := h.availabilityService.Create(r.Context(), userID, role, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusCreated, window, logger)
}

// List returns the caller's windows. Admins may read any user's via
// ?user_id=.
func (h *AvailabilityHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	role, err := middleware.GetRoleFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if target := r.URL.Query().Get("user_id"); target != "" && role == model.RoleAdmin {
		targetID, err := uuid.Parse(target)
		if err != nil {
			webutil.HandleError(w, logger, model.NewAppError("INVALID_ID", "Malformed user id.", "user_id", model.ErrInvalidInput))
			return
		}
		windows, err := h.availabilityService.ListForUser(r.Context(), targetID)
		if err != nil {
			webutil.HandleError(w, logger, err)
			return
		}
		webutil.RespondWithJSON(w, http.StatusOK, windows, logger)
		return
	}

	windows, err := h.availabilityService.ListOwn(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, windows, logger)
}

// Delete removes one of the caller's own windows.
func (h *AvailabilityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_ID", "Malformed availability id.", "id", model.ErrInvalidInput))
		return
	}

	if err := h.availabilityService.Delete(r.Context(), userID, id); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
