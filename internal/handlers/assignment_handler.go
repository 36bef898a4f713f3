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

type AssignmentHandler struct {
	assignmentService service.AssignmentService
}

func NewAssignmentHandler(assignmentService service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

// List returns the caller's slice of the pairing ledger.
func (h *AssignmentHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, role, err := callerFromContext(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	views, err := h.assignmentService.ListForCaller(r.Context(), userID, role)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, views, logger)
}

// UpdateStatus moves an assignment to the requested status.
func (h *AssignmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.UpdateAssignmentStatusRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	h.transition(w, r, req.Status)
}

// Confirm is sugar for setting status=confirmed.
func (h *AssignmentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, model.StatusConfirmed)
}

// Decline is sugar for setting status=declined.
func (h *AssignmentHandler) Decline(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, model.StatusDeclined)
}

func (h *AssignmentHandler) transition(w http.ResponseWriter, r *http.Request, next model.Status) {
	logger := middleware.GetLogger(r.Context())

	userID, role, err := callerFromContext(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_ID", "Malformed assignment id.", "id", model.ErrInvalidInput))
		return
	}

	view, err := h.assignmentService.UpdateStatus(r.Context(), userID, role, id, next)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, view, logger)
}
