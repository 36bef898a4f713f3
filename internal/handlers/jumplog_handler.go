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

type JumpLogHandler struct {
	jumpLogService service.JumpLogService
}

func NewJumpLogHandler(jumpLogService service.JumpLogService) *JumpLogHandler {
	return &JumpLogHandler{jumpLogService: jumpLogService}
}

// Create logs a jump for the caller or, for mentors/admins, a named
// mentee.
func (h *JumpLogHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, role, err := callerFromContext(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.CreateJumpLogRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	log, err := h.jumpLogService.Create(r.Context(), userID, role, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusCreated, log, logger)
}

// List returns the caller's logbook, or ?mentee_id= for mentors/admins.
func (h *JumpLogHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, role, err := callerFromContext(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	menteeID := userID
	if target := r.URL.Query().Get("mentee_id"); target != "" {
		menteeID, err = uuid.Parse(target)
		if err != nil {
			webutil.HandleError(w, logger, model.NewAppError("INVALID_ID", "Malformed mentee id.", "mentee_id", model.ErrInvalidInput))
			return
		}
	}

	logs, err := h.jumpLogService.List(r.Context(), userID, role, menteeID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, logs, logger)
}

// Update edits one logbook entry.
func (h *JumpLogHandler) Update(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, role, err := callerFromContext(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_ID", "Malformed jump log id.", "id", model.ErrInvalidInput))
		return
	}

	var req model.UpdateJumpLogRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	log, err := h.jumpLogService.Update(r.Context(), userID, role, id, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, log, logger)
}

// Delete removes one logbook entry.
func (h *JumpLogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, role, err := callerFromContext(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_ID", "Malformed jump log id.", "id", model.ErrInvalidInput))
		return
	}

	if err := h.jumpLogService.Delete(r.Context(), userID, role, id); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
