package handlers

import (
	"net/http"
	"time"

	"skymentor/internal/middleware"
	"skymentor/internal/model"
	"skymentor/internal/service"
	"skymentor/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type SessionHandler struct {
	sessionService service.SessionService
}

func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// Create publishes a session block.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, role, err := callerFromContext(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.CreateSessionBlockRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	block, err := h.sessionService.Create(r.Context(), userID, role, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusCreated, block, logger)
}

// List branches by role: mentors see their own blocks with nested
// assignments, mentees and admins see all blocks annotated with the
// mentor identity. ?from= and ?to= (YYYY-MM-DD) narrow the range.
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, role, err := callerFromContext(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	query, err := blockQueryFromURL(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if role == model.RoleMentor {
		views, err := h.sessionService.ListForMentor(r.Context(), userID, query)
		if err != nil {
			webutil.HandleError(w, logger, err)
			return
		}
		webutil.RespondWithJSON(w, http.StatusOK, views, logger)
		return
	}

	views, err := h.sessionService.ListAnnotated(r.Context(), query)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, views, logger)
}

// Update edits a block.
func (h *SessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, role, err := callerFromContext(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_ID", "Malformed session block id.", "id", model.ErrInvalidInput))
		return
	}

	var req model.UpdateSessionBlockRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	block, err := h.sessionService.Update(r.Context(), userID, role, id, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, block, logger)
}

// Delete removes a block and everything hanging off it.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, role, err := callerFromContext(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_ID", "Malformed session block id.", "id", model.ErrInvalidInput))
		return
	}

	if err := h.sessionService.Delete(r.Context(), userID, role, id); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func callerFromContext(r *http.Request) (uuid.UUID, model.Role, error) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		return uuid.Nil, "", err
	}
	role, err := middleware.GetRoleFromContext(r.Context())
	if err != nil {
		return uuid.Nil, "", err
	}
	return userID, role, nil
}

func blockQueryFromURL(r *http.Request) (model.SessionBlockQuery, error) {
	var query model.SessionBlockQuery
	if from := r.URL.Query().Get("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return query, model.NewAppError("INVALID_DATE", "Dates must be YYYY-MM-DD.", "from", model.ErrInvalidInput)
		}
		query.From = t
	}
	if to := r.URL.Query().Get("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return query, model.NewAppError("INVALID_DATE", "Dates must be YYYY-MM-DD.", "to", model.ErrInvalidInput)
		}
		query.To = t
	}
	if mentor := r.URL.Query().Get("mentor_id"); mentor != "" {
		id, err := uuid.Parse(mentor)
		if err != nil {
			return query, model.NewAppError("INVALID_ID", "Malformed mentor id.", "mentor_id", model.ErrInvalidInput)
		}
		query.MentorID = id
	}
	return query, nil
}
