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

type ProgressionHandler struct {
	progressionService service.ProgressionService
}

func NewProgressionHandler(progressionService service.ProgressionService) *ProgressionHandler {
	return &ProgressionHandler{progressionService: progressionService}
}

// ListSteps returns the curriculum, narrowed by ?category= if present.
func (h *ProgressionHandler) ListSteps(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	category := model.Category(r.URL.Query().Get("category"))
	steps, err := h.progressionService.ListSteps(r.Context(), category)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, steps, logger)
}

// CreateCompletion records an attested step completion.
func (h *ProgressionHandler) CreateCompletion(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.CreateStepCompletionRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	view, err := h.progressionService.RecordCompletion(r.Context(), userID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusCreated, view, logger)
}

// ListCompletions returns a mentee's completions. Mentees read their
// own; mentors and admins read anyone's.
func (h *ProgressionHandler) ListCompletions(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, role, err := callerFromContext(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	menteeID := userID
	if param := chi.URLParam(r, "userId"); param != "" {
		menteeID, err = uuid.Parse(param)
		if err != nil {
			webutil.HandleError(w, logger, model.NewAppError("INVALID_ID", "Malformed user id.", "userId", model.ErrInvalidInput))
			return
		}
	}
	if role == model.RoleMentee && menteeID != userID {
		webutil.HandleError(w, logger, model.NewAppError("FORBIDDEN", "Mentees can only read their own completions.", "", model.ErrForbidden))
		return
	}

	views, err := h.progressionService.ListCompletions(r.Context(), menteeID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, views, logger)
}

// ListBadges returns the badge catalog.
func (h *ProgressionHandler) ListBadges(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	badges, err := h.progressionService.ListBadges(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, badges, logger)
}

// ListAwards returns the badges granted to one mentee.
func (h *ProgressionHandler) ListAwards(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	menteeID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_ID", "Malformed user id.", "userId", model.ErrInvalidInput))
		return
	}

	views, err := h.progressionService.ListAwards(r.Context(), menteeID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, views, logger)
}

// SuggestExercises picks a skill area for a group of mentees.
func (h *ProgressionHandler) SuggestExercises(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.SuggestExercisesRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	resp, err := h.progressionService.SuggestExercises(r.Context(), req.MenteeIDs)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}
