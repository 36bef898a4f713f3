package handlers

import (
	"net/http"

	"skymentor/internal/middleware"
	"skymentor/internal/model"
	"skymentor/internal/service"
	"skymentor/internal/webutil"

	"github.com/google/uuid"
)

type PreferenceHandler struct {
	preferenceService service.PreferenceService
}

func NewPreferenceHandler(preferenceService service.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{preferenceService: preferenceService}
}

// Upsert replaces the caller's matching preferences.
func (h *PreferenceHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.UpsertPreferenceRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	preference, err := h.preferenceService.Upsert(r.Context(), userID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, preference, logger)
}

// Get returns the caller's preferences, or ?mentee_id= for mentors and
// admins.
func (h *PreferenceHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	preference, err := h.preferenceService.Get(r.Context(), userID, role, menteeID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, preference, logger)
}
