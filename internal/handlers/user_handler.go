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

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ListMentors serves the mentor directory.
func (h *UserHandler) ListMentors(w http.ResponseWriter, r *http.Request) {
	h.listByRole(w, r, model.RoleMentor)
}

// ListMentees serves the mentee directory.
func (h *UserHandler) ListMentees(w http.ResponseWriter, r *http.Request) {
	h.listByRole(w, r, model.RoleMentee)
}

// ListAll serves the full directory, optionally narrowed by ?role=.
func (h *UserHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	if role := r.URL.Query().Get("role"); role != "" {
		h.listByRole(w, r, model.Role(role))
		return
	}

	var all []*model.UserResponse
	for _, role := range []model.Role{model.RoleMentor, model.RoleMentee, model.RoleAdmin} {
		users, err := h.userService.ListByRole(r.Context(), role)
		if err != nil {
			webutil.HandleError(w, logger, err)
			return
		}
		all = append(all, users...)
	}
	webutil.RespondWithJSON(w, http.StatusOK, all, logger)
}

// Get returns one account by id.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_ID", "Malformed user id.", "id", model.ErrInvalidInput))
		return
	}

	user, err := h.userService.Get(r.Context(), id)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, user, logger)
}

// Deactivate disables an account. Admin only.
func (h *UserHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_ID", "Malformed user id.", "id", model.ErrInvalidInput))
		return
	}

	if err := h.userService.Deactivate(r.Context(), id); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) listByRole(w http.ResponseWriter, r *http.Request, role model.Role) {
	logger := middleware.GetLogger(r.Context())

	users, err := h.userService.ListByRole(r.Context(), role)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, users, logger)
}
