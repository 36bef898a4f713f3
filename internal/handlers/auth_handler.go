package handlers

import (
	"net/http"
	"time"

	"skymentor/internal/config"
	"skymentor/internal/middleware"
	"skymentor/internal/model"
	"skymentor/internal/service"
	"skymentor/internal/webutil"
)

type AuthHandler struct {
	authService service.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

// Signup creates the account, starts a session and sets the cookie.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.SignupRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	resp, err := h.authService.Signup(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	h.setSessionCookie(w, resp.AccessToken)
	webutil.RespondWithJSON(w, http.StatusCreated, resp, logger)
}

// Login verifies the credential and sets the session cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.LoginRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	resp, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	h.setSessionCookie(w, resp.AccessToken)
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// Logout clears the session cookie. Stateless tokens cannot be revoked,
// so this only drops the browser credential.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.JWT.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Logged out."}, logger)
}

// Me returns the caller's own profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	user, err := h.authService.GetMe(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, user, logger)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.JWT.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.cfg.JWT.AccessTokenTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
