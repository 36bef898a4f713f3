package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"skymentor/internal/config"
	"skymentor/internal/model"
	"skymentor/internal/webutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTAuthMiddleware resolves the caller from the session cookie or the
// Authorization header. The token carries the user id as subject and the
// role as a custom claim, so no user lookup happens per request.
func JWTAuthMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			tokenString := extractToken(r, cfg.JWT.CookieName)
			if tokenString == "" {
				logger.Warn("Auth failed: no credential presented")
				appErr := model.NewAppError("UNAUTHORIZED", "Authentication required.", "", model.ErrUnauthorized)
				webutil.HandleError(w, logger, appErr)
				return
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.New("unexpected signing method")
				}
				return []byte(cfg.JWT.SecretKey), nil
			})
			if err != nil || !token.Valid {
				logger.Warn("Auth failed: invalid token", "error", err)
				appErr := model.NewAppError("INVALID_TOKEN", "Session is invalid or expired.", "", model.ErrUnauthorized)
				webutil.HandleError(w, logger, appErr)
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				logger.Warn("Auth failed: unknown claims type")
				appErr := model.NewAppError("INVALID_TOKEN", "Session is invalid or expired.", "", model.ErrUnauthorized)
				webutil.HandleError(w, logger, appErr)
				return
			}

			subject, err := claims.GetSubject()
			if err != nil {
				logger.Warn("Auth failed: subject claim missing", "error", err)
				appErr := model.NewAppError("INVALID_TOKEN", "Session does not identify a user.", "", model.ErrUnauthorized)
				webutil.HandleError(w, logger, appErr)
				return
			}
			userID, err := uuid.Parse(subject)
			if err != nil {
				logger.Warn("Auth failed: malformed subject", "subject", subject)
				appErr := model.NewAppError("INVALID_TOKEN", "Session does not identify a user.", "", model.ErrUnauthorized)
				webutil.HandleError(w, logger, appErr)
				return
			}

			roleClaim, _ := claims["role"].(string)
			role := model.Role(roleClaim)
			if !role.Valid() {
				logger.Warn("Auth failed: missing or unknown role claim", "role", roleClaim)
				appErr := model.NewAppError("INVALID_TOKEN", "Session does not carry a valid role.", "", model.ErrUnauthorized)
				webutil.HandleError(w, logger, appErr)
				return
			}

			ctx := context.WithValue(r.Context(), model.UserIDKey, userID)
			ctx = context.WithValue(ctx, model.RoleKey, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a route group to a static allow-list of roles.
func RequireRole(roles ...model.Role) func(http.Handler) http.Handler {
	allowed := make(map[model.Role]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			role, err := GetRoleFromContext(r.Context())
			if err != nil {
				webutil.HandleError(w, logger, err)
				return
			}
			if !allowed[role] {
				logger.Warn("Role not permitted for route", "role", role, "path", r.URL.Path)
				appErr := model.NewAppError("FORBIDDEN", "Your role does not permit this operation.", "", model.ErrForbidden)
				webutil.HandleError(w, logger, appErr)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractToken prefers the session cookie, falling back to a bearer
// header for non-browser clients.
func extractToken(r *http.Request, cookieName string) string {
	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	authHeader := r.Header.Get("Authorization")
	headerParts := strings.Split(authHeader, " ")
	if len(headerParts) == 2 && strings.EqualFold(headerParts[0], "bearer") {
		return headerParts[1]
	}
	return ""
}

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, error) {
	value, ok := ctx.Value(model.UserIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, model.NewAppError("UNAUTHORIZED", "Caller identity not found.", "", model.ErrUnauthorized)
	}
	return value, nil
}

func GetRoleFromContext(ctx context.Context) (model.Role, error) {
	value, ok := ctx.Value(model.RoleKey).(model.Role)
	if !ok {
		return "", model.NewAppError("UNAUTHORIZED", "Caller role not found.", "", model.ErrUnauthorized)
	}
	return value, nil
}
