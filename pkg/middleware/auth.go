package middleware

import (
	"net/http"
	"strings"

	"github.com/khmelm/api-yamdb/internal/access"
	"github.com/khmelm/api-yamdb/internal/data/repository"
	"github.com/khmelm/api-yamdb/pkg/utils"

	"go.uber.org/zap"
)

// Authenticate middleware resolves an optional bearer JWT into the request
// context. Tanpa header Authorization request jalan terus sebagai anonymous;
// token rusak/expired ditolak 401.
func Authenticate(userRepo repository.UserRepository, jwtConfig utils.JWTConfig, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				// Anonymous: policy per-route yang memutuskan
				next.ServeHTTP(w, r)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			claims, err := utils.ParseAccessToken(jwtConfig, parts[1])
			if err != nil {
				logger.Warn("Invalid access token", zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			userID, err := utils.ParseUUID(claims.UserID)
			if err != nil {
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			// Load fresh biar perubahan role langsung kepakai
			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				logger.Error("Failed to load token user",
					zap.Error(err),
					zap.String("user_id", claims.UserID))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}
			if user == nil {
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx := utils.SetUserContext(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth menolak request anonymous dengan 401
func RequireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if utils.GetUserFromContext(r.Context()) == nil {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin gate untuk resource admin-only (user management) dan
// method tulis pada resource admin-or-read-only (catalog)
func RequireAdmin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := utils.GetUserFromContext(r.Context())

			switch access.Evaluate(access.AdminOnly, actor, r.Method, nil) {
			case access.Allow:
				next.ServeHTTP(w, r)
			case access.DenyUnauthenticated:
				utils.ResponseUnauthorized(w, "Authentication required")
			default:
				logger.Warn("Admin check: non-admin access attempt",
					zap.String("user_id", actor.ID.String()),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access required")
			}
		})
	}
}
