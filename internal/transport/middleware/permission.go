package middleware

import (
	"log/slog"
	"net/http"

	"github.com/tranyenminhbd/docuflow/internal/auth"
	"github.com/tranyenminhbd/docuflow/internal/permission"
)

// RequirePermission gates a route on one cell of the caller's permission
// matrix. The session must already be attached by the auth middleware.
func RequirePermission(category permission.ResourceCategory, op permission.Operation) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := auth.SessionFromContext(r.Context())
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !permission.CanPerform(session.RoleOrNil(), category, op) {
				slog.Warn("access denied: missing permission",
					"user_id", session.User.ID,
					"category", category,
					"operation", op)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireSuperAdmin gates a route on the super admin identity. Permission
// flags do not matter here; only the sentinel role id passes.
func RequireSuperAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := auth.SessionFromContext(r.Context())
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !permission.IsSuperAdmin(session.RoleOrNil()) {
				slog.Warn("access denied: super admin only",
					"user_id", session.User.ID)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
