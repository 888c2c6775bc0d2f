package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/tranyenminhbd/docuflow/internal/activity"
	"github.com/tranyenminhbd/docuflow/internal/auth"
	"github.com/tranyenminhbd/docuflow/internal/backup"
	"github.com/tranyenminhbd/docuflow/internal/category"
	"github.com/tranyenminhbd/docuflow/internal/dashboard"
	"github.com/tranyenminhbd/docuflow/internal/department"
	"github.com/tranyenminhbd/docuflow/internal/document"
	"github.com/tranyenminhbd/docuflow/internal/permission"
	"github.com/tranyenminhbd/docuflow/internal/role"
	"github.com/tranyenminhbd/docuflow/internal/settings"
	"github.com/tranyenminhbd/docuflow/internal/transport/middleware"
	"github.com/tranyenminhbd/docuflow/internal/transport/swagger"
	"github.com/tranyenminhbd/docuflow/internal/user"
	"github.com/tranyenminhbd/docuflow/internal/views"
)

// Handlers bundles every feature handler the router mounts.
type Handlers struct {
	Auth       *auth.Handler
	Views      *views.Handler
	Dashboard  *dashboard.Handler
	Document   *document.Handler
	User       *user.Handler
	Department *department.Handler
	Role       *role.Handler
	Category   *category.Handler
	Activity   *activity.Handler
	Settings   *settings.Handler
	Backup     *backup.Handler
}

// RegisterAllRoutes mounts the whole API. The public reader endpoints sit
// behind the optional auth middleware so a bearer token widens visibility;
// the console endpoints require a session and per-category permissions.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, logger *slog.Logger, corsOrigins []string, uploadDir string) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORSWithOrigins(corsOrigins))
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	// Uploaded logos
	router.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)

			sr.Group(func(ar chi.Router) {
				ar.Use(h.Auth.AuthMiddleware)
				ar.Post("/logout", h.Auth.Logout)
				ar.Get("/me", h.Auth.Me)
			})
		})

		// Public reader surface: anonymous works, a token widens visibility.
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.OptionalAuthMiddleware)

			pr.Get("/config", h.Settings.Get)
			pr.Get("/categories", h.Category.List)
			pr.Get("/departments", h.Department.List)
			pr.Get("/views/resolve", h.Views.Resolve)
			pr.Get("/documents", h.Document.List)
			pr.Get("/documents/{id}", h.Document.Get)
		})

		// Console surface: session required.
		r.Group(func(cr chi.Router) {
			cr.Use(h.Auth.AuthMiddleware)

			cr.Route("/documents", func(dr chi.Router) {
				// Ownership checks live in the service; only the base
				// permission is enforced here.
				dr.With(middleware.RequirePermission(permission.CategoryDocuments, permission.OpCreate)).
					Post("/", h.Document.Create)
				dr.With(middleware.RequirePermission(permission.CategoryDocuments, permission.OpUpdate)).
					Put("/{id}", h.Document.Update)
				dr.With(middleware.RequirePermission(permission.CategoryDocuments, permission.OpUpdate)).
					Patch("/{id}/status", h.Document.ToggleStatus)
				dr.With(middleware.RequirePermission(permission.CategoryDocuments, permission.OpDelete)).
					Delete("/{id}", h.Document.Delete)
			})

			cr.Route("/users", func(ur chi.Router) {
				ur.Put("/me/profile", h.User.UpdateProfile)
				ur.Put("/me/sidebar", h.User.SetSidebarPreference)

				ur.With(middleware.RequirePermission(permission.CategoryUsers, permission.OpRead)).
					Get("/", h.User.List)
				ur.With(middleware.RequirePermission(permission.CategoryUsers, permission.OpRead)).
					Get("/{id}", h.User.Get)
				ur.With(middleware.RequirePermission(permission.CategoryUsers, permission.OpCreate)).
					Post("/", h.User.Create)
				ur.With(middleware.RequirePermission(permission.CategoryUsers, permission.OpUpdate)).
					Put("/{id}", h.User.Update)
				ur.With(middleware.RequirePermission(permission.CategoryUsers, permission.OpUpdate)).
					Post("/{id}/reset-password", h.User.ResetPassword)
				ur.With(middleware.RequirePermission(permission.CategoryUsers, permission.OpUpdate)).
					Patch("/{id}/status", h.User.ToggleStatus)
				ur.With(middleware.RequirePermission(permission.CategoryUsers, permission.OpDelete)).
					Delete("/{id}", h.User.Delete)
			})

			cr.Route("/departments", func(dr chi.Router) {
				dr.With(middleware.RequirePermission(permission.CategoryDepartments, permission.OpCreate)).
					Post("/", h.Department.Create)
				dr.With(middleware.RequirePermission(permission.CategoryDepartments, permission.OpUpdate)).
					Put("/{id}", h.Department.Update)
				dr.With(middleware.RequirePermission(permission.CategoryDepartments, permission.OpDelete)).
					Delete("/{id}", h.Department.Delete)
			})

			cr.Route("/categories", func(catr chi.Router) {
				catr.With(middleware.RequirePermission(permission.CategoryCategories, permission.OpCreate)).
					Post("/", h.Category.Create)
				catr.With(middleware.RequirePermission(permission.CategoryCategories, permission.OpUpdate)).
					Put("/{id}", h.Category.Update)
				catr.With(middleware.RequirePermission(permission.CategoryCategories, permission.OpDelete)).
					Delete("/{id}", h.Category.Delete)
			})

			cr.Route("/roles", func(rr chi.Router) {
				rr.With(middleware.RequirePermission(permission.CategoryRoles, permission.OpRead)).
					Get("/", h.Role.List)
				rr.With(middleware.RequirePermission(permission.CategoryRoles, permission.OpRead)).
					Get("/{id}", h.Role.Get)
				rr.With(middleware.RequirePermission(permission.CategoryRoles, permission.OpCreate)).
					Post("/", h.Role.Create)
				rr.With(middleware.RequirePermission(permission.CategoryRoles, permission.OpUpdate)).
					Put("/{id}", h.Role.Update)
				rr.With(middleware.RequirePermission(permission.CategoryRoles, permission.OpDelete)).
					Delete("/{id}", h.Role.Delete)
			})

			cr.Get("/dashboard", h.Dashboard.Summary)
			cr.Get("/activity", h.Activity.Recent)

			// Super-admin-only surface.
			cr.Group(func(sr chi.Router) {
				sr.Use(middleware.RequireSuperAdmin())

				sr.Put("/config", h.Settings.Update)
				sr.Post("/config/logo", h.Settings.UploadLogo)
				sr.Get("/backup/export", h.Backup.Export)
				sr.Post("/backup/restore", h.Backup.Restore)
				sr.Post("/backup/reset", h.Backup.Reset)
			})
		})
	})
}
