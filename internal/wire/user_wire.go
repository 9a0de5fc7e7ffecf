package wire

import (
	"github.com/khmelm/api-yamdb/internal/adaptor"
	"github.com/khmelm/api-yamdb/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler, log *zap.Logger) {
	// ==================== SELF-SERVICE ROUTES ====================
	// /me didaftarkan sebelum /{username} biar tidak ketangkap sebagai username
	r.Route("/api/users/me", func(r chi.Router) {
		r.Use(middleware.RequireAuth())

		r.Get("/", userHandler.GetMe)     // GET /api/users/me
		r.Patch("/", userHandler.UpdateMe) // PATCH /api/users/me
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/users", func(r chi.Router) {
		r.Use(middleware.RequireAdmin(log))

		r.Get("/", userHandler.ListUsers)                  // GET /api/users
		r.Post("/", userHandler.CreateUser)                // POST /api/users
		r.Get("/{username}", userHandler.GetUser)          // GET /api/users/{username}
		r.Patch("/{username}", userHandler.UpdateUser)     // PATCH /api/users/{username}
		r.Delete("/{username}", userHandler.DeleteUser)    // DELETE /api/users/{username}
	})
}
