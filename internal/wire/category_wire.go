package wire

import (
	"github.com/khmelm/api-yamdb/internal/adaptor"
	"github.com/khmelm/api-yamdb/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCategory(r chi.Router, categoryHandler *adaptor.CategoryHandler, log *zap.Logger) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/categories - List categories (public)
	r.Get("/api/categories", categoryHandler.ListCategories)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(log))

		r.Post("/api/categories", categoryHandler.CreateCategory)          // POST /api/categories
		r.Delete("/api/categories/{slug}", categoryHandler.DeleteCategory) // DELETE /api/categories/{slug}
	})
}
