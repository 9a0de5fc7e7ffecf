package wire

import (
	"github.com/khmelm/api-yamdb/internal/adaptor"
	"github.com/khmelm/api-yamdb/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireGenre(r chi.Router, genreHandler *adaptor.GenreHandler, log *zap.Logger) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/genres - List genres (public)
	r.Get("/api/genres", genreHandler.ListGenres)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(log))

		r.Post("/api/genres", genreHandler.CreateGenre)          // POST /api/genres
		r.Delete("/api/genres/{slug}", genreHandler.DeleteGenre) // DELETE /api/genres/{slug}
	})
}
