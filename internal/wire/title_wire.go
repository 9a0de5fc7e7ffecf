package wire

import (
	"github.com/khmelm/api-yamdb/internal/adaptor"
	"github.com/khmelm/api-yamdb/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireTitle(r chi.Router, titleHandler *adaptor.TitleHandler, log *zap.Logger) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/titles - List titles with filters (public)
	r.Get("/api/titles", titleHandler.ListTitles)

	// GET /api/titles/{id} - Title details with rating (public)
	r.Get("/api/titles/{id}", titleHandler.GetTitle)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(log))

		r.Post("/api/titles", titleHandler.CreateTitle)        // POST /api/titles
		r.Patch("/api/titles/{id}", titleHandler.UpdateTitle)  // PATCH /api/titles/{id}
		r.Delete("/api/titles/{id}", titleHandler.DeleteTitle) // DELETE /api/titles/{id}
	})
}
