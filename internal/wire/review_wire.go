package wire

import (
	"github.com/khmelm/api-yamdb/internal/adaptor"
	"github.com/khmelm/api-yamdb/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireReview(r chi.Router, reviewHandler *adaptor.ReviewHandler) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/titles/{id}/reviews - List reviews for a title (public)
	r.Get("/api/titles/{id}/reviews", reviewHandler.ListReviews)

	// GET /api/titles/{id}/reviews/{reviewID} - Review details (public)
	r.Get("/api/titles/{id}/reviews/{reviewID}", reviewHandler.GetReview)

	// ==================== PROTECTED ROUTES ====================
	// Object-level checks (author/moderator/admin) dilakukan di service
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth())

		r.Post("/api/titles/{id}/reviews", reviewHandler.CreateReview)
		r.Patch("/api/titles/{id}/reviews/{reviewID}", reviewHandler.UpdateReview)
		r.Delete("/api/titles/{id}/reviews/{reviewID}", reviewHandler.DeleteReview)
	})
}
