package wire

import (
	"github.com/khmelm/api-yamdb/internal/adaptor"
	"github.com/khmelm/api-yamdb/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireComment(r chi.Router, commentHandler *adaptor.CommentHandler) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/titles/{id}/reviews/{reviewID}/comments - List comments (public)
	r.Get("/api/titles/{id}/reviews/{reviewID}/comments", commentHandler.ListComments)

	// GET .../comments/{commentID} - Comment details (public)
	r.Get("/api/titles/{id}/reviews/{reviewID}/comments/{commentID}", commentHandler.GetComment)

	// ==================== PROTECTED ROUTES ====================
	// Object-level checks (author/moderator/admin) dilakukan di service
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth())

		r.Post("/api/titles/{id}/reviews/{reviewID}/comments", commentHandler.CreateComment)
		r.Patch("/api/titles/{id}/reviews/{reviewID}/comments/{commentID}", commentHandler.UpdateComment)
		r.Delete("/api/titles/{id}/reviews/{reviewID}/comments/{commentID}", commentHandler.DeleteComment)
	})
}
