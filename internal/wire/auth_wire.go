package wire

import (
	"github.com/khmelm/api-yamdb/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/auth/signup - Request confirmation code (public)
	r.Post("/api/auth/signup", authHandler.Signup)

	// POST /api/auth/token - Exchange code for access token (public)
	r.Post("/api/auth/token", authHandler.Token)
}
