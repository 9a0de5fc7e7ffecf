// internal/wire/wire.go
package wire

import (
	"net/http"

	"github.com/khmelm/api-yamdb/internal/adaptor"
	"github.com/khmelm/api-yamdb/internal/data/repository"
	"github.com/khmelm/api-yamdb/internal/usecase"
	"github.com/khmelm/api-yamdb/pkg/mailer"
	"github.com/khmelm/api-yamdb/pkg/middleware"
	"github.com/khmelm/api-yamdb/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App menyimpan semua dependencies
type App struct {
	Router *chi.Mux
}

// Wiring menginisialisasi semua dependencies
func Wiring(repo *repository.Repository, config *utils.Config, mail mailer.Mailer, logger *zap.Logger) *App {
	// Initialize services dan handlers
	service := usecase.NewService(repo, config, mail, logger)
	handler := adaptor.NewHandler(service, logger)

	// Setup router
	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
	}
}

// setupRouter konfigurasi Chi router
func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())
	// Auth opsional di semua route; route protected tinggal cek user di context
	r.Use(middleware.Authenticate(repo.User, config.JWT, logger))

	// Apply routes
	wireAuth(r, handler.Auth)
	wireUser(r, handler.User, logger)
	wireCategory(r, handler.Category, logger)
	wireGenre(r, handler.Genre, logger)
	wireTitle(r, handler.Title, logger)
	wireReview(r, handler.Review)
	wireComment(r, handler.Comment)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
