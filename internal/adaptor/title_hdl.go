package adaptor

import (
	"encoding/json"
	"net/http"

	"github.com/khmelm/api-yamdb/internal/data/repository"
	"github.com/khmelm/api-yamdb/internal/dto/request"
	"github.com/khmelm/api-yamdb/internal/usecase"
	"github.com/khmelm/api-yamdb/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TitleHandler struct {
	service usecase.TitleService
	log     *zap.Logger
}

func NewTitleHandler(service usecase.TitleService, log *zap.Logger) *TitleHandler {
	return &TitleHandler{
		service: service,
		log:     log.With(zap.String("handler", "title")),
	}
}

// ListTitles handles GET /api/titles (public)
func (h *TitleHandler) ListTitles(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	filter := repository.TitleFilter{
		CategorySlug: query.Get("category"),
		GenreSlug:    query.Get("genre"),
		Name:         query.Get("name"),
		Year:         utils.ParseInt(query.Get("year"), 0),
	}

	titles, err := h.service.List(r.Context(), filter, page)
	if err != nil {
		handleServiceError(h.log, w, err, "list titles")
		return
	}

	utils.ResponseSuccess(w, "success", titles)
}

// CreateTitle handles POST /api/titles (admin)
func (h *TitleHandler) CreateTitle(w http.ResponseWriter, r *http.Request) {
	var req request.TitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	title, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create title")
		return
	}

	utils.ResponseCreated(w, "success", title)
}

// GetTitle handles GET /api/titles/{id} (public)
func (h *TitleHandler) GetTitle(w http.ResponseWriter, r *http.Request) {
	titleID := chi.URLParam(r, "id")

	title, err := h.service.Get(r.Context(), titleID)
	if err != nil {
		handleServiceError(h.log, w, err, "get title")
		return
	}

	utils.ResponseSuccess(w, "success", title)
}

// UpdateTitle handles PATCH /api/titles/{id} (admin)
func (h *TitleHandler) UpdateTitle(w http.ResponseWriter, r *http.Request) {
	titleID := chi.URLParam(r, "id")

	var req request.TitleUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	title, err := h.service.Update(r.Context(), titleID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update title")
		return
	}

	utils.ResponseSuccess(w, "success", title)
}

// DeleteTitle handles DELETE /api/titles/{id} (admin)
func (h *TitleHandler) DeleteTitle(w http.ResponseWriter, r *http.Request) {
	titleID := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), titleID); err != nil {
		handleServiceError(h.log, w, err, "delete title")
		return
	}

	utils.ResponseNoContent(w)
}
