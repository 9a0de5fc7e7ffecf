package adaptor

import (
	"encoding/json"
	"net/http"

	"github.com/khmelm/api-yamdb/internal/dto/request"
	"github.com/khmelm/api-yamdb/internal/usecase"
	"github.com/khmelm/api-yamdb/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// ListReviews handles GET /api/titles/{id}/reviews (public)
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	titleID := chi.URLParam(r, "id")

	query := r.URL.Query()
	page := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	reviews, err := h.service.ListByTitle(r.Context(), titleID, page)
	if err != nil {
		handleServiceError(h.log, w, err, "list reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// CreateReview handles POST /api/titles/{id}/reviews (authenticated)
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	actor := utils.GetUserFromContext(r.Context())
	if actor == nil {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	titleID := chi.URLParam(r, "id")

	var req request.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	review, err := h.service.Create(r.Context(), actor, titleID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create review")
		return
	}

	utils.ResponseCreated(w, "success", review)
}

// GetReview handles GET /api/titles/{id}/reviews/{reviewID} (public)
func (h *ReviewHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	titleID := chi.URLParam(r, "id")
	reviewID := chi.URLParam(r, "reviewID")

	review, err := h.service.Get(r.Context(), titleID, reviewID)
	if err != nil {
		handleServiceError(h.log, w, err, "get review")
		return
	}

	utils.ResponseSuccess(w, "success", review)
}

// UpdateReview handles PATCH /api/titles/{id}/reviews/{reviewID} (author/moderator/admin)
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	actor := utils.GetUserFromContext(r.Context())
	if actor == nil {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	titleID := chi.URLParam(r, "id")
	reviewID := chi.URLParam(r, "reviewID")

	var req request.UpdateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	review, err := h.service.Update(r.Context(), actor, titleID, reviewID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update review")
		return
	}

	utils.ResponseSuccess(w, "success", review)
}

// DeleteReview handles DELETE /api/titles/{id}/reviews/{reviewID} (author/moderator/admin)
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	actor := utils.GetUserFromContext(r.Context())
	if actor == nil {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	titleID := chi.URLParam(r, "id")
	reviewID := chi.URLParam(r, "reviewID")

	if err := h.service.Delete(r.Context(), actor, titleID, reviewID); err != nil {
		handleServiceError(h.log, w, err, "delete review")
		return
	}

	utils.ResponseNoContent(w)
}
