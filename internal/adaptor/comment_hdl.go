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

type CommentHandler struct {
	service usecase.CommentService
	log     *zap.Logger
}

func NewCommentHandler(service usecase.CommentService, log *zap.Logger) *CommentHandler {
	return &CommentHandler{
		service: service,
		log:     log.With(zap.String("handler", "comment")),
	}
}

// ListComments handles GET /api/titles/{id}/reviews/{reviewID}/comments (public)
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	titleID := chi.URLParam(r, "id")
	reviewID := chi.URLParam(r, "reviewID")

	query := r.URL.Query()
	page := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	comments, err := h.service.ListByReview(r.Context(), titleID, reviewID, page)
	if err != nil {
		handleServiceError(h.log, w, err, "list comments")
		return
	}

	utils.ResponseSuccess(w, "success", comments)
}

// CreateComment handles POST /api/titles/{id}/reviews/{reviewID}/comments (authenticated)
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	actor := utils.GetUserFromContext(r.Context())
	if actor == nil {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	titleID := chi.URLParam(r, "id")
	reviewID := chi.URLParam(r, "reviewID")

	var req request.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	comment, err := h.service.Create(r.Context(), actor, titleID, reviewID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create comment")
		return
	}

	utils.ResponseCreated(w, "success", comment)
}

// GetComment handles GET /api/titles/{id}/reviews/{reviewID}/comments/{commentID} (public)
func (h *CommentHandler) GetComment(w http.ResponseWriter, r *http.Request) {
	titleID := chi.URLParam(r, "id")
	reviewID := chi.URLParam(r, "reviewID")
	commentID := chi.URLParam(r, "commentID")

	comment, err := h.service.Get(r.Context(), titleID, reviewID, commentID)
	if err != nil {
		handleServiceError(h.log, w, err, "get comment")
		return
	}

	utils.ResponseSuccess(w, "success", comment)
}

// UpdateComment handles PATCH .../comments/{commentID} (author/moderator/admin)
func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	actor := utils.GetUserFromContext(r.Context())
	if actor == nil {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	titleID := chi.URLParam(r, "id")
	reviewID := chi.URLParam(r, "reviewID")
	commentID := chi.URLParam(r, "commentID")

	var req request.UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	comment, err := h.service.Update(r.Context(), actor, titleID, reviewID, commentID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update comment")
		return
	}

	utils.ResponseSuccess(w, "success", comment)
}

// DeleteComment handles DELETE .../comments/{commentID} (author/moderator/admin)
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	actor := utils.GetUserFromContext(r.Context())
	if actor == nil {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	titleID := chi.URLParam(r, "id")
	reviewID := chi.URLParam(r, "reviewID")
	commentID := chi.URLParam(r, "commentID")

	if err := h.service.Delete(r.Context(), actor, titleID, reviewID, commentID); err != nil {
		handleServiceError(h.log, w, err, "delete comment")
		return
	}

	utils.ResponseNoContent(w)
}
