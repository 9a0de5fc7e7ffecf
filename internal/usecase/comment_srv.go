package usecase

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/khmelm/api-yamdb/internal/access"
	"github.com/khmelm/api-yamdb/internal/data/entity"
	"github.com/khmelm/api-yamdb/internal/data/repository"
	"github.com/khmelm/api-yamdb/internal/dto/request"
	"github.com/khmelm/api-yamdb/internal/dto/response"
	"github.com/khmelm/api-yamdb/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CommentService interface {
	ListByReview(ctx context.Context, titleID, reviewID string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error)
	Create(ctx context.Context, actor *entity.User, titleID, reviewID string, req *request.CreateCommentRequest) (*response.CommentResponse, error)
	Get(ctx context.Context, titleID, reviewID, commentID string) (*response.CommentResponse, error)
	Update(ctx context.Context, actor *entity.User, titleID, reviewID, commentID string, req *request.UpdateCommentRequest) (*response.CommentResponse, error)
	Delete(ctx context.Context, actor *entity.User, titleID, reviewID, commentID string) error
}

type commentService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCommentService(repo *repository.Repository, log *zap.Logger) CommentService {
	return &commentService{
		repo: repo,
		log:  log.With(zap.String("service", "comment")),
	}
}

func (s *commentService) ListByReview(ctx context.Context, titleID, reviewID string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error) {
	review, err := s.findReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	comments, err := s.repo.Comment.FindByReviewID(ctx, review.ID, page.Limit(), page.Offset())
	if err != nil {
		s.log.Error("Failed to list comments", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("list comments: %w", err)
	}

	total, err := s.repo.Comment.CountByReviewID(ctx, review.ID)
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}

	commentResponses := make([]response.CommentResponse, len(comments))
	for i, comment := range comments {
		commentResponses[i] = response.CommentToResponse(comment, s.authorUsername(ctx, comment.AuthorID))
	}

	return response.NewPaginatedResponse(commentResponses, page.Page, page.Limit(), total), nil
}

func (s *commentService) Create(ctx context.Context, actor *entity.User, titleID, reviewID string, req *request.CreateCommentRequest) (*response.CommentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create comment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	review, err := s.findReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	comment := &entity.Comment{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ReviewID: review.ID,
		AuthorID: actor.ID,
		Text:     req.Text,
	}

	if err := s.repo.Comment.Create(ctx, comment); err != nil {
		s.log.Error("Failed to create comment", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.log.Info("Comment created",
		zap.String("comment_id", comment.ID.String()),
		zap.String("review_id", reviewID),
		zap.String("author", actor.Username))

	resp := response.CommentToResponse(comment, actor.Username)
	return &resp, nil
}

func (s *commentService) Get(ctx context.Context, titleID, reviewID, commentID string) (*response.CommentResponse, error) {
	comment, err := s.findComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	resp := response.CommentToResponse(comment, s.authorUsername(ctx, comment.AuthorID))
	return &resp, nil
}

func (s *commentService) Update(ctx context.Context, actor *entity.User, titleID, reviewID, commentID string, req *request.UpdateCommentRequest) (*response.CommentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update comment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	comment, err := s.findComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(actor, http.MethodPatch, comment.AuthorID); err != nil {
		return nil, err
	}

	if req.Text != nil {
		comment.Text = *req.Text
	}
	comment.UpdatedAt = time.Now()

	if err := s.repo.Comment.Update(ctx, comment); err != nil {
		s.log.Error("Failed to update comment", zap.Error(err), zap.String("comment_id", commentID))
		return nil, fmt.Errorf("update comment: %w", err)
	}

	resp := response.CommentToResponse(comment, s.authorUsername(ctx, comment.AuthorID))
	return &resp, nil
}

func (s *commentService) Delete(ctx context.Context, actor *entity.User, titleID, reviewID, commentID string) error {
	comment, err := s.findComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if err := s.authorize(actor, http.MethodDelete, comment.AuthorID); err != nil {
		return err
	}

	if err := s.repo.Comment.Delete(ctx, comment.ID); err != nil {
		s.log.Error("Failed to delete comment", zap.Error(err), zap.String("comment_id", commentID))
		return fmt.Errorf("delete comment: %w", err)
	}

	s.log.Info("Comment deleted",
		zap.String("comment_id", commentID),
		zap.String("actor", actor.Username))

	return nil
}

// ==================== HELPER METHODS ====================

// findReview memverifikasi review-nya memang milik title yang di-route.
// Review yang ada tapi nyasar ke title lain bukan not-found biasa.
func (s *commentService) findReview(ctx context.Context, titleID, reviewID string) (*entity.Review, error) {
	tid, err := uuid.Parse(titleID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid title ID %s", ErrValidation, titleID)
	}

	title, err := s.repo.Title.FindByID(ctx, tid)
	if err != nil {
		return nil, fmt.Errorf("find title: %w", err)
	}
	if title == nil {
		return nil, fmt.Errorf("%w: title %s", ErrNotFound, titleID)
	}

	rid, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid review ID %s", ErrValidation, reviewID)
	}

	review, err := s.repo.Review.FindByID(ctx, rid)
	if err != nil {
		return nil, fmt.Errorf("find review: %w", err)
	}
	if review == nil {
		return nil, fmt.Errorf("%w: review %s", ErrNotFound, reviewID)
	}
	if review.TitleID != tid {
		return nil, fmt.Errorf("%w: review %s does not belong to title %s", ErrReviewTitleMismatch, reviewID, titleID)
	}

	return review, nil
}

func (s *commentService) findComment(ctx context.Context, titleID, reviewID, commentID string) (*entity.Comment, error) {
	review, err := s.findReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	cid, err := uuid.Parse(commentID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid comment ID %s", ErrValidation, commentID)
	}

	comment, err := s.repo.Comment.FindByID(ctx, cid)
	if err != nil {
		return nil, fmt.Errorf("find comment: %w", err)
	}
	if comment == nil || comment.ReviewID != review.ID {
		return nil, fmt.Errorf("%w: comment %s", ErrNotFound, commentID)
	}

	return comment, nil
}

func (s *commentService) authorize(actor *entity.User, method string, authorID uuid.UUID) error {
	switch access.Evaluate(access.AuthorAdminModerator, actor, method, &authorID) {
	case access.Allow:
		return nil
	case access.DenyUnauthenticated:
		return fmt.Errorf("%w: authentication required", ErrForbidden)
	default:
		return fmt.Errorf("%w: not the author, moderator, or admin", ErrForbidden)
	}
}

func (s *commentService) authorUsername(ctx context.Context, authorID uuid.UUID) string {
	author, err := s.repo.User.FindByID(ctx, authorID)
	if err != nil || author == nil {
		return ""
	}
	return author.Username
}
