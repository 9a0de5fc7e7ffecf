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

type ReviewService interface {
	ListByTitle(ctx context.Context, titleID string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	Create(ctx context.Context, actor *entity.User, titleID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	Get(ctx context.Context, titleID, reviewID string) (*response.ReviewResponse, error)
	Update(ctx context.Context, actor *entity.User, titleID, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	Delete(ctx context.Context, actor *entity.User, titleID, reviewID string) error
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) ListByTitle(ctx context.Context, titleID string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	tid, err := s.titleID(ctx, titleID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.repo.Review.FindByTitleID(ctx, tid, page.Limit(), page.Offset())
	if err != nil {
		s.log.Error("Failed to list reviews", zap.Error(err), zap.String("title_id", titleID))
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	total, err := s.repo.Review.CountByTitleID(ctx, tid)
	if err != nil {
		return nil, fmt.Errorf("count reviews: %w", err)
	}

	reviewResponses := make([]response.ReviewResponse, len(reviews))
	for i, review := range reviews {
		reviewResponses[i] = response.ReviewToResponse(review, s.authorUsername(ctx, review.AuthorID))
	}

	return response.NewPaginatedResponse(reviewResponses, page.Page, page.Limit(), total), nil
}

func (s *reviewService) Create(ctx context.Context, actor *entity.User, titleID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	tid, err := s.titleID(ctx, titleID)
	if err != nil {
		return nil, err
	}

	// Cek duplikat dulu; skor baru tidak relevan, satu review per (author, title)
	existing, err := s.repo.Review.FindByAuthorAndTitle(ctx, actor.ID, tid)
	if err != nil {
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: title %s", ErrDuplicateReview, titleID)
	}

	review := &entity.Review{
		BaseNoDelete: entity.BaseNoDelete{
			ID: uuid.New(),
		},
		TitleID:  tid,
		AuthorID: actor.ID,
		Text:     req.Text,
		Score:    req.Score,
	}
	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now

	if err := s.repo.Review.Create(ctx, review); err != nil {
		// Balapan dengan request kembar: UNIQUE (title_id, author_id) yang menang
		if repository.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: title %s", ErrDuplicateReview, titleID)
		}
		s.log.Error("Failed to create review", zap.Error(err), zap.String("title_id", titleID))
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("title_id", titleID),
		zap.String("author", actor.Username))

	resp := response.ReviewToResponse(review, actor.Username)
	return &resp, nil
}

func (s *reviewService) Get(ctx context.Context, titleID, reviewID string) (*response.ReviewResponse, error) {
	review, err := s.findReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	resp := response.ReviewToResponse(review, s.authorUsername(ctx, review.AuthorID))
	return &resp, nil
}

func (s *reviewService) Update(ctx context.Context, actor *entity.User, titleID, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update review validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	review, err := s.findReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(actor, http.MethodPatch, review.AuthorID); err != nil {
		return nil, err
	}

	// Hanya text dan score yang bisa berubah; title dan author tetap
	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		review.Score = *req.Score
	}
	review.UpdatedAt = time.Now()

	if err := s.repo.Review.Update(ctx, review); err != nil {
		s.log.Error("Failed to update review", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("update review: %w", err)
	}

	resp := response.ReviewToResponse(review, s.authorUsername(ctx, review.AuthorID))
	return &resp, nil
}

func (s *reviewService) Delete(ctx context.Context, actor *entity.User, titleID, reviewID string) error {
	review, err := s.findReview(ctx, titleID, reviewID)
	if err != nil {
		return err
	}

	if err := s.authorize(actor, http.MethodDelete, review.AuthorID); err != nil {
		return err
	}

	if err := s.repo.Review.Delete(ctx, review.ID); err != nil {
		s.log.Error("Failed to delete review", zap.Error(err), zap.String("review_id", reviewID))
		return fmt.Errorf("delete review: %w", err)
	}

	s.log.Info("Review deleted",
		zap.String("review_id", reviewID),
		zap.String("actor", actor.Username))

	return nil
}

// ==================== HELPER METHODS ====================

// titleID memastikan title-nya ada sebelum operasi review apa pun
func (s *reviewService) titleID(ctx context.Context, titleID string) (uuid.UUID, error) {
	id, err := uuid.Parse(titleID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid title ID %s", ErrValidation, titleID)
	}

	title, err := s.repo.Title.FindByID(ctx, id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("find title: %w", err)
	}
	if title == nil {
		return uuid.Nil, fmt.Errorf("%w: title %s", ErrNotFound, titleID)
	}

	return id, nil
}

func (s *reviewService) findReview(ctx context.Context, titleID, reviewID string) (*entity.Review, error) {
	tid, err := s.titleID(ctx, titleID)
	if err != nil {
		return nil, err
	}

	rid, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid review ID %s", ErrValidation, reviewID)
	}

	review, err := s.repo.Review.FindByID(ctx, rid)
	if err != nil {
		return nil, fmt.Errorf("find review: %w", err)
	}
	if review == nil || review.TitleID != tid {
		// Review milik title lain tidak bocor lewat route ini
		return nil, fmt.Errorf("%w: review %s", ErrNotFound, reviewID)
	}

	return review, nil
}

func (s *reviewService) authorize(actor *entity.User, method string, authorID uuid.UUID) error {
	switch access.Evaluate(access.AuthorAdminModerator, actor, method, &authorID) {
	case access.Allow:
		return nil
	case access.DenyUnauthenticated:
		return fmt.Errorf("%w: authentication required", ErrForbidden)
	default:
		return fmt.Errorf("%w: not the author, moderator, or admin", ErrForbidden)
	}
}

func (s *reviewService) authorUsername(ctx context.Context, authorID uuid.UUID) string {
	author, err := s.repo.User.FindByID(ctx, authorID)
	if err != nil || author == nil {
		return ""
	}
	return author.Username
}
