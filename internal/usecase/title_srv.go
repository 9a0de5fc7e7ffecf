package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/khmelm/api-yamdb/internal/data/entity"
	"github.com/khmelm/api-yamdb/internal/data/repository"
	"github.com/khmelm/api-yamdb/internal/dto/request"
	"github.com/khmelm/api-yamdb/internal/dto/response"
	"github.com/khmelm/api-yamdb/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TitleService interface {
	List(ctx context.Context, filter repository.TitleFilter, page *request.PaginatedRequest) (*response.PaginatedResponse[response.TitleResponse], error)
	Create(ctx context.Context, req *request.TitleRequest) (*response.TitleResponse, error)
	Get(ctx context.Context, titleID string) (*response.TitleResponse, error)
	Update(ctx context.Context, titleID string, req *request.TitleUpdateRequest) (*response.TitleResponse, error)
	Delete(ctx context.Context, titleID string) error
}

type titleService struct {
	repo *repository.Repository
	log  *zap.Logger

	// now dipisah biar testable untuk validasi year
	now func() time.Time
}

func NewTitleService(repo *repository.Repository, log *zap.Logger) TitleService {
	return &titleService{
		repo: repo,
		log:  log.With(zap.String("service", "title")),
		now:  time.Now,
	}
}

func (s *titleService) List(ctx context.Context, filter repository.TitleFilter, page *request.PaginatedRequest) (*response.PaginatedResponse[response.TitleResponse], error) {
	titles, err := s.repo.Title.FindAll(ctx, filter, page.Limit(), page.Offset())
	if err != nil {
		s.log.Error("Failed to list titles", zap.Error(err))
		return nil, fmt.Errorf("list titles: %w", err)
	}

	total, err := s.repo.Title.CountAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count titles", zap.Error(err))
		return nil, fmt.Errorf("count titles: %w", err)
	}

	titleResponses := make([]response.TitleResponse, len(titles))
	for i, title := range titles {
		resp, err := s.buildTitleResponse(ctx, title)
		if err != nil {
			return nil, err
		}
		titleResponses[i] = *resp
	}

	return response.NewPaginatedResponse(titleResponses, page.Page, page.Limit(), total), nil
}

func (s *titleService) Create(ctx context.Context, req *request.TitleRequest) (*response.TitleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create title validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	if err := s.validateYear(req.Year); err != nil {
		return nil, err
	}

	categoryID, err := s.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	genres, err := s.resolveGenres(ctx, req.Genres)
	if err != nil {
		return nil, err
	}

	now := s.now()
	title := &entity.Title{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		CategoryID:  categoryID,
	}

	if err := s.repo.Title.Create(ctx, title); err != nil {
		s.log.Error("Failed to create title", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("create title: %w", err)
	}

	if err := s.linkGenres(ctx, title.ID, genres); err != nil {
		return nil, err
	}

	s.log.Info("Title created",
		zap.String("title_id", title.ID.String()),
		zap.String("name", title.Name))

	return s.buildTitleResponse(ctx, title)
}

func (s *titleService) Get(ctx context.Context, titleID string) (*response.TitleResponse, error) {
	title, err := s.findTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	return s.buildTitleResponse(ctx, title)
}

func (s *titleService) Update(ctx context.Context, titleID string, req *request.TitleUpdateRequest) (*response.TitleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update title validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	title, err := s.findTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		if err := s.validateYear(*req.Year); err != nil {
			return nil, err
		}
		title.Year = *req.Year
	}
	if req.Description != nil {
		title.Description = req.Description
	}
	if req.Category != nil {
		categoryID, err := s.resolveCategory(ctx, req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = categoryID
	}
	title.UpdatedAt = s.now()

	if err := s.repo.Title.Update(ctx, title); err != nil {
		s.log.Error("Failed to update title", zap.Error(err), zap.String("title_id", titleID))
		return nil, fmt.Errorf("update title: %w", err)
	}

	if req.Genres != nil {
		genres, err := s.resolveGenres(ctx, req.Genres)
		if err != nil {
			return nil, err
		}
		if err := s.repo.TitleGenre.DeleteByTitleID(ctx, title.ID); err != nil {
			return nil, fmt.Errorf("replace title genres: %w", err)
		}
		if err := s.linkGenres(ctx, title.ID, genres); err != nil {
			return nil, err
		}
	}

	return s.buildTitleResponse(ctx, title)
}

// Delete menghapus title; reviews dan comments ikut hilang lewat cascade store
func (s *titleService) Delete(ctx context.Context, titleID string) error {
	title, err := s.findTitle(ctx, titleID)
	if err != nil {
		return err
	}

	if err := s.repo.Title.Delete(ctx, title.ID); err != nil {
		s.log.Error("Failed to delete title", zap.Error(err), zap.String("title_id", titleID))
		return fmt.Errorf("delete title: %w", err)
	}

	return nil
}

// ==================== HELPER METHODS ====================

func (s *titleService) findTitle(ctx context.Context, titleID string) (*entity.Title, error) {
	id, err := uuid.Parse(titleID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid title ID %s", ErrValidation, titleID)
	}

	title, err := s.repo.Title.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find title: %w", err)
	}
	if title == nil {
		return nil, fmt.Errorf("%w: title %s", ErrNotFound, titleID)
	}

	return title, nil
}

func (s *titleService) validateYear(year int) error {
	if year > s.now().Year() {
		return fmt.Errorf("%w: release year %d is in the future", ErrValidation, year)
	}
	return nil
}

func (s *titleService) resolveCategory(ctx context.Context, slug *string) (*uuid.UUID, error) {
	if slug == nil {
		return nil, nil
	}

	category, err := s.repo.Category.FindBySlug(ctx, *slug)
	if err != nil {
		return nil, fmt.Errorf("resolve category: %w", err)
	}
	if category == nil {
		return nil, fmt.Errorf("%w: category %s", ErrNotFound, *slug)
	}

	return &category.ID, nil
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]*entity.Genre, error) {
	genres := make([]*entity.Genre, 0, len(slugs))
	for _, slug := range slugs {
		genre, err := s.repo.Genre.FindBySlug(ctx, slug)
		if err != nil {
			return nil, fmt.Errorf("resolve genre: %w", err)
		}
		if genre == nil {
			return nil, fmt.Errorf("%w: genre %s", ErrNotFound, slug)
		}
		genres = append(genres, genre)
	}
	return genres, nil
}

func (s *titleService) linkGenres(ctx context.Context, titleID uuid.UUID, genres []*entity.Genre) error {
	for _, genre := range genres {
		link := &entity.TitleGenre{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: s.now(),
			},
			TitleID: titleID,
			GenreID: genre.ID,
		}
		if err := s.repo.TitleGenre.Create(ctx, link); err != nil {
			return fmt.Errorf("link genres: %w", err)
		}
	}
	return nil
}

func (s *titleService) buildTitleResponse(ctx context.Context, title *entity.Title) (*response.TitleResponse, error) {
	var category *entity.Category
	if title.CategoryID != nil {
		c, err := s.repo.Category.FindByID(ctx, *title.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("load title category: %w", err)
		}
		// category yang hilang (balapan dengan delete) diperlakukan sebagai null
		category = c
	}

	genres, err := s.repo.TitleGenre.FindGenresByTitleID(ctx, title.ID)
	if err != nil {
		return nil, fmt.Errorf("load title genres: %w", err)
	}

	resp := response.TitleToResponse(title, category, genres)
	return &resp, nil
}
