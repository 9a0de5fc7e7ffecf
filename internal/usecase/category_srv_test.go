package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/khmelm/api-yamdb/internal/dto/request"

	"go.uber.org/zap"
)

func TestCategoryCreateAndConflict(t *testing.T) {
	categories := newFakeCategoryRepo()
	svc := NewCategoryService(categories, zap.NewNop())
	ctx := context.Background()

	resp, err := svc.Create(ctx, &request.CategoryRequest{Name: "Movies", Slug: "movie"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if resp.Slug != "movie" {
		t.Errorf("slug = %s, want movie", resp.Slug)
	}

	// Slug sama, name beda: tetap konflik
	_, err = svc.Create(ctx, &request.CategoryRequest{Name: "Films", Slug: "movie"})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("err = %v, want ErrConflict", err)
	}
}

func TestCategoryCreateInvalidSlug(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryRepo(), zap.NewNop())

	_, err := svc.Create(context.Background(), &request.CategoryRequest{Name: "Bad", Slug: "no way"})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestCategoryDelete(t *testing.T) {
	categories := newFakeCategoryRepo()
	svc := NewCategoryService(categories, zap.NewNop())
	ctx := context.Background()

	if _, err := svc.Create(ctx, &request.CategoryRequest{Name: "Movies", Slug: "movie"}); err != nil {
		t.Fatal(err)
	}

	if err := svc.DeleteBySlug(ctx, "movie"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.DeleteBySlug(ctx, "movie"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: err = %v, want ErrNotFound", err)
	}
}

func TestGenreCreateAndConflict(t *testing.T) {
	genres := newFakeGenreRepo()
	svc := NewGenreService(genres, zap.NewNop())
	ctx := context.Background()

	if _, err := svc.Create(ctx, &request.GenreRequest{Name: "Western", Slug: "western"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err := svc.Create(ctx, &request.GenreRequest{Name: "Western again", Slug: "western"})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("err = %v, want ErrConflict", err)
	}

	if err := svc.DeleteBySlug(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete missing: err = %v, want ErrNotFound", err)
	}
}
