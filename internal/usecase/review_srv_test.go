package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/khmelm/api-yamdb/internal/data/entity"
	"github.com/khmelm/api-yamdb/internal/data/repository"
	"github.com/khmelm/api-yamdb/internal/dto/request"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type reviewFixture struct {
	svc     ReviewService
	users   *fakeUserRepo
	titles  *fakeTitleRepo
	reviews *fakeReviewRepo

	title  *entity.Title
	author *entity.User
}

func newReviewFixture() *reviewFixture {
	users := newFakeUserRepo()
	titles := newFakeTitleRepo()
	reviews := newFakeReviewRepo()

	repo := &repository.Repository{
		User:   users,
		Title:  titles,
		Review: reviews,
	}

	author := &entity.User{
		Base:     entity.Base{ID: uuid.New()},
		Username: "reader",
		Role:     entity.RoleUser,
	}
	users.add(author)

	title := &entity.Title{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		Name:         "Il buono, il brutto, il cattivo",
		Year:         1966,
	}
	titles.titles[title.ID] = title

	return &reviewFixture{
		svc:     NewReviewService(repo, zap.NewNop()),
		users:   users,
		titles:  titles,
		reviews: reviews,
		title:   title,
		author:  author,
	}
}

func (f *reviewFixture) addUser(role entity.UserRole) *entity.User {
	u := &entity.User{
		Base:     entity.Base{ID: uuid.New()},
		Username: "user-" + uuid.NewString()[:8],
		Role:     role,
	}
	f.users.add(u)
	return u
}

func (f *reviewFixture) seedReview(author *entity.User, score int) *entity.Review {
	review := &entity.Review{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		TitleID:  f.title.ID,
		AuthorID: author.ID,
		Text:     "solid",
		Score:    score,
	}
	f.reviews.reviews[review.ID] = review
	return review
}

func TestCreateReviewScoreBounds(t *testing.T) {
	tests := []struct {
		score   int
		wantErr bool
	}{
		{0, true},
		{1, false},
		{5, false},
		{10, false},
		{11, true},
		{-3, true},
	}

	for _, tt := range tests {
		f := newReviewFixture()
		_, err := f.svc.Create(context.Background(), f.author, f.title.ID.String(), &request.CreateReviewRequest{
			Text:  "great",
			Score: tt.score,
		})

		if tt.wantErr {
			if !errors.Is(err, ErrValidation) {
				t.Errorf("score %d: err = %v, want ErrValidation", tt.score, err)
			}
		} else if err != nil {
			t.Errorf("score %d: unexpected error %v", tt.score, err)
		}
	}
}

func TestCreateReviewDuplicate(t *testing.T) {
	f := newReviewFixture()
	ctx := context.Background()

	if _, err := f.svc.Create(ctx, f.author, f.title.ID.String(), &request.CreateReviewRequest{Text: "first", Score: 7}); err != nil {
		t.Fatalf("first review: %v", err)
	}

	// Score beda tidak membuat duplikat jadi boleh
	_, err := f.svc.Create(ctx, f.author, f.title.ID.String(), &request.CreateReviewRequest{Text: "second", Score: 3})
	if !errors.Is(err, ErrDuplicateReview) {
		t.Errorf("err = %v, want ErrDuplicateReview", err)
	}

	// Author lain boleh
	other := f.addUser(entity.RoleUser)
	if _, err := f.svc.Create(ctx, other, f.title.ID.String(), &request.CreateReviewRequest{Text: "mine", Score: 9}); err != nil {
		t.Errorf("other author review: %v", err)
	}
}

func TestCreateReviewUnknownTitle(t *testing.T) {
	f := newReviewFixture()

	_, err := f.svc.Create(context.Background(), f.author, uuid.NewString(), &request.CreateReviewRequest{Text: "x", Score: 5})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateReviewKeepsTitleAndAuthor(t *testing.T) {
	f := newReviewFixture()
	review := f.seedReview(f.author, 5)

	newText := "revised"
	newScore := 8
	resp, err := f.svc.Update(context.Background(), f.author, f.title.ID.String(), review.ID.String(), &request.UpdateReviewRequest{
		Text:  &newText,
		Score: &newScore,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if resp.Text != "revised" || resp.Score != 8 {
		t.Errorf("patch not applied: %+v", resp)
	}

	stored := f.reviews.reviews[review.ID]
	if stored.TitleID != f.title.ID || stored.AuthorID != f.author.ID {
		t.Error("title or author changed on update")
	}
}

func TestReviewObjectPermissions(t *testing.T) {
	tests := []struct {
		name      string
		role      entity.UserRole
		superuser bool
		wantErr   bool
	}{
		{"unrelated user", entity.RoleUser, false, true},
		{"moderator", entity.RoleModerator, false, false},
		{"admin", entity.RoleAdmin, false, false},
		{"superuser", entity.RoleUser, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newReviewFixture()
			review := f.seedReview(f.author, 5)

			actor := f.addUser(tt.role)
			actor.IsSuperuser = tt.superuser
			f.users.add(actor)

			err := f.svc.Delete(context.Background(), actor, f.title.ID.String(), review.ID.String())
			if tt.wantErr {
				if !errors.Is(err, ErrForbidden) {
					t.Errorf("err = %v, want ErrForbidden", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestGetReviewFromWrongTitle(t *testing.T) {
	f := newReviewFixture()
	review := f.seedReview(f.author, 5)

	otherTitle := &entity.Title{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		Name:         "Another",
		Year:         2000,
	}
	f.titles.titles[otherTitle.ID] = otherTitle

	_, err := f.svc.Get(context.Background(), otherTitle.ID.String(), review.ID.String())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestListReviewsUnknownTitle(t *testing.T) {
	f := newReviewFixture()

	_, err := f.svc.ListByTitle(context.Background(), uuid.NewString(), &request.PaginatedRequest{Page: 1, PerPage: 10})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
