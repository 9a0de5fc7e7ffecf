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

type commentFixture struct {
	svc      CommentService
	users    *fakeUserRepo
	titles   *fakeTitleRepo
	reviews  *fakeReviewRepo
	comments *fakeCommentRepo

	title  *entity.Title
	review *entity.Review
	author *entity.User
}

func newCommentFixture() *commentFixture {
	users := newFakeUserRepo()
	titles := newFakeTitleRepo()
	reviews := newFakeReviewRepo()
	comments := newFakeCommentRepo()

	repo := &repository.Repository{
		User:    users,
		Title:   titles,
		Review:  reviews,
		Comment: comments,
	}

	author := &entity.User{
		Base:     entity.Base{ID: uuid.New()},
		Username: "commenter",
		Role:     entity.RoleUser,
	}
	users.add(author)

	title := &entity.Title{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		Name:         "Movie",
		Year:         1999,
	}
	titles.titles[title.ID] = title

	review := &entity.Review{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: time.Now()},
		TitleID:      title.ID,
		AuthorID:     author.ID,
		Text:         "good",
		Score:        8,
	}
	reviews.reviews[review.ID] = review

	return &commentFixture{
		svc:      NewCommentService(repo, zap.NewNop()),
		users:    users,
		titles:   titles,
		reviews:  reviews,
		comments: comments,
		title:    title,
		review:   review,
		author:   author,
	}
}

func (f *commentFixture) seedComment(author *entity.User) *entity.Comment {
	comment := &entity.Comment{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: time.Now()},
		ReviewID:     f.review.ID,
		AuthorID:     author.ID,
		Text:         "agree",
	}
	f.comments.comments[comment.ID] = comment
	return comment
}

func TestCreateComment(t *testing.T) {
	f := newCommentFixture()

	resp, err := f.svc.Create(context.Background(), f.author, f.title.ID.String(), f.review.ID.String(), &request.CreateCommentRequest{
		Text: "well said",
	})
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}
	if resp.Text != "well said" || resp.Author != "commenter" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestCommentReviewTitleMismatch(t *testing.T) {
	f := newCommentFixture()

	// Title lain yang valid, tapi review-nya milik title pertama
	otherTitle := &entity.Title{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		Name:         "Other",
		Year:         2001,
	}
	f.titles.titles[otherTitle.ID] = otherTitle

	_, err := f.svc.Create(context.Background(), f.author, otherTitle.ID.String(), f.review.ID.String(), &request.CreateCommentRequest{
		Text: "misplaced",
	})
	if !errors.Is(err, ErrReviewTitleMismatch) {
		t.Errorf("err = %v, want ErrReviewTitleMismatch", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("mismatch reported as plain not-found")
	}
}

func TestCommentUnknownReview(t *testing.T) {
	f := newCommentFixture()

	_, err := f.svc.Create(context.Background(), f.author, f.title.ID.String(), uuid.NewString(), &request.CreateCommentRequest{
		Text: "nowhere",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCommentObjectPermissions(t *testing.T) {
	tests := []struct {
		name    string
		role    entity.UserRole
		wantErr bool
	}{
		{"unrelated user", entity.RoleUser, true},
		{"moderator", entity.RoleModerator, false},
		{"admin", entity.RoleAdmin, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCommentFixture()
			comment := f.seedComment(f.author)

			actor := &entity.User{
				Base:     entity.Base{ID: uuid.New()},
				Username: "actor",
				Role:     tt.role,
			}
			f.users.add(actor)

			err := f.svc.Delete(context.Background(), actor, f.title.ID.String(), f.review.ID.String(), comment.ID.String())
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

func TestUpdateCommentByAuthor(t *testing.T) {
	f := newCommentFixture()
	comment := f.seedComment(f.author)

	newText := "changed my mind"
	resp, err := f.svc.Update(context.Background(), f.author, f.title.ID.String(), f.review.ID.String(), comment.ID.String(), &request.UpdateCommentRequest{
		Text: &newText,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if resp.Text != newText {
		t.Errorf("text = %q, want %q", resp.Text, newText)
	}

	stored := f.comments.comments[comment.ID]
	if stored.ReviewID != f.review.ID || stored.AuthorID != f.author.ID {
		t.Error("review or author changed on update")
	}
}

func TestListCommentsChecksRouteChain(t *testing.T) {
	f := newCommentFixture()
	f.seedComment(f.author)

	page := &request.PaginatedRequest{Page: 1, PerPage: 10}

	resp, err := f.svc.ListByReview(context.Background(), f.title.ID.String(), f.review.ID.String(), page)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(resp.Data) != 1 {
		t.Errorf("len = %d, want 1", len(resp.Data))
	}

	// Title yang tidak ada memutus rantai route
	_, err = f.svc.ListByReview(context.Background(), uuid.NewString(), f.review.ID.String(), page)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
