package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/khmelm/api-yamdb/internal/data/entity"
	"github.com/khmelm/api-yamdb/internal/data/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation meniru error duplicate key dari Postgres
func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
}

// ==================== USER ====================

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User

	createErr error
	findErr   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) add(user *entity.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = user
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return uniqueViolation()
		}
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[id]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.User
	for _, user := range f.users {
		if search == "" || strings.Contains(user.Username, search) {
			clone := *user
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) CountAll(ctx context.Context, search string) (int64, error) {
	users, _ := f.FindAll(ctx, search, 0, 0)
	return int64(len(users)), nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, existing := range f.users {
		if id == user.ID {
			continue
		}
		if existing.Username == user.Username || existing.Email == user.Email {
			return uniqueViolation()
		}
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) UpdateConfirmationCode(ctx context.Context, id uuid.UUID, codeHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return errors.New("user not found")
	}
	user.ConfirmationCodeHash = codeHash
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
	return nil
}

// ==================== CATEGORY / GENRE ====================

type fakeCategoryRepo struct {
	categories map[string]*entity.Category // keyed by slug
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[string]*entity.Category)}
}

func (f *fakeCategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	if _, ok := f.categories[category.Slug]; ok {
		return uniqueViolation()
	}
	f.categories[category.Slug] = category
	return nil
}

func (f *fakeCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	for _, category := range f.categories {
		if category.ID == id {
			return category, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryRepo) FindBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	return f.categories[slug], nil
}

func (f *fakeCategoryRepo) FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, category := range f.categories {
		if search == "" || strings.Contains(category.Name, search) {
			out = append(out, category)
		}
	}
	return out, nil
}

func (f *fakeCategoryRepo) CountAll(ctx context.Context, search string) (int64, error) {
	out, _ := f.FindAll(ctx, search, 0, 0)
	return int64(len(out)), nil
}

func (f *fakeCategoryRepo) DeleteBySlug(ctx context.Context, slug string) error {
	delete(f.categories, slug)
	return nil
}

type fakeGenreRepo struct {
	genres map[string]*entity.Genre
}

func newFakeGenreRepo() *fakeGenreRepo {
	return &fakeGenreRepo{genres: make(map[string]*entity.Genre)}
}

func (f *fakeGenreRepo) Create(ctx context.Context, genre *entity.Genre) error {
	if _, ok := f.genres[genre.Slug]; ok {
		return uniqueViolation()
	}
	f.genres[genre.Slug] = genre
	return nil
}

func (f *fakeGenreRepo) FindBySlug(ctx context.Context, slug string) (*entity.Genre, error) {
	return f.genres[slug], nil
}

func (f *fakeGenreRepo) FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.Genre, error) {
	var out []*entity.Genre
	for _, genre := range f.genres {
		if search == "" || strings.Contains(genre.Name, search) {
			out = append(out, genre)
		}
	}
	return out, nil
}

func (f *fakeGenreRepo) CountAll(ctx context.Context, search string) (int64, error) {
	out, _ := f.FindAll(ctx, search, 0, 0)
	return int64(len(out)), nil
}

func (f *fakeGenreRepo) DeleteBySlug(ctx context.Context, slug string) error {
	delete(f.genres, slug)
	return nil
}

// ==================== TITLE ====================

type fakeTitleRepo struct {
	titles map[uuid.UUID]*entity.Title
}

func newFakeTitleRepo() *fakeTitleRepo {
	return &fakeTitleRepo{titles: make(map[uuid.UUID]*entity.Title)}
}

func (f *fakeTitleRepo) Create(ctx context.Context, title *entity.Title) error {
	f.titles[title.ID] = title
	return nil
}

func (f *fakeTitleRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Title, error) {
	return f.titles[id], nil
}

func (f *fakeTitleRepo) FindAll(ctx context.Context, filter repository.TitleFilter, limit, offset int) ([]*entity.Title, error) {
	var out []*entity.Title
	for _, title := range f.titles {
		out = append(out, title)
	}
	return out, nil
}

func (f *fakeTitleRepo) CountAll(ctx context.Context, filter repository.TitleFilter) (int64, error) {
	return int64(len(f.titles)), nil
}

func (f *fakeTitleRepo) CountTotal(ctx context.Context) (int64, error) {
	return int64(len(f.titles)), nil
}

func (f *fakeTitleRepo) Update(ctx context.Context, title *entity.Title) error {
	f.titles[title.ID] = title
	return nil
}

func (f *fakeTitleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.titles, id)
	return nil
}

type fakeTitleGenreRepo struct {
	links  []*entity.TitleGenre
	genres map[uuid.UUID]*entity.Genre // genre by ID untuk resolve join
}

func newFakeTitleGenreRepo() *fakeTitleGenreRepo {
	return &fakeTitleGenreRepo{genres: make(map[uuid.UUID]*entity.Genre)}
}

func (f *fakeTitleGenreRepo) Create(ctx context.Context, link *entity.TitleGenre) error {
	f.links = append(f.links, link)
	return nil
}

func (f *fakeTitleGenreRepo) FindGenresByTitleID(ctx context.Context, titleID uuid.UUID) ([]*entity.Genre, error) {
	var out []*entity.Genre
	for _, link := range f.links {
		if link.TitleID == titleID {
			if genre, ok := f.genres[link.GenreID]; ok {
				out = append(out, genre)
			}
		}
	}
	return out, nil
}

func (f *fakeTitleGenreRepo) DeleteByTitleID(ctx context.Context, titleID uuid.UUID) error {
	var kept []*entity.TitleGenre
	for _, link := range f.links {
		if link.TitleID != titleID {
			kept = append(kept, link)
		}
	}
	f.links = kept
	return nil
}

// ==================== REVIEW ====================

type fakeReviewRepo struct {
	reviews map[uuid.UUID]*entity.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[uuid.UUID]*entity.Review)}
}

func (f *fakeReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	for _, existing := range f.reviews {
		if existing.TitleID == review.TitleID && existing.AuthorID == review.AuthorID {
			return uniqueViolation()
		}
	}
	f.reviews[review.ID] = review
	return nil
}

func (f *fakeReviewRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	return f.reviews[id], nil
}

func (f *fakeReviewRepo) FindByTitleID(ctx context.Context, titleID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	var out []*entity.Review
	for _, review := range f.reviews {
		if review.TitleID == titleID {
			out = append(out, review)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) CountByTitleID(ctx context.Context, titleID uuid.UUID) (int64, error) {
	out, _ := f.FindByTitleID(ctx, titleID, 0, 0)
	return int64(len(out)), nil
}

func (f *fakeReviewRepo) FindByAuthorAndTitle(ctx context.Context, authorID, titleID uuid.UUID) (*entity.Review, error) {
	for _, review := range f.reviews {
		if review.AuthorID == authorID && review.TitleID == titleID {
			return review, nil
		}
	}
	return nil, nil
}

func (f *fakeReviewRepo) Update(ctx context.Context, review *entity.Review) error {
	f.reviews[review.ID] = review
	return nil
}

func (f *fakeReviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.reviews, id)
	return nil
}

func (f *fakeReviewRepo) CountTotal(ctx context.Context) (int64, error) {
	return int64(len(f.reviews)), nil
}

// ==================== COMMENT ====================

type fakeCommentRepo struct {
	comments map[uuid.UUID]*entity.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[uuid.UUID]*entity.Comment)}
}

func (f *fakeCommentRepo) Create(ctx context.Context, comment *entity.Comment) error {
	f.comments[comment.ID] = comment
	return nil
}

func (f *fakeCommentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Comment, error) {
	return f.comments[id], nil
}

func (f *fakeCommentRepo) FindByReviewID(ctx context.Context, reviewID uuid.UUID, limit, offset int) ([]*entity.Comment, error) {
	var out []*entity.Comment
	for _, comment := range f.comments {
		if comment.ReviewID == reviewID {
			out = append(out, comment)
		}
	}
	return out, nil
}

func (f *fakeCommentRepo) CountByReviewID(ctx context.Context, reviewID uuid.UUID) (int64, error) {
	out, _ := f.FindByReviewID(ctx, reviewID, 0, 0)
	return int64(len(out)), nil
}

func (f *fakeCommentRepo) Update(ctx context.Context, comment *entity.Comment) error {
	f.comments[comment.ID] = comment
	return nil
}

func (f *fakeCommentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.comments, id)
	return nil
}

func (f *fakeCommentRepo) CountTotal(ctx context.Context) (int64, error) {
	return int64(len(f.comments)), nil
}

// ==================== MAILER ====================

type fakeMailer struct {
	sent chan string
	fail bool
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{sent: make(chan string, 8)}
}

func (f *fakeMailer) SendConfirmationCode(code, to string) error {
	if f.fail {
		return errors.New("smtp unavailable")
	}
	f.sent <- code
	return nil
}
