package cmd

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/khmelm/api-yamdb/internal/data/entity"
	"github.com/khmelm/api-yamdb/internal/data/repository"
	"github.com/khmelm/api-yamdb/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// csvImporter memuat dump CSV ke database kosong. ID integer dari dump
// di-remap ke UUID lewat peta per tabel; relasi mengikuti peta itu.
type csvImporter struct {
	repo *repository.Repository
	log  *zap.Logger

	categories map[string]uuid.UUID
	genres     map[string]uuid.UUID
	titles     map[string]uuid.UUID
	users      map[string]uuid.UUID
	reviews    map[string]uuid.UUID
}

// RunImport loads the seven CSV dump files from dir into the database.
// Refuses to run against a database that already has data.
func RunImport(ctx context.Context, dir string, repo *repository.Repository, log *zap.Logger) error {
	imp := &csvImporter{
		repo:       repo,
		log:        log.With(zap.String("component", "importer")),
		categories: make(map[string]uuid.UUID),
		genres:     make(map[string]uuid.UUID),
		titles:     make(map[string]uuid.UUID),
		users:      make(map[string]uuid.UUID),
		reviews:    make(map[string]uuid.UUID),
	}

	if err := imp.ensureEmpty(ctx); err != nil {
		return err
	}

	// Urutan mengikuti dependensi FK
	steps := []struct {
		file string
		load func(ctx context.Context, path string) error
	}{
		{"users.csv", imp.loadUsers},
		{"category.csv", imp.loadCategories},
		{"genre.csv", imp.loadGenres},
		{"titles.csv", imp.loadTitles},
		{"genre_title.csv", imp.loadTitleGenres},
		{"review.csv", imp.loadReviews},
		{"comments.csv", imp.loadComments},
	}

	for _, step := range steps {
		path := filepath.Join(dir, step.file)
		if err := step.load(ctx, path); err != nil {
			return fmt.Errorf("import %s: %w", step.file, err)
		}
		imp.log.Info("Imported file", zap.String("file", step.file))
	}

	return nil
}

// ensureEmpty menolak import ke database yang sudah berisi data
func (imp *csvImporter) ensureEmpty(ctx context.Context) error {
	checks := []struct {
		name  string
		count func(ctx context.Context) (int64, error)
	}{
		{"users", func(ctx context.Context) (int64, error) { return imp.repo.User.CountAll(ctx, "") }},
		{"categories", func(ctx context.Context) (int64, error) { return imp.repo.Category.CountAll(ctx, "") }},
		{"genres", func(ctx context.Context) (int64, error) { return imp.repo.Genre.CountAll(ctx, "") }},
		{"titles", imp.repo.Title.CountTotal},
		{"reviews", imp.repo.Review.CountTotal},
		{"comments", imp.repo.Comment.CountTotal},
	}

	for _, check := range checks {
		count, err := check.count(ctx)
		if err != nil {
			return fmt.Errorf("count %s: %w", check.name, err)
		}
		if count > 0 {
			return fmt.Errorf("database is not empty: %s has %d rows", check.name, count)
		}
	}

	return nil
}

// readCSV membaca file dan mengembalikan rows sebagai map kolom->nilai,
// pakai header row sebagai nama kolom
func readCSV(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func (imp *csvImporter) loadUsers(ctx context.Context, path string) error {
	rows, err := readCSV(path)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, row := range rows {
		role := entity.UserRole(row["role"])
		if role == "" {
			role = entity.RoleUser
		}

		user := &entity.User{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Username:  row["username"],
			Email:     row["email"],
			FirstName: row["first_name"],
			LastName:  row["last_name"],
			Bio:       row["bio"],
			Role:      role,
		}

		if err := imp.repo.User.Create(ctx, user); err != nil {
			return fmt.Errorf("user %s: %w", user.Username, err)
		}
		imp.users[row["id"]] = user.ID
	}

	return nil
}

func (imp *csvImporter) loadCategories(ctx context.Context, path string) error {
	rows, err := readCSV(path)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, row := range rows {
		category := &entity.Category{
			BaseNoDelete: entity.BaseNoDelete{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Name: row["name"],
			Slug: row["slug"],
		}

		if err := imp.repo.Category.Create(ctx, category); err != nil {
			return fmt.Errorf("category %s: %w", category.Slug, err)
		}
		imp.categories[row["id"]] = category.ID
	}

	return nil
}

func (imp *csvImporter) loadGenres(ctx context.Context, path string) error {
	rows, err := readCSV(path)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, row := range rows {
		genre := &entity.Genre{
			BaseNoDelete: entity.BaseNoDelete{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Name: row["name"],
			Slug: row["slug"],
		}

		if err := imp.repo.Genre.Create(ctx, genre); err != nil {
			return fmt.Errorf("genre %s: %w", genre.Slug, err)
		}
		imp.genres[row["id"]] = genre.ID
	}

	return nil
}

func (imp *csvImporter) loadTitles(ctx context.Context, path string) error {
	rows, err := readCSV(path)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, row := range rows {
		title := &entity.Title{
			BaseNoDelete: entity.BaseNoDelete{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Name: row["name"],
			Year: utils.ParseInt(row["year"], 0),
		}

		if ref := row["category"]; ref != "" {
			categoryID, ok := imp.categories[ref]
			if !ok {
				return fmt.Errorf("title %s references unknown category %s", row["id"], ref)
			}
			title.CategoryID = &categoryID
		}

		if err := imp.repo.Title.Create(ctx, title); err != nil {
			return fmt.Errorf("title %s: %w", title.Name, err)
		}
		imp.titles[row["id"]] = title.ID
	}

	return nil
}

func (imp *csvImporter) loadTitleGenres(ctx context.Context, path string) error {
	rows, err := readCSV(path)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, row := range rows {
		titleID, ok := imp.titles[row["title_id"]]
		if !ok {
			return fmt.Errorf("link %s references unknown title %s", row["id"], row["title_id"])
		}
		genreID, ok := imp.genres[row["genre_id"]]
		if !ok {
			return fmt.Errorf("link %s references unknown genre %s", row["id"], row["genre_id"])
		}

		link := &entity.TitleGenre{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			TitleID: titleID,
			GenreID: genreID,
		}

		if err := imp.repo.TitleGenre.Create(ctx, link); err != nil {
			return fmt.Errorf("link title %s genre %s: %w", row["title_id"], row["genre_id"], err)
		}
	}

	return nil
}

func (imp *csvImporter) loadReviews(ctx context.Context, path string) error {
	rows, err := readCSV(path)
	if err != nil {
		return err
	}

	for _, row := range rows {
		titleID, ok := imp.titles[row["title_id"]]
		if !ok {
			return fmt.Errorf("review %s references unknown title %s", row["id"], row["title_id"])
		}
		authorID, ok := imp.users[row["author"]]
		if !ok {
			return fmt.Errorf("review %s references unknown author %s", row["id"], row["author"])
		}

		pubDate := parsePubDate(row["pub_date"])
		review := &entity.Review{
			BaseNoDelete: entity.BaseNoDelete{
				ID:        uuid.New(),
				CreatedAt: pubDate,
				UpdatedAt: pubDate,
			},
			TitleID:  titleID,
			AuthorID: authorID,
			Text:     row["text"],
			Score:    utils.ParseInt(row["score"], 0),
		}

		if err := imp.repo.Review.Create(ctx, review); err != nil {
			return fmt.Errorf("review %s: %w", row["id"], err)
		}
		imp.reviews[row["id"]] = review.ID
	}

	return nil
}

func (imp *csvImporter) loadComments(ctx context.Context, path string) error {
	rows, err := readCSV(path)
	if err != nil {
		return err
	}

	for _, row := range rows {
		reviewID, ok := imp.reviews[row["review_id"]]
		if !ok {
			return fmt.Errorf("comment %s references unknown review %s", row["id"], row["review_id"])
		}
		authorID, ok := imp.users[row["author"]]
		if !ok {
			return fmt.Errorf("comment %s references unknown author %s", row["id"], row["author"])
		}

		pubDate := parsePubDate(row["pub_date"])
		comment := &entity.Comment{
			BaseNoDelete: entity.BaseNoDelete{
				ID:        uuid.New(),
				CreatedAt: pubDate,
				UpdatedAt: pubDate,
			},
			ReviewID: reviewID,
			AuthorID: authorID,
			Text:     row["text"],
		}

		if err := imp.repo.Comment.Create(ctx, comment); err != nil {
			return fmt.Errorf("comment %s: %w", row["id"], err)
		}
	}

	return nil
}

func parsePubDate(raw string) time.Time {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	return time.Now()
}
