package repository

import (
	"context"
	"fmt"

	"github.com/khmelm/api-yamdb/internal/data/entity"
	"github.com/khmelm/api-yamdb/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TitleGenreRepository interface {
	Create(ctx context.Context, titleGenre *entity.TitleGenre) error
	FindGenresByTitleID(ctx context.Context, titleID uuid.UUID) ([]*entity.Genre, error)
	DeleteByTitleID(ctx context.Context, titleID uuid.UUID) error
}

type titleGenreRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTitleGenreRepository(db database.PgxIface, log *zap.Logger) TitleGenreRepository {
	return &titleGenreRepository{
		db:  db,
		log: log.With(zap.String("repository", "title_genre")),
	}
}

func (r *titleGenreRepository) Create(ctx context.Context, titleGenre *entity.TitleGenre) error {
	query := `
		INSERT INTO title_genres (id, title_id, genre_id, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query,
		titleGenre.ID,
		titleGenre.TitleID,
		titleGenre.GenreID,
		titleGenre.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to link genre to title",
			zap.Error(err),
			zap.String("title_id", titleGenre.TitleID.String()),
			zap.String("genre_id", titleGenre.GenreID.String()),
		)
		return fmt.Errorf("link genre %s to title %s: %w",
			titleGenre.GenreID.String(), titleGenre.TitleID.String(), err)
	}

	return nil
}

func (r *titleGenreRepository) FindGenresByTitleID(ctx context.Context, titleID uuid.UUID) ([]*entity.Genre, error) {
	query := `
		SELECT g.id, g.name, g.slug, g.created_at, g.updated_at
		FROM genres g
		JOIN title_genres tg ON tg.genre_id = g.id
		WHERE tg.title_id = $1
		ORDER BY g.slug
	`

	rows, err := r.db.Query(ctx, query, titleID)
	if err != nil {
		r.log.Error("Failed to get genres for title",
			zap.Error(err),
			zap.String("title_id", titleID.String()),
		)
		return nil, fmt.Errorf("find genres for title %s: %w", titleID.String(), err)
	}
	defer rows.Close()

	var genres []*entity.Genre
	for rows.Next() {
		var genre entity.Genre
		err := rows.Scan(
			&genre.ID,
			&genre.Name,
			&genre.Slug,
			&genre.CreatedAt,
			&genre.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan genre row", zap.Error(err))
			return nil, fmt.Errorf("scan genre row: %w", err)
		}
		genres = append(genres, &genre)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate title genres rows: %w", err)
	}

	return genres, nil
}

// DeleteByTitleID dipakai saat patch title mengganti daftar genre
func (r *titleGenreRepository) DeleteByTitleID(ctx context.Context, titleID uuid.UUID) error {
	query := `DELETE FROM title_genres WHERE title_id = $1`

	_, err := r.db.Exec(ctx, query, titleID)
	if err != nil {
		r.log.Error("Failed to unlink genres from title",
			zap.Error(err),
			zap.String("title_id", titleID.String()),
		)
		return fmt.Errorf("unlink genres from title %s: %w", titleID.String(), err)
	}

	return nil
}
