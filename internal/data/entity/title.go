package entity

import (
	"github.com/google/uuid"
)

type Title struct {
	BaseNoDelete
	Name        string  `db:"name"`
	Year        int     `db:"year"`
	Description *string `db:"description"`
	// CategoryID nullable: menghapus category hanya nge-null referensi ini
	CategoryID *uuid.UUID `db:"category_id"`
	// Rating dihitung dari AVG(reviews.score), nil kalau belum ada review
	Rating *float64 `db:"rating"`
}
