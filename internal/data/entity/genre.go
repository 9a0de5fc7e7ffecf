package entity

type Genre struct {
	BaseNoDelete
	Name string `db:"name"`
	Slug string `db:"slug"` // unique
}
