package entity

type Category struct {
	BaseNoDelete
	Name string `db:"name"`
	Slug string `db:"slug"` // unique
}
