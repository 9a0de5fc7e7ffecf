package request

type TitleRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=256"`
	Year        int      `json:"year" validate:"required"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,max=50,slug"`
	Genres      []string `json:"genre,omitempty" validate:"dive,max=50,slug"`
}

type TitleUpdateRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=1,max=256"`
	Year        *int     `json:"year,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,max=50,slug"`
	Genres      []string `json:"genre,omitempty" validate:"dive,max=50,slug"`
}
