package request

type CreateReviewRequest struct {
	Text string `json:"text" validate:"required"`
	// Score inclusive di kedua ujung: 1 dan 10 valid
	Score int `json:"score" validate:"required,min=1,max=10"`
}

type UpdateReviewRequest struct {
	Text  *string `json:"text,omitempty"`
	Score *int    `json:"score,omitempty" validate:"omitempty,min=1,max=10"`
}
