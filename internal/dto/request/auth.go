package request

type SignupRequest struct {
	Username string `json:"username" validate:"required,username"`
	Email    string `json:"email" validate:"required,email,max=254"`
}

type TokenRequest struct {
	Username         string `json:"username" validate:"required,username"`
	ConfirmationCode string `json:"confirmation_code" validate:"required,max=25"`
}
