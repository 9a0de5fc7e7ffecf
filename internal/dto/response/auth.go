package response

import "time"

// SignupResponse echoes the accepted identity; kode konfirmasi tidak
// pernah ikut di response
type SignupResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type TokenResponse struct {
	Access    string    `json:"access"`
	ExpiresAt time.Time `json:"expires_at"`
}
