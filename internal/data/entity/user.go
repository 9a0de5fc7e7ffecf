package entity

type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleModerator UserRole = "moderator"
	RoleAdmin     UserRole = "admin"
)

type User struct {
	Base
	Username  string   `db:"username"`
	Email     string   `db:"email"`
	FirstName string   `db:"first_name"`
	LastName  string   `db:"last_name"`
	Bio       string   `db:"bio"`
	Role      UserRole `db:"role"`
	// Superuser selalu diperlakukan sebagai admin
	IsSuperuser bool `db:"is_superuser"`
	// ConfirmationCodeHash menyimpan bcrypt hash dari kode konfirmasi terakhir.
	// Field khusus, bukan field password yang dipakai ulang.
	ConfirmationCodeHash string `db:"confirmation_code_hash"`
}

// IsAdmin returns true for the admin role or any superuser
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.IsSuperuser
}

func (u *User) IsModerator() bool {
	return u.Role == RoleModerator
}
