package utils

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ==================== UUID ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

// ==================== CONFIRMATION CODE ====================

// GenerateConfirmationCode creates a numeric one-time code of specified length
func GenerateConfirmationCode(length int) string {
	if length <= 0 {
		length = 6
	}

	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			// crypto/rand hampir tidak pernah gagal; fallback digit nol
			code[i] = '0'
			continue
		}
		code[i] = byte('0' + n.Int64())
	}

	return string(code)
}

// HashConfirmationCode hashes a one-time code for storage
func HashConfirmationCode(code string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckConfirmationCode compares a one-time code against its stored hash.
// bcrypt compare is constant-time safe.
func CheckConfirmationCode(code, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
}
