package usecase

import "errors"

// Sentinel errors untuk seluruh service layer. Handler mencocokkan dengan
// errors.Is lalu translate ke status code; tidak ada side effect parsial -
// operasi gagal berarti store tidak berubah.
var (
	// ErrValidation: input malformed (pattern username, reserved name,
	// score di luar range, year masa depan)
	ErrValidation = errors.New("validation failed")

	// ErrConflict: bentrok uniqueness (username/email/slug sudah dipakai)
	ErrConflict = errors.New("already exists")

	// ErrNotFound: entity yang direferensikan tidak ada
	ErrNotFound = errors.New("not found")

	// ErrInvalidCode: kode konfirmasi tidak cocok dengan yang terakhir
	// diterbitkan; sengaja eksplisit, bukan generic auth failure
	ErrInvalidCode = errors.New("invalid confirmation code")

	// ErrForbidden: authenticated tapi role/ownership tidak cukup
	ErrForbidden = errors.New("permission denied")

	// ErrDuplicateReview: satu user maksimal satu review per title
	ErrDuplicateReview = errors.New("user already reviewed this title")

	// ErrReviewTitleMismatch: review ada, tapi bukan milik title di route
	ErrReviewTitleMismatch = errors.New("review does not belong to this title")
)
