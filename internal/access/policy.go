// Package access memutuskan boleh/tidaknya sebuah request.
// Rule set kecil dan tertutup: tiga policy, dievaluasi sebagai fungsi murni
// tanpa error dan tanpa panic - deny adalah hasil normal.
package access

import (
	"net/http"

	"github.com/khmelm/api-yamdb/internal/data/entity"

	"github.com/google/uuid"
)

// Policy adalah salah satu dari tiga aturan akses
type Policy int

const (
	// AdminOnly: hanya admin (atau superuser) yang boleh, termasuk method baca
	AdminOnly Policy = iota
	// AdminOrReadOnly: method baca bebas untuk siapa saja, tulis hanya admin
	AdminOrReadOnly
	// AuthorAdminModerator: baca bebas, create butuh login, mutasi objek
	// butuh author/admin/moderator
	AuthorAdminModerator
)

// Decision hasil evaluasi akses
type Decision int

const (
	Allow Decision = iota
	// DenyUnauthenticated maps to 401
	DenyUnauthenticated
	// DenyForbidden maps to 403
	DenyForbidden
)

func (d Decision) Allowed() bool {
	return d == Allow
}

// IsSafeMethod reports whether the HTTP method is read-only
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// Evaluate menjalankan policy untuk actor (nil = anonymous) dan method.
// authorID diisi hanya untuk object-level check pada objek yang sudah ada;
// nil berarti class-level check (list/create).
func Evaluate(p Policy, actor *entity.User, method string, authorID *uuid.UUID) Decision {
	switch p {
	case AdminOnly:
		return evaluateAdminOnly(actor)

	case AdminOrReadOnly:
		if IsSafeMethod(method) {
			return Allow
		}
		return evaluateAdminOnly(actor)

	case AuthorAdminModerator:
		if IsSafeMethod(method) {
			return Allow
		}
		if actor == nil {
			return DenyUnauthenticated
		}
		// Creation: cukup authenticated
		if authorID == nil {
			return Allow
		}
		if actor.ID == *authorID || actor.IsAdmin() || actor.IsModerator() {
			return Allow
		}
		return DenyForbidden
	}

	return DenyForbidden
}

func evaluateAdminOnly(actor *entity.User) Decision {
	if actor == nil {
		return DenyUnauthenticated
	}
	if !actor.IsAdmin() {
		return DenyForbidden
	}
	return Allow
}
