package access

import (
	"net/http"
	"testing"

	"github.com/khmelm/api-yamdb/internal/data/entity"

	"github.com/google/uuid"
)

func user(role entity.UserRole, super bool) *entity.User {
	return &entity.User{
		Base:        entity.Base{ID: uuid.New()},
		Role:        role,
		IsSuperuser: super,
	}
}

func TestIsSafeMethod(t *testing.T) {
	safe := []string{http.MethodGet, http.MethodHead, http.MethodOptions}
	for _, m := range safe {
		if !IsSafeMethod(m) {
			t.Errorf("IsSafeMethod(%s) = false", m)
		}
	}

	unsafe := []string{http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete}
	for _, m := range unsafe {
		if IsSafeMethod(m) {
			t.Errorf("IsSafeMethod(%s) = true", m)
		}
	}
}

func TestEvaluateAdminOnly(t *testing.T) {
	tests := []struct {
		name  string
		actor *entity.User
		want  Decision
	}{
		{"anonymous", nil, DenyUnauthenticated},
		{"regular user", user(entity.RoleUser, false), DenyForbidden},
		{"moderator", user(entity.RoleModerator, false), DenyForbidden},
		{"admin", user(entity.RoleAdmin, false), Allow},
		{"superuser with user role", user(entity.RoleUser, true), Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// AdminOnly tidak peduli method: GET pun ditolak untuk non-admin
			for _, method := range []string{http.MethodGet, http.MethodPost} {
				if got := Evaluate(AdminOnly, tt.actor, method, nil); got != tt.want {
					t.Errorf("Evaluate(AdminOnly, %s) = %v, want %v", method, got, tt.want)
				}
			}
		})
	}
}

func TestEvaluateAdminOrReadOnly(t *testing.T) {
	tests := []struct {
		name   string
		actor  *entity.User
		method string
		want   Decision
	}{
		{"anonymous read", nil, http.MethodGet, Allow},
		{"anonymous write", nil, http.MethodPost, DenyUnauthenticated},
		{"user read", user(entity.RoleUser, false), http.MethodGet, Allow},
		{"user write", user(entity.RoleUser, false), http.MethodDelete, DenyForbidden},
		{"moderator write", user(entity.RoleModerator, false), http.MethodPost, DenyForbidden},
		{"admin write", user(entity.RoleAdmin, false), http.MethodPost, Allow},
		{"superuser write", user(entity.RoleUser, true), http.MethodPatch, Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(AdminOrReadOnly, tt.actor, tt.method, nil); got != tt.want {
				t.Errorf("Evaluate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluateAuthorAdminModerator(t *testing.T) {
	author := user(entity.RoleUser, false)
	other := user(entity.RoleUser, false)

	tests := []struct {
		name     string
		actor    *entity.User
		method   string
		authorID *uuid.UUID
		want     Decision
	}{
		{"anonymous read", nil, http.MethodGet, nil, Allow},
		{"anonymous create", nil, http.MethodPost, nil, DenyUnauthenticated},
		{"authenticated create", other, http.MethodPost, nil, Allow},
		{"author edits own", author, http.MethodPatch, &author.ID, Allow},
		{"other user edits", other, http.MethodPatch, &author.ID, DenyForbidden},
		{"other user deletes", other, http.MethodDelete, &author.ID, DenyForbidden},
		{"moderator edits", user(entity.RoleModerator, false), http.MethodPatch, &author.ID, Allow},
		{"admin deletes", user(entity.RoleAdmin, false), http.MethodDelete, &author.ID, Allow},
		{"superuser deletes", user(entity.RoleUser, true), http.MethodDelete, &author.ID, Allow},
		{"anonymous object read", nil, http.MethodGet, &author.ID, Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(AuthorAdminModerator, tt.actor, tt.method, tt.authorID); got != tt.want {
				t.Errorf("Evaluate = %v, want %v", got, tt.want)
			}
		})
	}
}
