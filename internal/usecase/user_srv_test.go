package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/khmelm/api-yamdb/internal/data/entity"
	"github.com/khmelm/api-yamdb/internal/dto/request"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newUserFixture() (UserService, *fakeUserRepo) {
	users := newFakeUserRepo()
	return NewUserService(users, zap.NewNop()), users
}

func seedUser(users *fakeUserRepo, username string, role entity.UserRole) *entity.User {
	user := &entity.User{
		Base:     entity.Base{ID: uuid.New()},
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
	}
	users.add(user)
	return user
}

func TestAdminCreateUserWithRole(t *testing.T) {
	svc, users := newUserFixture()

	role := "moderator"
	resp, err := svc.Create(context.Background(), &request.CreateUserRequest{
		Username: "mod",
		Email:    "mod@example.com",
		Role:     &role,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if resp.Role != "moderator" {
		t.Errorf("role = %s, want moderator", resp.Role)
	}

	// Credential throwaway: user aktif tanpa kode yang bisa ditebak
	stored, _ := users.FindByUsername(context.Background(), "mod")
	if stored.ConfirmationCodeHash == "" {
		t.Error("admin-created user has empty credential hash")
	}
}

func TestAdminCreateUserConflicts(t *testing.T) {
	svc, users := newUserFixture()
	seedUser(users, "taken", entity.RoleUser)

	_, err := svc.Create(context.Background(), &request.CreateUserRequest{
		Username: "taken",
		Email:    "new@example.com",
	})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("err = %v, want ErrConflict", err)
	}
}

func TestAdminCreateUserRejectsBadRole(t *testing.T) {
	svc, _ := newUserFixture()

	role := "owner"
	_, err := svc.Create(context.Background(), &request.CreateUserRequest{
		Username: "x",
		Email:    "x@example.com",
		Role:     &role,
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestUpdateByUsernameChangesRole(t *testing.T) {
	svc, users := newUserFixture()
	seedUser(users, "promotee", entity.RoleUser)

	role := "moderator"
	resp, err := svc.UpdateByUsername(context.Background(), "promotee", &request.UpdateUserRequest{Role: &role})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if resp.Role != "moderator" {
		t.Errorf("role = %s, want moderator", resp.Role)
	}
}

func TestUpdateMeDropsRoleForNonAdmin(t *testing.T) {
	svc, users := newUserFixture()
	actor := seedUser(users, "plain", entity.RoleUser)

	role := "admin"
	bio := "just a reader"
	resp, err := svc.UpdateMe(context.Background(), actor, &request.UpdateUserRequest{
		Role: &role,
		Bio:  &bio,
	})
	if err != nil {
		t.Fatalf("update me: %v", err)
	}

	// Role diabaikan diam-diam, field lain tetap diterapkan
	if resp.Role != "user" {
		t.Errorf("role = %s, want user (silent drop)", resp.Role)
	}
	if resp.Bio != "just a reader" {
		t.Errorf("bio = %q, want applied", resp.Bio)
	}
}

func TestUpdateMeAllowsRoleForAdmin(t *testing.T) {
	svc, users := newUserFixture()
	actor := seedUser(users, "boss", entity.RoleAdmin)

	role := "moderator"
	resp, err := svc.UpdateMe(context.Background(), actor, &request.UpdateUserRequest{Role: &role})
	if err != nil {
		t.Fatalf("update me: %v", err)
	}
	if resp.Role != "moderator" {
		t.Errorf("role = %s, want moderator", resp.Role)
	}
}

func TestGetByUsernameNotFound(t *testing.T) {
	svc, _ := newUserFixture()

	_, err := svc.GetByUsername(context.Background(), "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteByUsername(t *testing.T) {
	svc, users := newUserFixture()
	seedUser(users, "leaver", entity.RoleUser)

	if err := svc.DeleteByUsername(context.Background(), "leaver"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if err := svc.DeleteByUsername(context.Background(), "leaver"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: err = %v, want ErrNotFound", err)
	}
}
