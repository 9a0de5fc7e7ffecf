package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/khmelm/api-yamdb/internal/data/entity"
	"github.com/khmelm/api-yamdb/internal/data/repository"
	"github.com/khmelm/api-yamdb/internal/dto/request"
	"github.com/khmelm/api-yamdb/internal/dto/response"
	"github.com/khmelm/api-yamdb/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	// Admin-only user management
	List(ctx context.Context, search string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	Create(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error)
	GetByUsername(ctx context.Context, username string) (*response.UserResponse, error)
	UpdateByUsername(ctx context.Context, username string, req *request.UpdateUserRequest) (*response.UserResponse, error)
	DeleteByUsername(ctx context.Context, username string) error

	// Self-service profile; actor selalu eksplisit, tidak pernah ambient
	GetMe(ctx context.Context, actor *entity.User) (*response.UserResponse, error)
	UpdateMe(ctx context.Context, actor *entity.User, req *request.UpdateUserRequest) (*response.UserResponse, error)
}

type userService struct {
	users repository.UserRepository
	log   *zap.Logger
}

func NewUserService(users repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		users: users,
		log:   log.With(zap.String("service", "user")),
	}
}

func (s *userService) List(ctx context.Context, search string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	users, err := s.users.FindAll(ctx, search, page.Limit(), page.Offset())
	if err != nil {
		s.log.Error("Failed to list users", zap.Error(err))
		return nil, fmt.Errorf("list users: %w", err)
	}

	total, err := s.users.CountAll(ctx, search)
	if err != nil {
		s.log.Error("Failed to count users", zap.Error(err))
		return nil, fmt.Errorf("count users: %w", err)
	}

	userResponses := make([]response.UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = response.UserToResponse(user)
	}

	return response.NewPaginatedResponse(userResponses, page.Page, page.Limit(), total), nil
}

// Create is the admin path: user langsung aktif, credential berupa kode
// konfirmasi random sekali pakai yang tidak pernah diberitahukan
func (s *userService) Create(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create user validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	// Throwaway credential: kode random yang plaintext-nya langsung dibuang
	codeHash, err := utils.HashConfirmationCode(utils.GenerateConfirmationCode(12))
	if err != nil {
		return nil, fmt.Errorf("hash throwaway code: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:             req.Username,
		Email:                req.Email,
		Role:                 entity.RoleUser,
		ConfirmationCodeHash: codeHash,
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Role != nil {
		user.Role = entity.UserRole(*req.Role)
	}

	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: username or email is taken", ErrConflict)
		}
		s.log.Error("Failed to create user", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("User created by admin",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*response.UserResponse, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, username)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) UpdateByUsername(ctx context.Context, username string, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update user validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, username)
	}

	// Admin path: role boleh diganti
	s.applyUserPatch(user, req, true)

	if err := s.users.Update(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: username or email is taken", ErrConflict)
		}
		s.log.Error("Failed to update user", zap.Error(err), zap.String("username", username))
		return nil, fmt.Errorf("update user: %w", err)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) DeleteByUsername(ctx context.Context, username string) error {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("%w: user %s", ErrNotFound, username)
	}

	if err := s.users.Delete(ctx, user.ID); err != nil {
		s.log.Error("Failed to delete user", zap.Error(err), zap.String("username", username))
		return fmt.Errorf("delete user: %w", err)
	}

	return nil
}

func (s *userService) GetMe(ctx context.Context, actor *entity.User) (*response.UserResponse, error) {
	resp := response.UserToResponse(actor)
	return &resp, nil
}

// UpdateMe: profile edit self-service. Role immutable untuk non-admin -
// field role di request di-drop tanpa error, seperti perilaku lama.
func (s *userService) UpdateMe(ctx context.Context, actor *entity.User, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update profile validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	s.applyUserPatch(actor, req, actor.IsAdmin())

	if err := s.users.Update(ctx, actor); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: username or email is taken", ErrConflict)
		}
		s.log.Error("Failed to update profile", zap.Error(err), zap.String("user_id", actor.ID.String()))
		return nil, fmt.Errorf("update profile: %w", err)
	}

	resp := response.UserToResponse(actor)
	return &resp, nil
}

func (s *userService) applyUserPatch(user *entity.User, req *request.UpdateUserRequest, allowRole bool) {
	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Role != nil && allowRole {
		user.Role = entity.UserRole(*req.Role)
	}
	user.UpdatedAt = time.Now()
}
