package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/khmelm/api-yamdb/internal/data/entity"
	"github.com/khmelm/api-yamdb/internal/data/repository"
	"github.com/khmelm/api-yamdb/internal/dto/request"
	"github.com/khmelm/api-yamdb/internal/dto/response"
	"github.com/khmelm/api-yamdb/pkg/mailer"
	"github.com/khmelm/api-yamdb/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	// Signup requests (or re-requests) a confirmation code for username+email
	Signup(ctx context.Context, req *request.SignupRequest) (*response.SignupResponse, error)
	// Token exchanges a confirmation code for a signed bearer access token
	Token(ctx context.Context, req *request.TokenRequest) (*response.TokenResponse, error)
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	mail   mailer.Mailer
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	mail mailer.Mailer,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		mail:   mail,
		log:    log.With(zap.String("service", "auth")),
	}
}

// Signup state machine per user: Unregistered -> PendingConfirmation -> Active.
// Signup ulang selalu boleh: kode baru menimpa kode lama.
func (s *authService) Signup(ctx context.Context, req *request.SignupRequest) (*response.SignupResponse, error) {
	// 1. Validasi input (pattern username + reserved "me" ditangani rule custom)
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Signup validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	// 2. Resolve user: reuse kalau username+email dua-duanya cocok persis
	user, err := s.resolveSignupUser(ctx, req.Username, req.Email)
	if err != nil {
		return nil, err
	}

	// 3. Generate kode baru, simpan sebagai hash di field khusus
	code := utils.GenerateConfirmationCode(s.config.Confirmation.CodeLength)
	codeHash, err := utils.HashConfirmationCode(code)
	if err != nil {
		s.log.Error("Failed to hash confirmation code", zap.Error(err))
		return nil, fmt.Errorf("hash confirmation code: %w", err)
	}

	if user == nil {
		// 4a. User baru: create dalam state PendingConfirmation
		now := time.Now()
		user = &entity.User{
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

		if err := s.repo.User.Create(ctx, user); err != nil {
			if repository.IsUniqueViolation(err) {
				// Signup concurrent untuk pasangan yang sama: coba reuse sekali,
				// kalau tetap tidak ketemu berarti bentrok dengan pasangan lain
				existing, lookupErr := s.resolveSignupUser(ctx, req.Username, req.Email)
				if lookupErr != nil {
					return nil, lookupErr
				}
				if existing == nil {
					return nil, fmt.Errorf("%w: username or email is taken", ErrConflict)
				}
				user = existing
				if err := s.repo.User.UpdateConfirmationCode(ctx, user.ID, codeHash); err != nil {
					s.log.Error("Failed to store confirmation code", zap.Error(err))
					return nil, fmt.Errorf("store confirmation code: %w", err)
				}
			} else {
				s.log.Error("Failed to create user", zap.Error(err), zap.String("username", req.Username))
				return nil, fmt.Errorf("create user: %w", err)
			}
		}
	} else {
		// 4b. User lama: kode baru menggantikan kode sebelumnya
		if err := s.repo.User.UpdateConfirmationCode(ctx, user.ID, codeHash); err != nil {
			s.log.Error("Failed to store confirmation code", zap.Error(err))
			return nil, fmt.Errorf("store confirmation code: %w", err)
		}
	}

	// 5. Kirim kode via email, best-effort async: gagal kirim tidak
	// membatalkan signup dan tidak rollback user
	go s.sendConfirmationCode(code, req.Email)

	s.log.Info("Signup accepted",
		zap.String("user_id", user.ID.String()),
		zap.String("username", req.Username))

	return &response.SignupResponse{
		Username: req.Username,
		Email:    req.Email,
	}, nil
}

func (s *authService) Token(ctx context.Context, req *request.TokenRequest) (*response.TokenResponse, error) {
	// 1. Validasi
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Token validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	// 2. Lookup by username
	user, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to find user for token", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, req.Username)
	}

	// 3. Constant-time compare terhadap hash tersimpan
	if user.ConfirmationCodeHash == "" ||
		!utils.CheckConfirmationCode(req.ConfirmationCode, user.ConfirmationCodeHash) {
		s.log.Warn("Invalid confirmation code", zap.String("username", req.Username))
		return nil, ErrInvalidCode
	}

	// 4. Mint access token
	token, expiresAt, err := utils.GenerateAccessToken(
		s.config.JWT, user.ID, user.Username, string(user.Role))
	if err != nil {
		s.log.Error("Failed to generate access token", zap.Error(err))
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	s.log.Info("Access token issued",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return &response.TokenResponse{
		Access:    token,
		ExpiresAt: expiresAt,
	}, nil
}

// ==================== HELPER METHODS ====================

// resolveSignupUser applies the signup uniqueness rules:
// exact (username,email) match -> reuse; partial match -> conflict; else nil.
func (s *authService) resolveSignupUser(ctx context.Context, username, email string) (*entity.User, error) {
	byUsername, err := s.repo.User.FindByUsername(ctx, username)
	if err != nil {
		s.log.Error("Failed to check username", zap.Error(err), zap.String("username", username))
		return nil, fmt.Errorf("check username: %w", err)
	}
	if byUsername != nil {
		if byUsername.Email == email {
			return byUsername, nil
		}
		return nil, fmt.Errorf("%w: username %s is taken", ErrConflict, username)
	}

	byEmail, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("check email: %w", err)
	}
	if byEmail != nil {
		return nil, fmt.Errorf("%w: email %s is taken", ErrConflict, email)
	}

	return nil, nil
}

func (s *authService) sendConfirmationCode(code, email string) {
	if err := s.mail.SendConfirmationCode(code, email); err != nil {
		s.log.Error("Failed to send confirmation code",
			zap.Error(err),
			zap.String("email", email))
	}
}
