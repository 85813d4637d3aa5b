package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Princeyelab/GlamgoYelab-sub005/internal/data/entity"
	"github.com/Princeyelab/GlamgoYelab-sub005/internal/data/repository"
	"github.com/Princeyelab/GlamgoYelab-sub005/internal/dto/request"
	"github.com/Princeyelab/GlamgoYelab-sub005/internal/dto/response"
	"github.com/Princeyelab/GlamgoYelab-sub005/pkg/token"
	"github.com/Princeyelab/GlamgoYelab-sub005/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
}

type authService struct {
	repo     *repository.Repository
	verifier *token.Verifier
	log      *zap.Logger
}

func NewAuthService(repo *repository.Repository, verifier *token.Verifier, log *zap.Logger) AuthService {
	return &authService{
		repo:     repo,
		verifier: verifier,
		log:      log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Check email not taken
	existingUser, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to check email")
	}
	if existingUser != nil {
		return nil, fmt.Errorf("email already registered")
	}

	// 3. Hash password
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to process password")
	}

	// 4. Create user
	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         entity.Role(req.Role),
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.log.Error("Failed to create user", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to create account")
	}

	// 5. Issue access token
	signed, expiresAt, err := s.verifier.Issue(user.ID, string(user.Role))
	if err != nil {
		s.log.Error("Failed to issue token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("failed to issue token")
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	// Fresh accounts always start at onboarding
	resp := response.AuthToResponse(user, signed, expiresAt, s.onboardingRedirect(user.Role))
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Find user
	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user by email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to find user")
	}
	if user == nil || !utils.CheckPassword(req.Password, user.PasswordHash) {
		return nil, fmt.Errorf("invalid email or password")
	}

	// 3. Issue access token
	signed, expiresAt, err := s.verifier.Issue(user.ID, string(user.Role))
	if err != nil {
		s.log.Error("Failed to issue token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("failed to issue token")
	}

	// 4. Tell the client whether onboarding is still pending
	redirect, err := s.pendingOnboardingRedirect(ctx, user)
	if err != nil {
		s.log.Error("Failed to check onboarding state",
			zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("failed to check onboarding state")
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))

	resp := response.AuthToResponse(user, signed, expiresAt, redirect)
	return &resp, nil
}

func (s *authService) onboardingRedirect(role entity.Role) string {
	if role == entity.RoleProvider {
		return ProviderOnboardingPath
	}
	return ClientOnboardingPath
}

// pendingOnboardingRedirect returns the onboarding path if the account has
// not completed setup yet, empty otherwise
func (s *authService) pendingOnboardingRedirect(ctx context.Context, user *entity.User) (string, error) {
	switch user.Role {
	case entity.RoleProvider:
		provider, err := s.repo.Provider.FindByID(ctx, user.ID)
		if err != nil {
			return "", err
		}
		if provider == nil || !provider.OnboardingCompleted {
			return ProviderOnboardingPath, nil
		}
	default:
		customer, err := s.repo.Customer.FindByID(ctx, user.ID)
		if err != nil {
			return "", err
		}
		if customer == nil || !customer.OnboardingCompleted {
			return ClientOnboardingPath, nil
		}
	}

	return "", nil
}
