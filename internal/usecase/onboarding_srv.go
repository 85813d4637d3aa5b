package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Princeyelab/GlamgoYelab-sub005/internal/data/entity"
	"github.com/Princeyelab/GlamgoYelab-sub005/internal/data/repository"
	"github.com/Princeyelab/GlamgoYelab-sub005/internal/dto/request"
	"github.com/Princeyelab/GlamgoYelab-sub005/internal/dto/response"
	"github.com/Princeyelab/GlamgoYelab-sub005/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OnboardingService completes the mandatory one-time setup for either role.
// Its endpoints sit behind identity-only authorization: they are the redirect
// targets the gate points not-yet-onboarded users at.
type OnboardingService interface {
	CompleteClient(ctx context.Context, userID uuid.UUID, req *request.ClientOnboardingRequest) (*response.CustomerResponse, error)
	CompleteProvider(ctx context.Context, userID uuid.UUID, req *request.ProviderOnboardingRequest) (*response.ProviderProfileResponse, error)
	GetProviderProfile(ctx context.Context, userID uuid.UUID) (*response.ProviderProfileResponse, error)
}

type onboardingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewOnboardingService(repo *repository.Repository, log *zap.Logger) OnboardingService {
	return &onboardingService{
		repo: repo,
		log:  log.With(zap.String("service", "onboarding")),
	}
}

func (s *onboardingService) CompleteClient(ctx context.Context, userID uuid.UUID, req *request.ClientOnboardingRequest) (*response.CustomerResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Client onboarding validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	createdAt := now
	if existing, err := s.repo.Customer.FindByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("check existing customer: %w", err)
	} else if existing != nil {
		createdAt = existing.CreatedAt
	}

	customer := &entity.Customer{
		Base: entity.Base{
			ID:        userID,
			CreatedAt: createdAt,
			UpdatedAt: now,
		},
		FullName:            req.FullName,
		Phone:               req.Phone,
		DefaultAddress:      req.DefaultAddress,
		OnboardingCompleted: true,
	}

	if err := s.repo.Customer.Upsert(ctx, customer); err != nil {
		s.log.Error("Failed to complete client onboarding",
			zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("complete client onboarding: %w", err)
	}

	s.log.Info("Client onboarding completed", zap.String("user_id", userID.String()))

	resp := response.CustomerToResponse(customer)
	return &resp, nil
}

func (s *onboardingService) CompleteProvider(ctx context.Context, userID uuid.UUID, req *request.ProviderOnboardingRequest) (*response.ProviderProfileResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Provider onboarding validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	createdAt := now
	// New providers enter manual review; re-running onboarding must not
	// reset an already-moderated account status
	accountStatus := entity.AccountStatusPending
	if existing, err := s.repo.Provider.FindByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("check existing provider: %w", err)
	} else if existing != nil {
		createdAt = existing.CreatedAt
		accountStatus = existing.AccountStatus
	}

	provider := &entity.Provider{
		Base: entity.Base{
			ID:        userID,
			CreatedAt: createdAt,
			UpdatedAt: now,
		},
		BusinessName:        req.BusinessName,
		Bio:                 req.Bio,
		ServiceRadiusKm:     req.ServiceRadiusKm,
		OnboardingCompleted: true,
		AccountStatus:       accountStatus,
	}

	if err := s.repo.Provider.Upsert(ctx, provider); err != nil {
		s.log.Error("Failed to complete provider onboarding",
			zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("complete provider onboarding: %w", err)
	}

	s.log.Info("Provider onboarding completed",
		zap.String("user_id", userID.String()),
		zap.String("account_status", string(accountStatus)))

	resp := response.ProviderToProfileResponse(provider)
	return &resp, nil
}

func (s *onboardingService) GetProviderProfile(ctx context.Context, userID uuid.UUID) (*response.ProviderProfileResponse, error) {
	provider, err := s.repo.Provider.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get provider profile: %w", err)
	}
	if provider == nil {
		return nil, fmt.Errorf("provider profile not found")
	}

	resp := response.ProviderToProfileResponse(provider)
	return &resp, nil
}
