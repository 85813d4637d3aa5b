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

// CatalogService covers the public browse surface and the provider's own
// service management
type CatalogService interface {
	ListProviders(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ProviderResponse], error)
	GetProvider(ctx context.Context, providerID string) (*response.ProviderResponse, error)
	GetProviderServices(ctx context.Context, providerID string) ([]response.ServiceResponse, error)

	CreateService(ctx context.Context, providerID uuid.UUID, req *request.CreateServiceRequest) (*response.ServiceResponse, error)
	UpdateService(ctx context.Context, providerID uuid.UUID, serviceID string, req *request.UpdateServiceRequest) (*response.ServiceResponse, error)
	ListOwnServices(ctx context.Context, providerID uuid.UUID) ([]response.ServiceResponse, error)
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) ListProviders(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ProviderResponse], error) {
	providers, err := s.repo.Provider.FindActive(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list providers", zap.Error(err))
		return nil, fmt.Errorf("list providers: %w", err)
	}

	total, err := s.repo.Provider.CountActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("count providers: %w", err)
	}

	items := make([]response.ProviderResponse, 0, len(providers))
	for _, provider := range providers {
		items = append(items, response.ProviderToResponse(provider))
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *catalogService) GetProvider(ctx context.Context, providerID string) (*response.ProviderResponse, error) {
	provider, err := s.findVisibleProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	resp := response.ProviderToResponse(provider)
	return &resp, nil
}

func (s *catalogService) GetProviderServices(ctx context.Context, providerID string) ([]response.ServiceResponse, error) {
	provider, err := s.findVisibleProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	services, err := s.repo.Service.FindByProviderID(ctx, provider.ID, true)
	if err != nil {
		s.log.Error("Failed to list provider services",
			zap.Error(err), zap.String("provider_id", providerID))
		return nil, fmt.Errorf("list provider services: %w", err)
	}

	items := make([]response.ServiceResponse, 0, len(services))
	for _, service := range services {
		items = append(items, response.ServiceToResponse(service))
	}

	return items, nil
}

func (s *catalogService) CreateService(ctx context.Context, providerID uuid.UUID, req *request.CreateServiceRequest) (*response.ServiceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create service validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	service := &entity.Service{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ProviderID:      providerID,
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		Currency:        req.Currency,
		DurationMinutes: req.DurationMinutes,
		IsActive:        true,
	}

	if err := s.repo.Service.Create(ctx, service); err != nil {
		s.log.Error("Failed to create service",
			zap.Error(err), zap.String("provider_id", providerID.String()))
		return nil, fmt.Errorf("create service: %w", err)
	}

	s.log.Info("Service created",
		zap.String("service_id", service.ID.String()),
		zap.String("provider_id", providerID.String()))

	resp := response.ServiceToResponse(service)
	return &resp, nil
}

func (s *catalogService) UpdateService(ctx context.Context, providerID uuid.UUID, serviceID string, req *request.UpdateServiceRequest) (*response.ServiceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update service validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(serviceID)
	if err != nil {
		return nil, fmt.Errorf("invalid service ID format %s: %w", serviceID, err)
	}

	service, err := s.repo.Service.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find service: %w", err)
	}
	if service == nil || service.ProviderID != providerID {
		// hide other providers' services behind not-found
		return nil, fmt.Errorf("service %s not found", serviceID)
	}

	service.Name = req.Name
	service.Description = req.Description
	service.Price = req.Price
	service.Currency = req.Currency
	service.DurationMinutes = req.DurationMinutes
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}
	service.UpdatedAt = time.Now()

	if err := s.repo.Service.Update(ctx, service); err != nil {
		s.log.Error("Failed to update service",
			zap.Error(err), zap.String("service_id", serviceID))
		return nil, fmt.Errorf("update service: %w", err)
	}

	resp := response.ServiceToResponse(service)
	return &resp, nil
}

func (s *catalogService) ListOwnServices(ctx context.Context, providerID uuid.UUID) ([]response.ServiceResponse, error) {
	services, err := s.repo.Service.FindByProviderID(ctx, providerID, false)
	if err != nil {
		s.log.Error("Failed to list own services",
			zap.Error(err), zap.String("provider_id", providerID.String()))
		return nil, fmt.Errorf("list own services: %w", err)
	}

	items := make([]response.ServiceResponse, 0, len(services))
	for _, service := range services {
		items = append(items, response.ServiceToResponse(service))
	}

	return items, nil
}

// findVisibleProvider resolves a provider for the public catalog: only
// onboarded, active accounts are visible
func (s *catalogService) findVisibleProvider(ctx context.Context, providerID string) (*entity.Provider, error) {
	id, err := uuid.Parse(providerID)
	if err != nil {
		return nil, fmt.Errorf("invalid provider ID format %s: %w", providerID, err)
	}

	provider, err := s.repo.Provider.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find provider: %w", err)
	}
	if provider == nil || !provider.OnboardingCompleted || provider.AccountStatus != entity.AccountStatusActive {
		return nil, fmt.Errorf("provider %s not found", providerID)
	}

	return provider, nil
}
