package usecase

import (
	"github.com/Princeyelab/GlamgoYelab-sub005/internal/data/repository"
	"github.com/Princeyelab/GlamgoYelab-sub005/pkg/token"

	"go.uber.org/zap"
)

type Service struct {
	Auth       AuthService
	Gate       GateService
	Onboarding OnboardingService
	Catalog    CatalogService
	Booking    BookingService
	Review     ReviewService
}

func NewService(repo *repository.Repository, verifier *token.Verifier, log *zap.Logger) *Service {
	return &Service{
		Auth:       NewAuthService(repo, verifier, log),
		Gate:       NewGateService(verifier, repo, log),
		Onboarding: NewOnboardingService(repo, log),
		Catalog:    NewCatalogService(repo, log),
		Booking:    NewBookingService(repo, log),
		Review:     NewReviewService(repo, log),
	}
}
