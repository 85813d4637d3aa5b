package adaptor

import (
	"github.com/Princeyelab/GlamgoYelab-sub005/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth       *AuthHandler
	Onboarding *OnboardingHandler
	Catalog    *CatalogHandler
	Booking    *BookingHandler
	Review     *ReviewHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(service.Auth, log),
		Onboarding: NewOnboardingHandler(service.Onboarding, log),
		Catalog:    NewCatalogHandler(service.Catalog, log),
		Booking:    NewBookingHandler(service.Booking, log),
		Review:     NewReviewHandler(service.Review, log),
	}
}
