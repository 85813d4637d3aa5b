package response

import (
	"time"

	"github.com/Princeyelab/GlamgoYelab-sub005/internal/data/entity"
)

type ProviderResponse struct {
	ID              string  `json:"id"`
	BusinessName    string  `json:"business_name"`
	Bio             *string `json:"bio,omitempty"`
	ServiceRadiusKm int     `json:"service_radius_km"`
}

type CustomerResponse struct {
	ID                  string    `json:"id"`
	FullName            string    `json:"full_name"`
	Phone               *string   `json:"phone,omitempty"`
	DefaultAddress      *string   `json:"default_address,omitempty"`
	OnboardingCompleted bool      `json:"onboarding_completed"`
	CreatedAt           time.Time `json:"created_at"`
}

// ProviderProfileResponse is the provider's own view, including moderation state
type ProviderProfileResponse struct {
	ProviderResponse
	OnboardingCompleted bool                 `json:"onboarding_completed"`
	AccountStatus       entity.AccountStatus `json:"account_status"`
	CreatedAt           time.Time            `json:"created_at"`
}

func ProviderToResponse(provider *entity.Provider) ProviderResponse {
	return ProviderResponse{
		ID:              provider.ID.String(),
		BusinessName:    provider.BusinessName,
		Bio:             provider.Bio,
		ServiceRadiusKm: provider.ServiceRadiusKm,
	}
}

func ProviderToProfileResponse(provider *entity.Provider) ProviderProfileResponse {
	return ProviderProfileResponse{
		ProviderResponse:    ProviderToResponse(provider),
		OnboardingCompleted: provider.OnboardingCompleted,
		AccountStatus:       provider.AccountStatus,
		CreatedAt:           provider.CreatedAt,
	}
}

func CustomerToResponse(customer *entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:                  customer.ID.String(),
		FullName:            customer.FullName,
		Phone:               customer.Phone,
		DefaultAddress:      customer.DefaultAddress,
		OnboardingCompleted: customer.OnboardingCompleted,
		CreatedAt:           customer.CreatedAt,
	}
}
