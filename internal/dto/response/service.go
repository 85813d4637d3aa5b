package response

import (
	"github.com/Princeyelab/GlamgoYelab-sub005/internal/data/entity"
)

type ServiceResponse struct {
	ID              string  `json:"id"`
	ProviderID      string  `json:"provider_id"`
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	Price           float64 `json:"price"`
	Currency        string  `json:"currency"`
	DurationMinutes int     `json:"duration_minutes"`
	IsActive        bool    `json:"is_active"`
}

func ServiceToResponse(service *entity.Service) ServiceResponse {
	return ServiceResponse{
		ID:              service.ID.String(),
		ProviderID:      service.ProviderID.String(),
		Name:            service.Name,
		Description:     service.Description,
		Price:           service.Price,
		Currency:        service.Currency,
		DurationMinutes: service.DurationMinutes,
		IsActive:        service.IsActive,
	}
}
