package request

type ClientOnboardingRequest struct {
	FullName       string  `json:"full_name" validate:"required,min=2,max=100"`
	Phone          *string `json:"phone,omitempty" validate:"omitempty,min=10,max=15"`
	DefaultAddress *string `json:"default_address,omitempty" validate:"omitempty,max=255"`
}

type ProviderOnboardingRequest struct {
	BusinessName    string  `json:"business_name" validate:"required,min=2,max=100"`
	Bio             *string `json:"bio,omitempty" validate:"omitempty,max=1000"`
	ServiceRadiusKm int     `json:"service_radius_km" validate:"required,gte=1,lte=100"`
}
