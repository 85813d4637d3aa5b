package request

type CreateServiceRequest struct {
	Name            string  `json:"name" validate:"required,min=2,max=100"`
	Description     *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Price           float64 `json:"price" validate:"required,gte=0"`
	Currency        string  `json:"currency" validate:"required,len=3"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,gte=15,lte=480"`
}

type UpdateServiceRequest struct {
	Name            string  `json:"name" validate:"required,min=2,max=100"`
	Description     *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Price           float64 `json:"price" validate:"required,gte=0"`
	Currency        string  `json:"currency" validate:"required,len=3"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,gte=15,lte=480"`
	IsActive        *bool   `json:"is_active,omitempty"`
}
