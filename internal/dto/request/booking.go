package request

type CreateBookingRequest struct {
	ServiceID     string  `json:"service_id" validate:"required,uuid4"`
	ScheduledDate string  `json:"scheduled_date" validate:"required,datetime=2006-01-02"`
	ScheduledTime string  `json:"scheduled_time" validate:"required,datetime=15:04"`
	Address       string  `json:"address" validate:"required,max=255"`
	Notes         *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

type CreateReviewRequest struct {
	Rating  int     `json:"rating" validate:"required,gte=1,lte=5"`
	Comment *string `json:"comment,omitempty" validate:"omitempty,max=1000"`
}
