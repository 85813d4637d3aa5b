package response

import (
	"time"

	"github.com/Princeyelab/GlamgoYelab-sub005/internal/data/entity"
)

type ReviewResponse struct {
	ID         string    `json:"id"`
	BookingID  string    `json:"booking_id"`
	ProviderID string    `json:"provider_id"`
	Rating     int       `json:"rating"`
	Comment    *string   `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func ReviewToResponse(review *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:         review.ID.String(),
		BookingID:  review.BookingID.String(),
		ProviderID: review.ProviderID.String(),
		Rating:     review.Rating,
		Comment:    review.Comment,
		CreatedAt:  review.CreatedAt,
	}
}
