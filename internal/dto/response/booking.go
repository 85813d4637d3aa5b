package response

import (
	"time"

	"github.com/Princeyelab/GlamgoYelab-sub005/internal/data/entity"
)

type BookingResponse struct {
	ID            string                `json:"id"`
	OrderCode     string                `json:"order_code"`
	CustomerID    string                `json:"customer_id"`
	ProviderID    string                `json:"provider_id"`
	ServiceID     string                `json:"service_id"`
	ServiceName   string                `json:"service_name,omitempty"`
	Status        entity.BookingStatus  `json:"status"`
	ScheduledDate string                `json:"scheduled_date"`
	ScheduledTime string                `json:"scheduled_time"`
	Subtotal      float64               `json:"subtotal"`
	Total         float64               `json:"total"`
	Currency      string                `json:"currency"`
	Address       string                `json:"address"`
	Notes         *string               `json:"notes,omitempty"`
	Actions       entity.BookingActions `json:"actions"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// BookingToResponse builds the client view of a booking, including the
// action-availability matrix derived from the current status.
func BookingToResponse(booking *entity.Booking, serviceName string) BookingResponse {
	return BookingResponse{
		ID:            booking.ID.String(),
		OrderCode:     booking.OrderCode,
		CustomerID:    booking.CustomerID.String(),
		ProviderID:    booking.ProviderID.String(),
		ServiceID:     booking.ServiceID.String(),
		ServiceName:   serviceName,
		Status:        booking.Status,
		ScheduledDate: booking.ScheduledDate.Format("2006-01-02"),
		ScheduledTime: booking.ScheduledTime,
		Subtotal:      booking.Subtotal,
		Total:         booking.Total,
		Currency:      booking.Currency,
		Address:       booking.Address,
		Notes:         booking.Notes,
		Actions:       entity.DeriveActions(booking.Status),
		CreatedAt:     booking.CreatedAt,
		UpdatedAt:     booking.UpdatedAt,
	}
}
