package entity

import (
	"github.com/google/uuid"
)

// Review of a completed booking, one per booking
type Review struct {
	BaseSimple
	BookingID  uuid.UUID `db:"booking_id"`
	CustomerID uuid.UUID `db:"customer_id"`
	ProviderID uuid.UUID `db:"provider_id"`
	Rating     int       `db:"rating"`
	Comment    *string   `db:"comment"`
}
