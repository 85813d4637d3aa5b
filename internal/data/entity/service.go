package entity

import (
	"github.com/google/uuid"
)

// Service is one offering in a provider's catalog
type Service struct {
	Base
	ProviderID      uuid.UUID `db:"provider_id"`
	Name            string    `db:"name"`
	Description     *string   `db:"description"`
	Price           float64   `db:"price"`
	Currency        string    `db:"currency"`
	DurationMinutes int       `db:"duration_minutes"`
	IsActive        bool      `db:"is_active"`
}
