package repository

import (
	"github.com/Princeyelab/GlamgoYelab-sub005/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User     UserRepository
	Customer CustomerRepository
	Provider ProviderRepository
	Service  ServiceRepository
	Booking  BookingRepository
	Review   ReviewRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:     NewUserRepository(db, log),
		Customer: NewCustomerRepository(db, log),
		Provider: NewProviderRepository(db, log),
		Service:  NewServiceRepository(db, log),
		Booking:  NewBookingRepository(db, log),
		Review:   NewReviewRepository(db, log),
	}
}
