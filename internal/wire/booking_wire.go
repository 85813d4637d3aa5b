package wire

import (
	"github.com/Princeyelab/GlamgoYelab-sub005/internal/adaptor"
	"github.com/Princeyelab/GlamgoYelab-sub005/internal/data/entity"
	"github.com/Princeyelab/GlamgoYelab-sub005/internal/usecase"
	"github.com/Princeyelab/GlamgoYelab-sub005/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	reviewHandler *adaptor.ReviewHandler,
	gate usecase.GateService,
) {
	// ==================== CUSTOMER ROUTES ====================
	// Full gate: onboarded customers only.
	r.Route("/api/bookings", func(r chi.Router) {
		r.Use(middleware.Gate(gate, entity.RoleCustomer))
		r.Post("/", bookingHandler.CreateBooking)
		r.Get("/", bookingHandler.GetCustomerBookings)
		r.Get("/{id}", bookingHandler.GetBooking)
		r.Put("/{id}/cancel", bookingHandler.CancelBooking)
		r.Post("/{id}/review", reviewHandler.CreateReview)
	})

	// ==================== PROVIDER ROUTES ====================
	// Full gate: onboarded and active providers only.
	r.Route("/api/provider/bookings", func(r chi.Router) {
		r.Use(middleware.Gate(gate, entity.RoleProvider))
		r.Get("/", bookingHandler.GetProviderBookings)
		r.Get("/{id}", bookingHandler.GetBooking)
		r.Put("/{id}/accept", bookingHandler.AcceptBooking)
		r.Put("/{id}/on-way", bookingHandler.MarkOnWay)
		r.Put("/{id}/start", bookingHandler.StartBooking)
		r.Put("/{id}/complete", bookingHandler.CompleteBooking)
	})
}
