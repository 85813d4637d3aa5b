package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Princeyelab/GlamgoYelab-sub005/internal/data/entity"
	"github.com/Princeyelab/GlamgoYelab-sub005/internal/data/repository"
	"github.com/Princeyelab/GlamgoYelab-sub005/internal/dto/request"
	"github.com/Princeyelab/GlamgoYelab-sub005/internal/dto/response"
	"github.com/Princeyelab/GlamgoYelab-sub005/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	// ErrNotBookingParty: the caller is neither the customer nor the provider
	// of the booking it tries to touch
	ErrNotBookingParty = errors.New("booking does not belong to caller")
	// ErrActionNotAllowed: the transition target is outside the caller role's
	// action set (customers cancel, providers advance)
	ErrActionNotAllowed = errors.New("status change not allowed for this role")
)

// Booking list scopes, split by the is_active predicate
const (
	ScopeAll     = ""
	ScopeActive  = "active"
	ScopeHistory = "history"
)

type BookingService interface {
	CreateBooking(ctx context.Context, customerID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetBooking(ctx context.Context, actor *AuthorizedContext, bookingID string) (*response.BookingResponse, error)
	GetCustomerBookings(ctx context.Context, customerID uuid.UUID, scope string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetProviderBookings(ctx context.Context, providerID uuid.UUID, scope string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)

	// Transition applies one lifecycle step on behalf of the actor. Edge
	// legality is validated against the state machine, then persisted with
	// compare-and-set so concurrent requests cannot both win.
	Transition(ctx context.Context, actor *AuthorizedContext, bookingID string, to entity.BookingStatus) (*response.BookingResponse, error)
}

type bookingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, customerID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("invalid service ID format %s: %w", req.ServiceID, err)
	}

	scheduledDate, err := time.Parse("2006-01-02", req.ScheduledDate)
	if err != nil {
		return nil, fmt.Errorf("invalid scheduled date %s: %w", req.ScheduledDate, err)
	}
	if scheduledDate.Before(time.Now().Truncate(24 * time.Hour)) {
		return nil, fmt.Errorf("cannot book for a past date")
	}

	// Resolve the service and make sure its provider can actually take work
	service, err := s.repo.Service.FindByID(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("resolve service: %w", err)
	}
	if service == nil || !service.IsActive {
		return nil, fmt.Errorf("service %s not found", req.ServiceID)
	}

	provider, err := s.repo.Provider.FindByID(ctx, service.ProviderID)
	if err != nil {
		return nil, fmt.Errorf("resolve provider: %w", err)
	}
	if provider == nil || !provider.OnboardingCompleted || provider.AccountStatus != entity.AccountStatusActive {
		return nil, fmt.Errorf("provider is not available")
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OrderCode:     utils.GenerateOrderCode(),
		CustomerID:    customerID,
		ProviderID:    service.ProviderID,
		ServiceID:     service.ID,
		Status:        entity.BookingStatusPending,
		ScheduledDate: scheduledDate,
		ScheduledTime: req.ScheduledTime,
		Subtotal:      service.Price,
		Total:         service.Price,
		Currency:      service.Currency,
		Address:       req.Address,
		Notes:         req.Notes,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
			zap.String("service_id", req.ServiceID),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("order_code", booking.OrderCode),
		zap.String("customer_id", customerID.String()),
		zap.String("provider_id", booking.ProviderID.String()),
		zap.Float64("total", booking.Total),
	)

	resp := response.BookingToResponse(booking, service.Name)
	return &resp, nil
}

func (s *bookingService) GetBooking(ctx context.Context, actor *AuthorizedContext, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.findOwned(ctx, actor, bookingID)
	if err != nil {
		return nil, err
	}

	resp := response.BookingToResponse(booking, s.serviceName(ctx, booking.ServiceID))
	return &resp, nil
}

func (s *bookingService) GetCustomerBookings(ctx context.Context, customerID uuid.UUID, scope string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.FindByCustomerID(ctx, customerID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get customer bookings",
			zap.Error(err), zap.String("customer_id", customerID.String()))
		return nil, fmt.Errorf("get customer bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByCustomerID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("count customer bookings: %w", err)
	}

	return s.buildBookingPage(ctx, bookings, scope, req, total), nil
}

func (s *bookingService) GetProviderBookings(ctx context.Context, providerID uuid.UUID, scope string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.FindByProviderID(ctx, providerID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get provider bookings",
			zap.Error(err), zap.String("provider_id", providerID.String()))
		return nil, fmt.Errorf("get provider bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByProviderID(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("count provider bookings: %w", err)
	}

	return s.buildBookingPage(ctx, bookings, scope, req, total), nil
}

func (s *bookingService) Transition(ctx context.Context, actor *AuthorizedContext, bookingID string, to entity.BookingStatus) (*response.BookingResponse, error) {
	booking, err := s.findOwned(ctx, actor, bookingID)
	if err != nil {
		return nil, err
	}

	// Role action set: a customer can only cancel, a provider only advances.
	// This is authorization, distinct from edge legality below.
	if actor.Role == entity.RoleCustomer && to != entity.BookingStatusCancelled {
		return nil, ErrActionNotAllowed
	}
	if actor.Role == entity.RoleProvider && to == entity.BookingStatusCancelled {
		return nil, ErrActionNotAllowed
	}

	// Edge legality: fails closed, booking untouched
	prior := booking.Status
	if err := booking.ApplyTransition(to, time.Now()); err != nil {
		s.log.Warn("Illegal booking transition rejected",
			zap.String("booking_id", booking.ID.String()),
			zap.String("from", string(prior)),
			zap.String("to", string(to)),
		)
		return nil, err
	}

	// Persist with compare-and-set against the status we read
	if err := s.repo.Booking.UpdateStatusCAS(ctx, booking.ID, prior, to); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("persist transition: %w", err)
	}

	s.log.Info("Booking transitioned",
		zap.String("booking_id", booking.ID.String()),
		zap.String("from", string(prior)),
		zap.String("to", string(to)),
		zap.String("actor_id", actor.UserID.String()),
		zap.String("actor_role", string(actor.Role)),
	)

	resp := response.BookingToResponse(booking, s.serviceName(ctx, booking.ServiceID))
	return &resp, nil
}

// findOwned loads a booking and checks the actor is one of its two parties
func (s *bookingService) findOwned(ctx context.Context, actor *AuthorizedContext, bookingID string) (*entity.Booking, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	switch actor.Role {
	case entity.RoleCustomer:
		if booking.CustomerID != actor.UserID {
			return nil, ErrNotBookingParty
		}
	case entity.RoleProvider:
		if booking.ProviderID != actor.UserID {
			return nil, ErrNotBookingParty
		}
	}

	return booking, nil
}

func (s *bookingService) buildBookingPage(ctx context.Context, bookings []*entity.Booking, scope string, req *request.PaginatedRequest, total int64) *response.PaginatedResponse[response.BookingResponse] {
	items := make([]response.BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		if scope == ScopeActive && !booking.Status.IsActive() {
			continue
		}
		if scope == ScopeHistory && booking.Status.IsActive() {
			continue
		}
		items = append(items, response.BookingToResponse(booking, s.serviceName(ctx, booking.ServiceID)))
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total)
}

// serviceName is display-only; lookup failures degrade to an empty name
func (s *bookingService) serviceName(ctx context.Context, serviceID uuid.UUID) string {
	service, err := s.repo.Service.FindByID(ctx, serviceID)
	if err != nil || service == nil {
		return ""
	}
	return service.Name
}
