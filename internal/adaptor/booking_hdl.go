package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Princeyelab/GlamgoYelab-sub005/internal/data/entity"
	"github.com/Princeyelab/GlamgoYelab-sub005/internal/data/repository"
	"github.com/Princeyelab/GlamgoYelab-sub005/internal/dto/request"
	"github.com/Princeyelab/GlamgoYelab-sub005/internal/usecase"
	"github.com/Princeyelab/GlamgoYelab-sub005/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// actorFromContext rebuilds the authorized identity the gate middleware
// stored on the request context.
func actorFromContext(ctx context.Context) (*usecase.AuthorizedContext, bool) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, false
	}
	role, ok := utils.GetRoleFromContext(ctx)
	if !ok {
		return nil, false
	}
	return &usecase.AuthorizedContext{UserID: userID, Role: entity.Role(role)}, true
}

// CreateBooking handles POST /api/bookings (customer)
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(w, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "success", booking)
}

// GetBooking handles GET /api/bookings/{id} (customer) and
// GET /api/provider/bookings/{id} (provider)
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	booking, err := h.service.GetBooking(r.Context(), actor, bookingID)
	if err != nil {
		h.handleServiceError(w, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// GetCustomerBookings handles GET /api/bookings (customer)
func (h *BookingHandler) GetCustomerBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	req, scope := parseBookingListQuery(r)
	bookings, err := h.service.GetCustomerBookings(r.Context(), userID, scope, req)
	if err != nil {
		h.handleServiceError(w, err, "get customer bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetProviderBookings handles GET /api/provider/bookings (provider)
func (h *BookingHandler) GetProviderBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	req, scope := parseBookingListQuery(r)
	bookings, err := h.service.GetProviderBookings(r.Context(), userID, scope, req)
	if err != nil {
		h.handleServiceError(w, err, "get provider bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// CancelBooking handles PUT /api/bookings/{id}/cancel (customer)
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, entity.BookingStatusCancelled, "cancel booking")
}

// AcceptBooking handles PUT /api/provider/bookings/{id}/accept (provider)
func (h *BookingHandler) AcceptBooking(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, entity.BookingStatusAccepted, "accept booking")
}

// MarkOnWay handles PUT /api/provider/bookings/{id}/on-way (provider)
func (h *BookingHandler) MarkOnWay(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, entity.BookingStatusOnWay, "mark on way")
}

// StartBooking handles PUT /api/provider/bookings/{id}/start (provider)
func (h *BookingHandler) StartBooking(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, entity.BookingStatusInProgress, "start booking")
}

// CompleteBooking handles PUT /api/provider/bookings/{id}/complete (provider)
func (h *BookingHandler) CompleteBooking(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, entity.BookingStatusCompleted, "complete booking")
}

func (h *BookingHandler) transition(w http.ResponseWriter, r *http.Request, to entity.BookingStatus, operation string) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	booking, err := h.service.Transition(r.Context(), actor, bookingID, to)
	if err != nil {
		h.handleServiceError(w, err, operation)
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

func parseBookingListQuery(r *http.Request) (*request.PaginatedRequest, string) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}
	return req, query.Get("scope")
}

func (h *BookingHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	var illegal *entity.IllegalTransitionError

	switch {
	case errors.Is(err, usecase.ErrBookingNotFound):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrNotBookingParty):
		h.log.Warn(operation+" failed - not a booking party",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseForbidden(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrActionNotAllowed):
		h.log.Warn(operation+" failed - action outside role",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseForbidden(w, err.Error(), nil)

	case errors.As(err, &illegal):
		h.log.Warn(operation+" failed - illegal status change",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, repository.ErrStatusConflict):
		h.log.Warn(operation+" failed - concurrent status change",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, "booking status changed concurrently, refresh and retry")

	case strings.Contains(err.Error(), "validation failed"):
		h.log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case strings.Contains(err.Error(), "not found"):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, err.Error())

	case strings.Contains(err.Error(), "invalid") || strings.Contains(err.Error(), "not available") || strings.Contains(err.Error(), "cannot"):
		h.log.Warn(operation+" rejected",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
