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
	// ErrBookingNotReviewable: reviews require a completed service
	ErrBookingNotReviewable = errors.New("booking is not completed")
	ErrAlreadyReviewed      = errors.New("booking already reviewed")
)

type ReviewService interface {
	CreateReview(ctx context.Context, customerID uuid.UUID, bookingID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	GetProviderReviews(ctx context.Context, providerID string, req *request.PaginatedRequest) ([]response.ReviewResponse, error)
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) CreateReview(ctx context.Context, customerID uuid.UUID, bookingID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

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
	if booking.CustomerID != customerID {
		return nil, ErrNotBookingParty
	}

	// The review action is only derived-available on completed bookings
	if !booking.Status.CanLeaveReview() {
		return nil, ErrBookingNotReviewable
	}

	existing, err := s.repo.Review.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadyReviewed
	}

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		BookingID:  booking.ID,
		CustomerID: customerID,
		ProviderID: booking.ProviderID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		s.log.Error("Failed to create review",
			zap.Error(err), zap.String("booking_id", bookingID))
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("booking_id", bookingID),
		zap.Int("rating", req.Rating))

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) GetProviderReviews(ctx context.Context, providerID string, req *request.PaginatedRequest) ([]response.ReviewResponse, error) {
	id, err := uuid.Parse(providerID)
	if err != nil {
		return nil, fmt.Errorf("invalid provider ID format %s: %w", providerID, err)
	}

	reviews, err := s.repo.Review.FindByProviderID(ctx, id, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get provider reviews",
			zap.Error(err), zap.String("provider_id", providerID))
		return nil, fmt.Errorf("get provider reviews: %w", err)
	}

	items := make([]response.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		items = append(items, response.ReviewToResponse(review))
	}

	return items, nil
}
