package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Princeyelab/GlamgoYelab-sub005/internal/data/entity"
	"github.com/Princeyelab/GlamgoYelab-sub005/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ErrStatusConflict means a compare-and-set status update lost a race:
// the stored status no longer matched the expected prior status at write time.
var ErrStatusConflict = errors.New("booking status changed concurrently")

const bookingColumns = `id, order_code, customer_id, provider_id, service_id, status,
		scheduled_date, scheduled_time, subtotal, total, currency, address, notes,
		created_at, updated_at`

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByCustomerID(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	FindByProviderID(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByCustomerID(ctx context.Context, customerID uuid.UUID) (int64, error)
	CountByProviderID(ctx context.Context, providerID uuid.UUID) (int64, error)

	// UpdateStatusCAS applies a status transition only if the stored status
	// still equals from. Zero rows affected means another request won the
	// race and ErrStatusConflict is returned.
	UpdateStatusCAS(ctx context.Context, bookingID uuid.UUID, from, to entity.BookingStatus) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.OrderCode,
		booking.CustomerID,
		booking.ProviderID,
		booking.ServiceID,
		booking.Status,
		booking.ScheduledDate,
		booking.ScheduledTime,
		booking.Subtotal,
		booking.Total,
		booking.Currency,
		booking.Address,
		booking.Notes,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("order_code", booking.OrderCode),
			zap.String("customer_id", booking.CustomerID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.OrderCode, err)
	}

	return nil
}

func (r *bookingRepository) scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.OrderCode,
		&booking.CustomerID,
		&booking.ProviderID,
		&booking.ServiceID,
		&booking.Status,
		&booking.ScheduledDate,
		&booking.ScheduledTime,
		&booking.Subtotal,
		&booking.Total,
		&booking.Currency,
		&booking.Address,
		&booking.Notes,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := r.scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) findByParty(ctx context.Context, column string, partyID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE ` + column + ` = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, partyID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings",
			zap.Error(err),
			zap.String(column, partyID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find bookings by %s %s: %w", column, partyID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	return r.findByParty(ctx, "customer_id", customerID, limit, offset)
}

func (r *bookingRepository) FindByProviderID(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	return r.findByParty(ctx, "provider_id", providerID, limit, offset)
}

func (r *bookingRepository) countByParty(ctx context.Context, column string, partyID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE ` + column + ` = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, partyID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings",
			zap.Error(err),
			zap.String(column, partyID.String()),
		)
		return 0, fmt.Errorf("count bookings by %s %s: %w", column, partyID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) CountByCustomerID(ctx context.Context, customerID uuid.UUID) (int64, error) {
	return r.countByParty(ctx, "customer_id", customerID)
}

func (r *bookingRepository) CountByProviderID(ctx context.Context, providerID uuid.UUID) (int64, error) {
	return r.countByParty(ctx, "provider_id", providerID)
}

func (r *bookingRepository) UpdateStatusCAS(ctx context.Context, bookingID uuid.UUID, from, to entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $3, updated_at = NOW() WHERE id = $1 AND status = $2`

	result, err := r.db.Exec(ctx, query, bookingID, from, to)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
		)
		return fmt.Errorf("update booking %s status %s -> %s: %w", bookingID.String(), string(from), string(to), err)
	}

	if result.RowsAffected() == 0 {
		r.log.Warn("Booking status CAS lost race",
			zap.String("booking_id", bookingID.String()),
			zap.String("expected", string(from)),
			zap.String("requested", string(to)),
		)
		return ErrStatusConflict
	}

	return nil
}
