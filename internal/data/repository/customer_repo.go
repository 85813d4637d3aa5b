package repository

import (
	"context"
	"fmt"

	"github.com/Princeyelab/GlamgoYelab-sub005/internal/data/entity"
	"github.com/Princeyelab/GlamgoYelab-sub005/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CustomerRepository interface {
	// FindByID is read fresh on every authorization check, never cached
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	Upsert(ctx context.Context, customer *entity.Customer) error
}

type customerRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCustomerRepository(db database.PgxIface, log *zap.Logger) CustomerRepository {
	return &customerRepository{
		db:  db,
		log: log.With(zap.String("repository", "customer")),
	}
}

func (r *customerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	query := `
		SELECT id, full_name, phone, default_address, onboarding_completed, created_at, updated_at
		FROM customers
		WHERE id = $1
	`

	var customer entity.Customer
	err := r.db.QueryRow(ctx, query, id).Scan(
		&customer.ID,
		&customer.FullName,
		&customer.Phone,
		&customer.DefaultAddress,
		&customer.OnboardingCompleted,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find customer by ID",
			zap.Error(err),
			zap.String("customer_id", id.String()),
		)
		return nil, fmt.Errorf("find customer by ID %s: %w", id.String(), err)
	}

	return &customer, nil
}

func (r *customerRepository) Upsert(ctx context.Context, customer *entity.Customer) error {
	query := `
		INSERT INTO customers (id, full_name, phone, default_address, onboarding_completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE
		SET full_name = $2, phone = $3, default_address = $4, onboarding_completed = $5, updated_at = $7
	`

	_, err := r.db.Exec(ctx, query,
		customer.ID,
		customer.FullName,
		customer.Phone,
		customer.DefaultAddress,
		customer.OnboardingCompleted,
		customer.CreatedAt,
		customer.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to upsert customer",
			zap.Error(err),
			zap.String("customer_id", customer.ID.String()),
		)
		return fmt.Errorf("upsert customer %s: %w", customer.ID.String(), err)
	}

	return nil
}
