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

type ServiceRepository interface {
	Create(ctx context.Context, service *entity.Service) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error)
	FindByProviderID(ctx context.Context, providerID uuid.UUID, activeOnly bool) ([]*entity.Service, error)
	Update(ctx context.Context, service *entity.Service) error
}

type serviceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewServiceRepository(db database.PgxIface, log *zap.Logger) ServiceRepository {
	return &serviceRepository{
		db:  db,
		log: log.With(zap.String("repository", "service")),
	}
}

func (r *serviceRepository) Create(ctx context.Context, service *entity.Service) error {
	query := `
		INSERT INTO services (id, provider_id, name, description, price, currency, duration_minutes, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		service.ID,
		service.ProviderID,
		service.Name,
		service.Description,
		service.Price,
		service.Currency,
		service.DurationMinutes,
		service.IsActive,
		service.CreatedAt,
		service.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create service",
			zap.Error(err),
			zap.String("provider_id", service.ProviderID.String()),
			zap.String("name", service.Name),
		)
		return fmt.Errorf("create service %s: %w", service.Name, err)
	}

	return nil
}

func (r *serviceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	query := `
		SELECT id, provider_id, name, description, price, currency, duration_minutes, is_active, created_at, updated_at
		FROM services
		WHERE id = $1
	`

	var service entity.Service
	err := r.db.QueryRow(ctx, query, id).Scan(
		&service.ID,
		&service.ProviderID,
		&service.Name,
		&service.Description,
		&service.Price,
		&service.Currency,
		&service.DurationMinutes,
		&service.IsActive,
		&service.CreatedAt,
		&service.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find service by ID",
			zap.Error(err),
			zap.String("service_id", id.String()),
		)
		return nil, fmt.Errorf("find service by ID %s: %w", id.String(), err)
	}

	return &service, nil
}

func (r *serviceRepository) FindByProviderID(ctx context.Context, providerID uuid.UUID, activeOnly bool) ([]*entity.Service, error) {
	query := `
		SELECT id, provider_id, name, description, price, currency, duration_minutes, is_active, created_at, updated_at
		FROM services
		WHERE provider_id = $1 AND ($2 = false OR is_active = true)
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, providerID, activeOnly)
	if err != nil {
		r.log.Error("Failed to find services by provider ID",
			zap.Error(err),
			zap.String("provider_id", providerID.String()),
		)
		return nil, fmt.Errorf("find services by provider ID %s: %w", providerID.String(), err)
	}
	defer rows.Close()

	var services []*entity.Service
	for rows.Next() {
		var service entity.Service
		err := rows.Scan(
			&service.ID,
			&service.ProviderID,
			&service.Name,
			&service.Description,
			&service.Price,
			&service.Currency,
			&service.DurationMinutes,
			&service.IsActive,
			&service.CreatedAt,
			&service.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan service row", zap.Error(err))
			return nil, fmt.Errorf("scan service row: %w", err)
		}
		services = append(services, &service)
	}

	return services, nil
}

func (r *serviceRepository) Update(ctx context.Context, service *entity.Service) error {
	query := `
		UPDATE services
		SET name = $2, description = $3, price = $4, currency = $5,
		    duration_minutes = $6, is_active = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		service.ID,
		service.Name,
		service.Description,
		service.Price,
		service.Currency,
		service.DurationMinutes,
		service.IsActive,
		service.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update service",
			zap.Error(err),
			zap.String("service_id", service.ID.String()),
		)
		return fmt.Errorf("update service %s: %w", service.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("service %s not found", service.ID.String())
	}

	return nil
}
