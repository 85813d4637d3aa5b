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

type ProviderRepository interface {
	// FindByID is read fresh on every authorization check, never cached,
	// so a suspension takes effect on the very next request
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Provider, error)
	FindActive(ctx context.Context, limit, offset int) ([]*entity.Provider, error)
	CountActive(ctx context.Context) (int64, error)
	Upsert(ctx context.Context, provider *entity.Provider) error
}

type providerRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewProviderRepository(db database.PgxIface, log *zap.Logger) ProviderRepository {
	return &providerRepository{
		db:  db,
		log: log.With(zap.String("repository", "provider")),
	}
}

func (r *providerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Provider, error) {
	query := `
		SELECT id, business_name, bio, service_radius_km, onboarding_completed, account_status, created_at, updated_at
		FROM providers
		WHERE id = $1
	`

	var provider entity.Provider
	err := r.db.QueryRow(ctx, query, id).Scan(
		&provider.ID,
		&provider.BusinessName,
		&provider.Bio,
		&provider.ServiceRadiusKm,
		&provider.OnboardingCompleted,
		&provider.AccountStatus,
		&provider.CreatedAt,
		&provider.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find provider by ID",
			zap.Error(err),
			zap.String("provider_id", id.String()),
		)
		return nil, fmt.Errorf("find provider by ID %s: %w", id.String(), err)
	}

	return &provider, nil
}

func (r *providerRepository) FindActive(ctx context.Context, limit, offset int) ([]*entity.Provider, error) {
	query := `
		SELECT id, business_name, bio, service_radius_km, onboarding_completed, account_status, created_at, updated_at
		FROM providers
		WHERE onboarding_completed = true AND account_status = 'active'
		ORDER BY business_name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find active providers",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find active providers: %w", err)
	}
	defer rows.Close()

	var providers []*entity.Provider
	for rows.Next() {
		var provider entity.Provider
		err := rows.Scan(
			&provider.ID,
			&provider.BusinessName,
			&provider.Bio,
			&provider.ServiceRadiusKm,
			&provider.OnboardingCompleted,
			&provider.AccountStatus,
			&provider.CreatedAt,
			&provider.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan provider row", zap.Error(err))
			return nil, fmt.Errorf("scan provider row: %w", err)
		}
		providers = append(providers, &provider)
	}

	return providers, nil
}

func (r *providerRepository) CountActive(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM providers WHERE onboarding_completed = true AND account_status = 'active'`

	var count int64
	err := r.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count active providers", zap.Error(err))
		return 0, fmt.Errorf("count active providers: %w", err)
	}

	return count, nil
}

func (r *providerRepository) Upsert(ctx context.Context, provider *entity.Provider) error {
	query := `
		INSERT INTO providers (id, business_name, bio, service_radius_km, onboarding_completed, account_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE
		SET business_name = $2, bio = $3, service_radius_km = $4, onboarding_completed = $5, updated_at = $8
	`

	_, err := r.db.Exec(ctx, query,
		provider.ID,
		provider.BusinessName,
		provider.Bio,
		provider.ServiceRadiusKm,
		provider.OnboardingCompleted,
		provider.AccountStatus,
		provider.CreatedAt,
		provider.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to upsert provider",
			zap.Error(err),
			zap.String("provider_id", provider.ID.String()),
		)
		return fmt.Errorf("upsert provider %s: %w", provider.ID.String(), err)
	}

	return nil
}
