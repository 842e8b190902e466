// Package repository implements persistence for registered service identities.
// Repositories support both PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/zasta/tokenvault/internal/auth/domain"
	"github.com/zasta/tokenvault/internal/database"
	apperrors "github.com/zasta/tokenvault/internal/errors"
)

// PostgreSQLServiceRepository implements ServiceIdentity persistence for PostgreSQL databases.
type PostgreSQLServiceRepository struct {
	db *sql.DB
}

// NewPostgreSQLServiceRepository creates a new PostgreSQL ServiceIdentity repository instance.
func NewPostgreSQLServiceRepository(db *sql.DB) *PostgreSQLServiceRepository {
	return &PostgreSQLServiceRepository{db: db}
}

// Create inserts a new service identity into the PostgreSQL database.
func (p *PostgreSQLServiceRepository) Create(ctx context.Context, identity *domain.ServiceIdentity) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO services (service_id, hashed_secret, role, created_at)
			  VALUES ($1, $2, $3, $4)`

	_, err := querier.ExecContext(
		ctx,
		query,
		identity.ID,
		identity.HashedSecret,
		string(identity.Role),
		identity.CreatedAt,
	)
	if err != nil {
		// Check for unique constraint violation (duplicate service_id)
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return apperrors.ErrConflict
		}
		return apperrors.Wrap(err, "failed to create service")
	}
	return nil
}

// GetByID retrieves a service identity by its service ID.
func (p *PostgreSQLServiceRepository) GetByID(
	ctx context.Context,
	serviceID string,
) (*domain.ServiceIdentity, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT service_id, hashed_secret, role, created_at
			  FROM services
			  WHERE service_id = $1
			  LIMIT 1`

	var identity domain.ServiceIdentity
	err := querier.QueryRowContext(ctx, query, serviceID).Scan(
		&identity.ID,
		&identity.HashedSecret,
		&identity.Role,
		&identity.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrServiceNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get service")
	}

	return &identity, nil
}
