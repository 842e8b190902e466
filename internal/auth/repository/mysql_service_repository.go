package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/zasta/tokenvault/internal/auth/domain"
	"github.com/zasta/tokenvault/internal/database"
	apperrors "github.com/zasta/tokenvault/internal/errors"
)

// MySQLServiceRepository implements ServiceIdentity persistence for MySQL databases.
type MySQLServiceRepository struct {
	db *sql.DB
}

// NewMySQLServiceRepository creates a new MySQL ServiceIdentity repository instance.
func NewMySQLServiceRepository(db *sql.DB) *MySQLServiceRepository {
	return &MySQLServiceRepository{db: db}
}

// Create inserts a new service identity into the MySQL database.
func (m *MySQLServiceRepository) Create(ctx context.Context, identity *domain.ServiceIdentity) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO services (service_id, hashed_secret, role, created_at)
			  VALUES (?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		identity.ID,
		identity.HashedSecret,
		string(identity.Role),
		identity.CreatedAt,
	)
	if err != nil {
		// Check for duplicate entry error (MySQL error number 1062)
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return apperrors.ErrConflict
		}
		return apperrors.Wrap(err, "failed to create service")
	}
	return nil
}

// GetByID retrieves a service identity by its service ID.
func (m *MySQLServiceRepository) GetByID(
	ctx context.Context,
	serviceID string,
) (*domain.ServiceIdentity, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT service_id, hashed_secret, role, created_at
			  FROM services
			  WHERE service_id = ?
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
