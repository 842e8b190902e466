// Package repository implements persistence for vault records.
// Repositories support both PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/zasta/tokenvault/internal/database"
	apperrors "github.com/zasta/tokenvault/internal/errors"
	vaultDomain "github.com/zasta/tokenvault/internal/vault/domain"
)

// PostgreSQLVaultRepository implements VaultRecord persistence for PostgreSQL databases.
type PostgreSQLVaultRepository struct {
	db *sql.DB
}

// NewPostgreSQLVaultRepository creates a new PostgreSQL VaultRecord repository instance.
func NewPostgreSQLVaultRepository(db *sql.DB) *PostgreSQLVaultRepository {
	return &PostgreSQLVaultRepository{db: db}
}

// Create inserts a new vault record into the PostgreSQL database.
func (p *PostgreSQLVaultRepository) Create(ctx context.Context, record *vaultDomain.VaultRecord) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO vault_records (token, ciphertext, iv, created_at)
			  VALUES ($1, $2, $3, $4)`

	_, err := querier.ExecContext(
		ctx,
		query,
		record.Token,
		record.Ciphertext,
		record.IV,
		record.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create vault record")
	}
	return nil
}

// GetBatch retrieves all vault records matching the given tokens in one query.
// Tokens with no record are simply absent from the result; no error is returned
// for partial matches.
func (p *PostgreSQLVaultRepository) GetBatch(
	ctx context.Context,
	tokens []uuid.UUID,
) ([]*vaultDomain.VaultRecord, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT token, ciphertext, iv, created_at
			  FROM vault_records
			  WHERE token = ANY($1)`

	rows, err := querier.QueryContext(ctx, query, pq.Array(tokens))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get vault records")
	}
	defer rows.Close()

	var records []*vaultDomain.VaultRecord
	for rows.Next() {
		var record vaultDomain.VaultRecord
		if err := rows.Scan(
			&record.Token,
			&record.Ciphertext,
			&record.IV,
			&record.CreatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan vault record")
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate vault records")
	}

	return records, nil
}
