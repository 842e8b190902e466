package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/zasta/tokenvault/internal/database"
	apperrors "github.com/zasta/tokenvault/internal/errors"
	vaultDomain "github.com/zasta/tokenvault/internal/vault/domain"
)

// MySQLVaultRepository implements VaultRecord persistence for MySQL databases.
type MySQLVaultRepository struct {
	db *sql.DB
}

// NewMySQLVaultRepository creates a new MySQL VaultRecord repository instance.
func NewMySQLVaultRepository(db *sql.DB) *MySQLVaultRepository {
	return &MySQLVaultRepository{db: db}
}

// Create inserts a new vault record into the MySQL database.
func (m *MySQLVaultRepository) Create(ctx context.Context, record *vaultDomain.VaultRecord) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO vault_records (token, ciphertext, iv, created_at)
			  VALUES (?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		record.Token.String(),
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
// MySQL has no array parameter support, so the IN clause is expanded to one
// placeholder per token.
func (m *MySQLVaultRepository) GetBatch(
	ctx context.Context,
	tokens []uuid.UUID,
) ([]*vaultDomain.VaultRecord, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	querier := database.GetTx(ctx, m.db)

	placeholders := make([]string, len(tokens))
	args := make([]any, len(tokens))
	for i, token := range tokens {
		placeholders[i] = "?"
		args[i] = token.String()
	}

	query := `SELECT token, ciphertext, iv, created_at
			  FROM vault_records
			  WHERE token IN (` + strings.Join(placeholders, ", ") + `)`

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get vault records")
	}
	defer rows.Close()

	var records []*vaultDomain.VaultRecord
	for rows.Next() {
		var record vaultDomain.VaultRecord
		var token string
		if err := rows.Scan(
			&token,
			&record.Ciphertext,
			&record.IV,
			&record.CreatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan vault record")
		}
		record.Token, err = uuid.Parse(token)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to parse vault record token")
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate vault records")
	}

	return records, nil
}
