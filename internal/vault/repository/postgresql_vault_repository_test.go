package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vaultDomain "github.com/zasta/tokenvault/internal/vault/domain"
)

func TestPostgreSQLVaultRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgreSQLVaultRepository(db)
	record := &vaultDomain.VaultRecord{
		Token:      uuid.New(),
		Ciphertext: []byte("ciphertext"),
		IV:         []byte("0123456789abcdef"),
		CreatedAt:  time.Now().UTC(),
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO vault_records`).
			WithArgs(record.Token, record.Ciphertext, record.IV, record.CreatedAt).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.Create(context.Background(), record)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DatabaseError", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO vault_records`).
			WillReturnError(assert.AnError)

		err := repo.Create(context.Background(), record)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create vault record")
	})
}

func TestPostgreSQLVaultRepository_GetBatch(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgreSQLVaultRepository(db)
	token1 := uuid.New()
	token2 := uuid.New()
	createdAt := time.Now().UTC()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"token", "ciphertext", "iv", "created_at"}).
			AddRow(token1, []byte("ct1"), []byte("iv1"), createdAt).
			AddRow(token2, []byte("ct2"), []byte("iv2"), createdAt)

		mock.ExpectQuery(`SELECT token, ciphertext, iv, created_at`).
			WillReturnRows(rows)

		records, err := repo.GetBatch(context.Background(), []uuid.UUID{token1, token2})
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, token1, records[0].Token)
		assert.Equal(t, []byte("ct1"), records[0].Ciphertext)
		assert.Equal(t, token2, records[1].Token)
	})

	t.Run("PartialMatch", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"token", "ciphertext", "iv", "created_at"}).
			AddRow(token1, []byte("ct1"), []byte("iv1"), createdAt)

		mock.ExpectQuery(`SELECT token, ciphertext, iv, created_at`).
			WillReturnRows(rows)

		records, err := repo.GetBatch(context.Background(), []uuid.UUID{token1, token2})
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("NoMatches", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"token", "ciphertext", "iv", "created_at"})

		mock.ExpectQuery(`SELECT token, ciphertext, iv, created_at`).
			WillReturnRows(rows)

		records, err := repo.GetBatch(context.Background(), []uuid.UUID{token1})
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("DatabaseError", func(t *testing.T) {
		mock.ExpectQuery(`SELECT token, ciphertext, iv, created_at`).
			WillReturnError(assert.AnError)

		_, err := repo.GetBatch(context.Background(), []uuid.UUID{token1})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get vault records")
	})
}
