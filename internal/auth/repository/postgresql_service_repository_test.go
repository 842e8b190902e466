package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zasta/tokenvault/internal/auth/domain"
	apperrors "github.com/zasta/tokenvault/internal/errors"
)

func TestPostgreSQLServiceRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgreSQLServiceRepository(db)
	identity := &domain.ServiceIdentity{
		ID:           "service1",
		HashedSecret: "$argon2id$...",
		Role:         domain.TokenizerRole,
		CreatedAt:    time.Now().UTC(),
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO services`).
			WithArgs(identity.ID, identity.HashedSecret, string(identity.Role), identity.CreatedAt).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.Create(context.Background(), identity)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DuplicateServiceID", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO services`).
			WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

		err := repo.Create(context.Background(), identity)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("DatabaseError", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO services`).
			WillReturnError(assert.AnError)

		err := repo.Create(context.Background(), identity)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, apperrors.ErrConflict)
		assert.Contains(t, err.Error(), "failed to create service")
	})
}

func TestPostgreSQLServiceRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgreSQLServiceRepository(db)
	createdAt := time.Now().UTC()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"service_id", "hashed_secret", "role", "created_at"}).
			AddRow("service1", "$argon2id$...", "DETOKENIZER", createdAt)

		mock.ExpectQuery(`SELECT service_id, hashed_secret, role, created_at`).
			WithArgs("service1").
			WillReturnRows(rows)

		identity, err := repo.GetByID(context.Background(), "service1")
		require.NoError(t, err)
		assert.Equal(t, "service1", identity.ID)
		assert.Equal(t, domain.DetokenizerRole, identity.Role)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT service_id, hashed_secret, role, created_at`).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"service_id", "hashed_secret", "role", "created_at"}))

		_, err := repo.GetByID(context.Background(), "missing")
		assert.ErrorIs(t, err, domain.ErrServiceNotFound)
	})

	t.Run("DatabaseError", func(t *testing.T) {
		mock.ExpectQuery(`SELECT service_id, hashed_secret, role, created_at`).
			WillReturnError(assert.AnError)

		_, err := repo.GetByID(context.Background(), "service1")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrServiceNotFound)
	})
}
