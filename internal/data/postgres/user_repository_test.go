package postgres

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/splitshare-service/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &UserRepository{querier: mock, logger: logger}

	u := &user.User{
		ID:           uuid.New(),
		Name:         "Test User",
		Email:        "test@example.com",
		PasswordHash: "$2a$10$hash",
		CreatedAt:    time.Now(),
	}

	query := `
		INSERT INTO users \(id, name, email, password_hash, created_at\)
		VALUES \(\$1, \$2, \$3, \$4, \$5\)
	`

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(u.ID, u.Name, u.Email, u.PasswordHash, u.CreatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := repo.Create(ctx, u)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(u.ID, u.Name, u.Email, u.PasswordHash, u.CreatedAt).
			WillReturnError(&pgconn.PgError{Code: uniqueViolationCode})

		err := repo.Create(ctx, u)
		assert.Error(t, err)
		var dupErr user.ErrDuplicateEmail
		assert.ErrorAs(t, err, &dupErr)
		assert.Equal(t, u.Email, dupErr.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure", func(t *testing.T) {
		expectedErr := errors.New("db error")
		mock.ExpectExec(query).
			WithArgs(u.ID, u.Name, u.Email, u.PasswordHash, u.CreatedAt).
			WillReturnError(expectedErr)

		err := repo.Create(ctx, u)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create user")
		assert.ErrorIs(t, err, expectedErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &UserRepository{querier: mock, logger: logger}
	userID := uuid.New()
	now := time.Now()

	expectedUser := &user.User{
		ID:           userID,
		Name:         "Test User",
		Email:        "test@example.com",
		PasswordHash: "$2a$10$hash",
		CreatedAt:    now,
	}

	query := `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE id = \$1
	`

	t.Run("success", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at"}).
			AddRow(expectedUser.ID, expectedUser.Name, expectedUser.Email, expectedUser.PasswordHash, expectedUser.CreatedAt)
		mock.ExpectQuery(query).WithArgs(userID).WillReturnRows(rows)

		u, err := repo.GetByID(ctx, userID)
		assert.NoError(t, err)
		assert.Equal(t, expectedUser, u)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(userID).WillReturnError(pgx.ErrNoRows)

		u, err := repo.GetByID(ctx, userID)
		assert.Error(t, err)
		assert.Nil(t, u)
		var notFoundErr user.ErrUserNotFound
		assert.ErrorAs(t, err, &notFoundErr)
		assert.Equal(t, userID, notFoundErr.UserID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &UserRepository{querier: mock, logger: logger}
	now := time.Now()

	expectedUser := &user.User{
		ID:           uuid.New(),
		Name:         "Test User",
		Email:        "test@example.com",
		PasswordHash: "$2a$10$hash",
		CreatedAt:    now,
	}

	query := `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE email = \$1
	`

	t.Run("success", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at"}).
			AddRow(expectedUser.ID, expectedUser.Name, expectedUser.Email, expectedUser.PasswordHash, expectedUser.CreatedAt)
		mock.ExpectQuery(query).WithArgs(expectedUser.Email).WillReturnRows(rows)

		u, err := repo.GetByEmail(ctx, expectedUser.Email)
		assert.NoError(t, err)
		assert.Equal(t, expectedUser, u)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent email returns nil, nil", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs("missing@example.com").WillReturnError(pgx.ErrNoRows)

		u, err := repo.GetByEmail(ctx, "missing@example.com")
		assert.NoError(t, err)
		assert.Nil(t, u)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
