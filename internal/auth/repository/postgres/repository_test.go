package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ylandolsi/ExpenseTrackerApi/internal/auth/domain"
	repo "github.com/Ylandolsi/ExpenseTrackerApi/internal/auth/repository/postgres"
)

var userColumns = []string{"id", "name", "email", "phone_number", "password_hash", "created_at", "updated_at"}

// TestGetByEmailOrPhone covers the credential lookup used by login.
func TestGetByEmailOrPhone(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewUserRepository(mock)
	ctx := context.Background()

	t.Run("found by email", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name, email").
			WithArgs("test@example.com", "").
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow(int64(42), "tester", "test@example.com", "21111111", "hash", time.Now(), time.Now()))

		user, err := r.GetByEmailOrPhone(ctx, "test@example.com", "")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, int64(42), user.ID)
	})

	t.Run("found by phone", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name, email").
			WithArgs("", "21111111").
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow(int64(42), "tester", "test@example.com", "21111111", "hash", time.Now(), time.Now()))

		user, err := r.GetByEmailOrPhone(ctx, "", "21111111")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "21111111", user.PhoneNumber)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name, email").
			WithArgs("absent@example.com", "").
			WillReturnError(pgx.ErrNoRows)

		user, err := r.GetByEmailOrPhone(ctx, "absent@example.com", "")
		require.NoError(t, err) // Should return nil user, nil error
		assert.Nil(t, user)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name, email").
			WithArgs("test@example.com", "").
			WillReturnError(fmt.Errorf("db error"))

		_, err := r.GetByEmailOrPhone(ctx, "test@example.com", "")
		assert.Error(t, err)
	})
}

// TestGetByID covers the re-fetch performed on refresh.
func TestGetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewUserRepository(mock)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name, email").
			WithArgs(int64(42)).
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow(int64(42), "tester", "test@example.com", "21111111", "hash", time.Now(), time.Now()))

		user, err := r.GetByID(ctx, 42)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "tester", user.Name)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name, email").
			WithArgs(int64(99)).
			WillReturnError(pgx.ErrNoRows)

		user, err := r.GetByID(ctx, 99)
		require.NoError(t, err)
		assert.Nil(t, user)
	})
}

// TestCreateUser covers the Create repository method.
func TestCreateUser(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewUserRepository(mock)
	ctx := context.Background()

	userToCreate := &domain.User{
		Name:         "tester",
		Email:        "new@example.com",
		PhoneNumber:  "21111111",
		PasswordHash: "new-hash",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WithArgs(userToCreate.Name, userToCreate.Email, userToCreate.PhoneNumber,
				userToCreate.PasswordHash, userToCreate.CreatedAt, userToCreate.UpdatedAt).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))

		err := r.Create(ctx, userToCreate)
		require.NoError(t, err)
		assert.Equal(t, int64(7), userToCreate.ID)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WithArgs(userToCreate.Name, userToCreate.Email, userToCreate.PhoneNumber,
				userToCreate.PasswordHash, userToCreate.CreatedAt, userToCreate.UpdatedAt).
			WillReturnError(fmt.Errorf("db error"))

		err := r.Create(ctx, userToCreate)
		assert.Error(t, err)
	})
}
