package postgres_test

import (
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"users-api/internal/domain/entity"
	"users-api/internal/domain/repository"
	pg "users-api/internal/infrastructure/postgres"
)

var userColumns = []string{"id", "name", "email", "password_hash", "birth_date", "cpf", "created_at", "updated_at"}

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, *pg.UserRepository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, pg.NewUserRepository(mock)
}

func TestUserRepositoryCreate(t *testing.T) {
	t.Run("success fills generated fields", func(t *testing.T) {
		mock, r := newMockRepo(t)
		now := time.Now()
		mock.ExpectQuery("INSERT INTO users").
			WithArgs("Alice", "alice@example.com", "hash", "1990-01-01", int64(12345678901)).
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow("user-123", now, now))

		u := &entity.User{Name: "Alice", Email: "alice@example.com", PasswordHash: "hash", BirthDate: "1990-01-01", CPF: 12345678901}
		require.NoError(t, r.Create(u))
		assert.Equal(t, "user-123", u.ID)
		assert.Equal(t, now, u.CreatedAt)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation maps to ErrDuplicateEmail", func(t *testing.T) {
		mock, r := newMockRepo(t)
		mock.ExpectQuery("INSERT INTO users").
			WithArgs("Alice", "alice@example.com", "hash", "1990-01-01", int64(12345678901)).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

		u := &entity.User{Name: "Alice", Email: "alice@example.com", PasswordHash: "hash", BirthDate: "1990-01-01", CPF: 12345678901}
		err := r.Create(u)
		assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
	})

	t.Run("other database errors pass through", func(t *testing.T) {
		mock, r := newMockRepo(t)
		mock.ExpectQuery("INSERT INTO users").
			WithArgs("Alice", "alice@example.com", "hash", "1990-01-01", int64(12345678901)).
			WillReturnError(errors.New("db down"))

		u := &entity.User{Name: "Alice", Email: "alice@example.com", PasswordHash: "hash", BirthDate: "1990-01-01", CPF: 12345678901}
		err := r.Create(u)
		require.Error(t, err)
		assert.NotErrorIs(t, err, repository.ErrDuplicateEmail)
	})
}

func TestUserRepositoryGetByEmail(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mock, r := newMockRepo(t)
		now := time.Now()
		mock.ExpectQuery("SELECT id, name, email").
			WithArgs("alice@example.com").
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow("user-123", "Alice", "alice@example.com", "hash", "1990-01-01", int64(12345678901), now, now))

		u, err := r.GetByEmail("alice@example.com")
		require.NoError(t, err)
		require.NotNil(t, u)
		assert.Equal(t, "user-123", u.ID)
		assert.Equal(t, int64(12345678901), u.CPF)
	})

	t.Run("no rows is nil, nil", func(t *testing.T) {
		mock, r := newMockRepo(t)
		mock.ExpectQuery("SELECT id, name, email").
			WithArgs("nobody@example.com").
			WillReturnRows(pgxmock.NewRows(userColumns))

		u, err := r.GetByEmail("nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, u)
	})

	t.Run("database error propagates", func(t *testing.T) {
		mock, r := newMockRepo(t)
		mock.ExpectQuery("SELECT id, name, email").
			WithArgs("alice@example.com").
			WillReturnError(errors.New("db down"))

		_, err := r.GetByEmail("alice@example.com")
		assert.Error(t, err)
	})
}

func TestUserRepositoryGetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mock, r := newMockRepo(t)
		now := time.Now()
		mock.ExpectQuery("SELECT id, name, email").
			WithArgs("user-123").
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow("user-123", "Alice", "alice@example.com", "hash", "1990-01-01", int64(12345678901), now, now))

		u, err := r.GetByID("user-123")
		require.NoError(t, err)
		require.NotNil(t, u)
		assert.Equal(t, "Alice", u.Name)
	})

	t.Run("no rows is nil, nil", func(t *testing.T) {
		mock, r := newMockRepo(t)
		mock.ExpectQuery("SELECT id, name, email").
			WithArgs("missing").
			WillReturnRows(pgxmock.NewRows(userColumns))

		u, err := r.GetByID("missing")
		require.NoError(t, err)
		assert.Nil(t, u)
	})
}

func TestUserRepositoryCount(t *testing.T) {
	mock, r := newMockRepo(t)
	mock.ExpectQuery(`SELECT count\(\*\) FROM users`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(42))

	n, err := r.Count()
	require.NoError(t, err)
	assert.Equal(t, 42, n)
}

func TestUserRepositoryList(t *testing.T) {
	t.Run("returns rows in order", func(t *testing.T) {
		mock, r := newMockRepo(t)
		now := time.Now()
		mock.ExpectQuery("SELECT id, name, email").
			WithArgs(2, 0).
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow("user-1", "Alice", "alice@example.com", "hash", "1990-01-01", int64(1), now, now).
				AddRow("user-2", "Bob", "bob@example.com", "hash", "1991-02-02", int64(2), now, now))

		users, err := r.List(2, 0)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "Alice", users[0].Name)
		assert.Equal(t, "Bob", users[1].Name)
	})

	t.Run("empty page", func(t *testing.T) {
		mock, r := newMockRepo(t)
		mock.ExpectQuery("SELECT id, name, email").
			WithArgs(10, 100).
			WillReturnRows(pgxmock.NewRows(userColumns))

		users, err := r.List(10, 100)
		require.NoError(t, err)
		assert.Empty(t, users)
	})
}
