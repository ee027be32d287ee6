package postgres

import (
	"context"
	"io"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-user-accounts/internal/domain/entity"
	"github.com/oksasatya/go-user-accounts/internal/domain/repository"
)

// setupTestPool connects to TEST_DATABASE_URL, migrates and truncates the schema.
// Tests are skipped when no database is configured.
func setupTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping postgres integration tests")
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	require.NoError(t, RunMigrations(dsn, "../../../db/migrations", logger))

	ctx := context.Background()
	pool, err := NewPool(ctx, dsn, 4, 1, time.Minute)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `TRUNCATE email_codes, users`)
	require.NoError(t, err)
	return pool
}

func newTestUser(email string) *entity.User {
	return &entity.User{
		ID:        uuid.NewString(),
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     email,
		Password:  "$2a$10$hash",
		Country:   "UK",
	}
}

func TestUserRepository_CRUD(t *testing.T) {
	pool := setupTestPool(t)
	repo := NewUserRepository(pool)
	ctx := context.Background()

	u := newTestUser("ada@example.com")
	require.NoError(t, repo.Create(ctx, u))
	assert.False(t, u.CreatedAt.IsZero())

	t.Run("duplicate email", func(t *testing.T) {
		err := repo.Create(ctx, newTestUser("ada@example.com"))
		assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
	})

	t.Run("lookups", func(t *testing.T) {
		byID, err := repo.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, u.Email, byID.Email)

		byEmail, err := repo.GetByEmail(ctx, "ada@example.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, byEmail.ID)

		_, err = repo.GetByID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, repository.ErrNotFound)

		_, err = repo.GetByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, repository.ErrNotFound)

		all, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("profile update keeps untouched fields", func(t *testing.T) {
		country := "FR"
		got, err := repo.UpdateProfile(ctx, u.ID, entity.ProfileUpdate{Country: &country})
		require.NoError(t, err)
		assert.Equal(t, "FR", got.Country)
		assert.Equal(t, "Ada", got.FirstName)

		_, err = repo.UpdateProfile(ctx, uuid.NewString(), entity.ProfileUpdate{Country: &country})
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("verify and password", func(t *testing.T) {
		got, err := repo.SetVerified(ctx, u.ID)
		require.NoError(t, err)
		assert.True(t, got.IsVerified)

		got, err = repo.UpdatePassword(ctx, u.ID, "$2a$10$other")
		require.NoError(t, err)
		assert.Equal(t, "$2a$10$other", got.Password)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, u.ID))
		require.NoError(t, repo.Delete(ctx, u.ID))
		require.NoError(t, repo.Delete(ctx, "not-a-uuid"))

		_, err := repo.GetByID(ctx, u.ID)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestEmailCodeRepository(t *testing.T) {
	pool := setupTestPool(t)
	users := NewUserRepository(pool)
	codes := NewEmailCodeRepository(pool)
	ctx := context.Background()

	u := newTestUser("grace@example.com")
	require.NoError(t, users.Create(ctx, u))

	c := &entity.EmailCode{ID: uuid.NewString(), Code: "abc123", UserID: u.ID}
	require.NoError(t, codes.Create(ctx, c))

	got, err := codes.GetByCode(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.UserID)

	require.NoError(t, codes.Delete(ctx, c.ID))
	_, err = codes.GetByCode(ctx, "abc123")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	t.Run("codes go away with their user", func(t *testing.T) {
		c2 := &entity.EmailCode{ID: uuid.NewString(), Code: "def456", UserID: u.ID}
		require.NoError(t, codes.Create(ctx, c2))
		require.NoError(t, users.Delete(ctx, u.ID))

		_, err := codes.GetByCode(ctx, "def456")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}
