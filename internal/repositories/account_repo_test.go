package repositories

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/triciahf/devops-capstone-project/internal/database"
	"github.com/triciahf/devops-capstone-project/internal/models"
)

// getTestPool connects to the database named by TEST_DATABASE_URL,
// applies migrations and truncates the accounts table. Tests are
// skipped when the variable is unset.
func getTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	databaseURL := os.Getenv("TEST_DATABASE_URL")
	if databaseURL == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database tests")
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, databaseURL)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, database.RunMigrations(databaseURL))

	_, err = pool.Exec(ctx, "TRUNCATE accounts RESTART IDENTITY")
	require.NoError(t, err)

	return pool
}

func newTestAccount() *models.Account {
	return &models.Account{
		Name:        "John Doe",
		Email:       "john@example.com",
		Address:     "1 Main Street",
		PhoneNumber: "555-0100",
	}
}

func TestAccountRepository_Create(t *testing.T) {
	pool := getTestPool(t)
	repo := NewPostgresAccountRepository(pool)
	ctx := context.Background()

	account := newTestAccount()
	err := repo.Create(ctx, account)

	require.NoError(t, err)
	assert.NotZero(t, account.ID, "id should be assigned")
	assert.Equal(t, models.Today().String(), account.DateJoined.String(),
		"date_joined should default to today")
}

func TestAccountRepository_Create_ExplicitDateJoined(t *testing.T) {
	pool := getTestPool(t)
	repo := NewPostgresAccountRepository(pool)
	ctx := context.Background()

	account := newTestAccount()
	account.DateJoined = models.DateOf(time.Date(2020, time.January, 15, 0, 0, 0, 0, time.UTC))
	err := repo.Create(ctx, account)

	require.NoError(t, err)
	assert.Equal(t, "2020-01-15", account.DateJoined.String())
}

func TestAccountRepository_GetByID(t *testing.T) {
	pool := getTestPool(t)
	repo := NewPostgresAccountRepository(pool)
	ctx := context.Background()

	account := newTestAccount()
	require.NoError(t, repo.Create(ctx, account))

	found, err := repo.GetByID(ctx, account.ID)

	require.NoError(t, err)
	assert.Equal(t, account.ID, found.ID)
	assert.Equal(t, account.Name, found.Name)
	assert.Equal(t, account.Email, found.Email)
	assert.Equal(t, account.Address, found.Address)
	assert.Equal(t, account.PhoneNumber, found.PhoneNumber)
	assert.Equal(t, account.DateJoined.String(), found.DateJoined.String())
}

func TestAccountRepository_GetByID_NotFound(t *testing.T) {
	pool := getTestPool(t)
	repo := NewPostgresAccountRepository(pool)

	_, err := repo.GetByID(context.Background(), 100)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAccountRepository_List(t *testing.T) {
	pool := getTestPool(t)
	repo := NewPostgresAccountRepository(pool)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, newTestAccount()))
	}

	accounts, err := repo.List(ctx)

	require.NoError(t, err)
	assert.Len(t, accounts, 3)
}

func TestAccountRepository_List_Empty(t *testing.T) {
	pool := getTestPool(t)
	repo := NewPostgresAccountRepository(pool)

	accounts, err := repo.List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, accounts, "empty list should not be nil")
	assert.Empty(t, accounts)
}

func TestAccountRepository_Update(t *testing.T) {
	pool := getTestPool(t)
	repo := NewPostgresAccountRepository(pool)
	ctx := context.Background()

	account := newTestAccount()
	require.NoError(t, repo.Create(ctx, account))

	account.Name = "Jane Doe"
	account.Address = "2 New Street"
	require.NoError(t, repo.Update(ctx, account))

	found, err := repo.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", found.Name)
	assert.Equal(t, "2 New Street", found.Address)
}

func TestAccountRepository_Update_NotFound(t *testing.T) {
	pool := getTestPool(t)
	repo := NewPostgresAccountRepository(pool)

	missing := newTestAccount()
	missing.ID = 100
	missing.DateJoined = models.Today()

	err := repo.Update(context.Background(), missing)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAccountRepository_Delete(t *testing.T) {
	pool := getTestPool(t)
	repo := NewPostgresAccountRepository(pool)
	ctx := context.Background()

	account := newTestAccount()
	require.NoError(t, repo.Create(ctx, account))

	require.NoError(t, repo.Delete(ctx, account.ID))

	_, err := repo.GetByID(ctx, account.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAccountRepository_Delete_Idempotent(t *testing.T) {
	pool := getTestPool(t)
	repo := NewPostgresAccountRepository(pool)

	// Deleting an id that was never created is a no-op success
	assert.NoError(t, repo.Delete(context.Background(), 100))
}
