package postgres_test

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/k0rog/accounts/internal/domain"
	"github.com/k0rog/accounts/internal/platform/postgres"
	"github.com/k0rog/accounts/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPostgresAccountStore_Create(t *testing.T) {
	t.Parallel()
	db := requireTestDB(t)
	customerStore := postgres.NewPostgresCustomerStore(db, bcrypt.MinCost, nil)
	accountStore := postgres.NewPostgresAccountStore(db, newTestGenerator(), testBankConfig, nil)
	ctx := context.Background()

	owner := mustCreateCustomer(t, customerStore)

	account, err := accountStore.Create(ctx, "byn", 25.5, owner.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.CurrencyBYN, account.Currency)
	assert.Equal(t, 25.5, account.Balance)
	assert.True(t, strings.HasPrefix(account.IBAN, "BY"))
	expectedLen := len("BY") + 2 + len("SLNB") + testBankConfig.IBANBBANLength
	assert.Len(t, account.IBAN, expectedLen)

	retrieved, err := accountStore.GetByIBAN(ctx, account.IBAN)
	require.NoError(t, err)
	assert.Equal(t, account.Currency, retrieved.Currency)
	assert.Equal(t, account.Balance, retrieved.Balance)

	owned, err := accountStore.GetOwnedBy(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, account.IBAN, owned[0].IBAN)
}

func TestPostgresAccountStore_CreateUnknownCurrency(t *testing.T) {
	t.Parallel()
	db := requireTestDB(t)
	customerStore := postgres.NewPostgresCustomerStore(db, bcrypt.MinCost, nil)
	accountStore := postgres.NewPostgresAccountStore(db, newTestGenerator(), testBankConfig, nil)
	ctx := context.Background()

	owner := mustCreateCustomer(t, customerStore)

	_, err := accountStore.Create(ctx, "GBP", 0, owner.ID)
	assert.ErrorIs(t, err, domain.ErrUnknownCurrency)

	owned, err := accountStore.GetOwnedBy(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, owned, "no account row should remain after a rejected currency")
}

func TestPostgresAccountStore_CreateUnknownOwner(t *testing.T) {
	t.Parallel()
	db := requireTestDB(t)
	accountStore := postgres.NewPostgresAccountStore(db, newTestGenerator(), testBankConfig, nil)

	_, err := accountStore.Create(context.Background(), "USD", 0, uuid.New())
	assert.ErrorIs(t, err, store.ErrCustomerNotFound)
}

// Runs without a database: with a zero retry budget the insert loop never
// executes and the ceiling error surfaces immediately.
func TestPostgresAccountStore_CreateRetryCeiling(t *testing.T) {
	t.Parallel()
	db, err := sql.Open("pgx", "postgres://localhost:5432/unused")
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	cfg := testBankConfig
	cfg.MaxGenerationRetries = 0
	accountStore := postgres.NewPostgresAccountStore(db, newTestGenerator(), cfg, nil)

	_, err = accountStore.Create(context.Background(), "USD", 0, uuid.New())
	assert.ErrorIs(t, err, store.ErrRetryLimitExceeded)
}

func TestPostgresAccountStore_GetByIBANNotFound(t *testing.T) {
	t.Parallel()
	db := requireTestDB(t)
	accountStore := postgres.NewPostgresAccountStore(db, newTestGenerator(), testBankConfig, nil)

	_, err := accountStore.GetByIBAN(context.Background(), "BY00SLNB0000000000")
	assert.ErrorIs(t, err, store.ErrAccountNotFound)
}

func TestPostgresAccountStore_UpdateBalanceByAmount(t *testing.T) {
	t.Parallel()
	db := requireTestDB(t)
	customerStore := postgres.NewPostgresCustomerStore(db, bcrypt.MinCost, nil)
	accountStore := postgres.NewPostgresAccountStore(db, newTestGenerator(), testBankConfig, nil)
	ctx := context.Background()

	owner := mustCreateCustomer(t, customerStore)
	account, err := accountStore.Create(ctx, "USD", 100, owner.ID)
	require.NoError(t, err)

	require.NoError(t, accountStore.UpdateBalanceByAmount(ctx, account.IBAN, 50))
	require.NoError(t, accountStore.UpdateBalanceByAmount(ctx, account.IBAN, -50))

	retrieved, err := accountStore.GetByIBAN(ctx, account.IBAN)
	require.NoError(t, err)
	assert.Equal(t, 100.0, retrieved.Balance, "opposite deltas should cancel out")

	require.NoError(t, accountStore.UpdateBalanceByAmount(ctx, account.IBAN, -150))
	retrieved, err = accountStore.GetByIBAN(ctx, account.IBAN)
	require.NoError(t, err)
	assert.Equal(t, -50.0, retrieved.Balance, "balance may go negative")

	err = accountStore.UpdateBalanceByAmount(ctx, "BY00SLNB0000000000", 10)
	assert.ErrorIs(t, err, store.ErrAccountNotFound)
}

func TestPostgresAccountStore_AssignTo(t *testing.T) {
	t.Parallel()
	db := requireTestDB(t)
	customerStore := postgres.NewPostgresCustomerStore(db, bcrypt.MinCost, nil)
	accountStore := postgres.NewPostgresAccountStore(db, newTestGenerator(), testBankConfig, nil)
	ctx := context.Background()

	owner := mustCreateCustomer(t, customerStore)
	coOwner := mustCreateCustomer(t, customerStore)
	account, err := accountStore.Create(ctx, "EUR", 0, owner.ID)
	require.NoError(t, err)

	t.Run("second owner shares the account", func(t *testing.T) {
		require.NoError(t, accountStore.AssignTo(ctx, account.IBAN, coOwner.ID))

		owned, err := accountStore.GetOwnedBy(ctx, coOwner.ID)
		require.NoError(t, err)
		require.Len(t, owned, 1)
		assert.Equal(t, account.IBAN, owned[0].IBAN)
	})

	t.Run("duplicate assignment", func(t *testing.T) {
		err := accountStore.AssignTo(ctx, account.IBAN, coOwner.ID)
		assert.ErrorIs(t, err, store.ErrOwnershipExists)
	})

	t.Run("unknown account", func(t *testing.T) {
		err := accountStore.AssignTo(ctx, "BY00SLNB0000000000", owner.ID)
		assert.ErrorIs(t, err, store.ErrAccountNotFound)
	})

	t.Run("unknown customer", func(t *testing.T) {
		err := accountStore.AssignTo(ctx, account.IBAN, uuid.New())
		assert.ErrorIs(t, err, store.ErrCustomerNotFound)
	})
}

func TestPostgresAccountStore_Delete(t *testing.T) {
	t.Parallel()
	db := requireTestDB(t)
	customerStore := postgres.NewPostgresCustomerStore(db, bcrypt.MinCost, nil)
	accountStore := postgres.NewPostgresAccountStore(db, newTestGenerator(), testBankConfig, nil)
	ctx := context.Background()

	owner := mustCreateCustomer(t, customerStore)
	account, err := accountStore.Create(ctx, "USD", 0, owner.ID)
	require.NoError(t, err)

	require.NoError(t, accountStore.Delete(ctx, account.IBAN))

	_, err = accountStore.GetByIBAN(ctx, account.IBAN)
	assert.ErrorIs(t, err, store.ErrAccountNotFound)

	owned, err := accountStore.GetOwnedBy(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, owned, "ownership rows should cascade with the account")

	err = accountStore.Delete(ctx, account.IBAN)
	assert.ErrorIs(t, err, store.ErrAccountNotFound)
}

func TestPostgresAccountStore_BulkDelete(t *testing.T) {
	t.Parallel()
	db := requireTestDB(t)
	customerStore := postgres.NewPostgresCustomerStore(db, bcrypt.MinCost, nil)
	accountStore := postgres.NewPostgresAccountStore(db, newTestGenerator(), testBankConfig, nil)
	ctx := context.Background()

	owner := mustCreateCustomer(t, customerStore)
	first, err := accountStore.Create(ctx, "USD", 0, owner.ID)
	require.NoError(t, err)
	second, err := accountStore.Create(ctx, "EUR", 0, owner.ID)
	require.NoError(t, err)

	// Unknown IBANs in the batch are ignored, matching the bulk contract.
	err = accountStore.BulkDelete(ctx, []string{first.IBAN, second.IBAN, "BY00SLNB0000000000"})
	require.NoError(t, err)

	owned, err := accountStore.GetOwnedBy(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, owned)

	assert.NoError(t, accountStore.BulkDelete(ctx, nil))
}
