package domain_test

import (
	"testing"
	"time"

	"github.com/k0rog/accounts/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validExpiration() time.Time {
	return time.Now().UTC().AddDate(3, 0, 0)
}

func TestNewBankCard(t *testing.T) {
	t.Parallel()

	t.Run("valid card", func(t *testing.T) {
		t.Parallel()
		card, err := domain.NewBankCard("4291111111111117", validExpiration(), "BY04SLNB0123456789")
		require.NoError(t, err)
		assert.Equal(t, "BY04SLNB0123456789", card.BankAccountIBAN)
		assert.Empty(t, card.PINHash)
		assert.Empty(t, card.CVVHash)
	})

	t.Run("missing account reference", func(t *testing.T) {
		t.Parallel()
		_, err := domain.NewBankCard("4291111111111117", validExpiration(), "")
		assert.ErrorIs(t, err, domain.ErrEmptyCardAccount)
	})

	t.Run("already expired", func(t *testing.T) {
		t.Parallel()
		_, err := domain.NewBankCard("4291111111111117", time.Now().UTC().AddDate(-1, 0, 0), "BY04SLNB0123456789")
		assert.ErrorIs(t, err, domain.ErrExpirationInPast)
	})
}

func TestBankCardWriteOnceHashes(t *testing.T) {
	t.Parallel()

	card, err := domain.NewBankCard("4291111111111117", validExpiration(), "BY04SLNB0123456789")
	require.NoError(t, err)

	require.NoError(t, card.SetPINHash("$2a$10$pin"))
	require.NoError(t, card.SetCVVHash("$2a$10$cvv"))

	// The second write must fail regardless of whether the value changed.
	assert.ErrorIs(t, card.SetPINHash("$2a$10$pin"), domain.ErrWriteOnce)
	assert.ErrorIs(t, card.SetPINHash("$2a$10$new"), domain.ErrWriteOnce)
	assert.ErrorIs(t, card.SetCVVHash("$2a$10$cvv"), domain.ErrWriteOnce)
	assert.ErrorIs(t, card.SetCVVHash("$2a$10$new"), domain.ErrWriteOnce)

	assert.Equal(t, "$2a$10$pin", card.PINHash)
	assert.Equal(t, "$2a$10$cvv", card.CVVHash)
}
