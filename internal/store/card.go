package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/k0rog/accounts/internal/domain"
)

// CardSecrets carries the plaintext PIN and CVV returned exactly once from
// card creation. The values are generated server-side, persisted only as
// hashes, and never logged or retrievable again.
type CardSecrets struct {
	PIN string
	CVV string
}

// CardStore defines the interface for bank card persistence.
type CardStore interface {
	// Create generates a unique Luhn-valid card number, generates a random
	// PIN and CVV, persists the card with only their hashes and returns the
	// plaintext secrets as the sole exposure point. Number collisions are
	// retried up to the configured ceiling (ErrRetryLimitExceeded beyond
	// it). Returns ErrAccountNotFound if accountIBAN references no account;
	// the reference is enforced by the insert itself, not a pre-check.
	Create(ctx context.Context, expirationDate time.Time, accountIBAN string) (*domain.BankCard, *CardSecrets, error)

	// GetByCardNumber retrieves a card by its number.
	// Returns ErrCardNotFound if the card does not exist.
	GetByCardNumber(ctx context.Context, number string) (*domain.BankCard, error)

	// GetAttachedTo returns every card bound to the account. An account
	// without cards yields an empty slice, not an error.
	GetAttachedTo(ctx context.Context, accountIBAN string) ([]*domain.BankCard, error)

	// Delete removes a card and reports whether a row was actually removed.
	Delete(ctx context.Context, number string) (bool, error)

	// BulkDelete removes every card in numbers, silently skipping absent
	// ones. Same asymmetry with Delete as AccountStore.BulkDelete.
	BulkDelete(ctx context.Context, numbers []string) error

	// CheckPIN verifies a plaintext PIN against the stored hash.
	// Returns ErrCardNotFound if the card does not exist.
	CheckPIN(ctx context.Context, number, pin string) (bool, error)

	// WithTx returns a CardStore bound to the provided transaction.
	WithTx(tx *sql.Tx) CardStore
}
