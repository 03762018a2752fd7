package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/k0rog/accounts/internal/domain"
)

// AccountStore defines the interface for bank account persistence, including
// the ownership relation joining customers to accounts.
type AccountStore interface {
	// Create generates a unique IBAN, persists the account and binds it to
	// ownerID in one atomic step: either both rows exist afterwards or
	// neither does. IBAN collisions are retried internally up to the
	// configured ceiling, after which ErrRetryLimitExceeded surfaces.
	// Returns domain.ErrUnknownCurrency for a currency outside the
	// allow-list and ErrCustomerNotFound if ownerID references nobody.
	Create(ctx context.Context, currency string, balance float64, ownerID uuid.UUID) (*domain.BankAccount, error)

	// GetByIBAN retrieves an account by its IBAN.
	// Returns ErrAccountNotFound if the account does not exist.
	GetByIBAN(ctx context.Context, iban string) (*domain.BankAccount, error)

	// GetOwnedBy returns every account owned by the customer. An owner
	// without accounts yields an empty slice, not an error.
	GetOwnedBy(ctx context.Context, ownerID uuid.UUID) ([]*domain.BankAccount, error)

	// Delete removes the account. Attached cards and ownership rows cascade
	// in the database. Returns ErrAccountNotFound if the IBAN does not
	// exist: the delete reports its row count, so absence is detected
	// without a separate pre-check.
	Delete(ctx context.Context, iban string) error

	// BulkDelete removes every account in ibans. Missing IBANs are silently
	// skipped; cascades internally use this where "already gone" is not
	// exceptional.
	BulkDelete(ctx context.Context, ibans []string) error

	// UpdateBalanceByAmount atomically adds the signed amount to the stored
	// balance as a single update expression, never read-modify-write, so
	// concurrent applications cannot lose updates. No lower bound is
	// enforced. Returns ErrAccountNotFound if the IBAN does not exist.
	UpdateBalanceByAmount(ctx context.Context, iban string, amount float64) error

	// AssignTo inserts an ownership row binding the account to ownerID.
	// Constraint violations are dispatched by subtype, not pre-checked:
	// a foreign-key violation on the account yields ErrAccountNotFound, a
	// unique violation on the pair yields ErrOwnershipExists.
	AssignTo(ctx context.Context, iban string, ownerID uuid.UUID) error

	// WithTx returns an AccountStore bound to the provided transaction.
	WithTx(tx *sql.Tx) AccountStore
}
