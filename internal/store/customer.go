package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/k0rog/accounts/internal/domain"
)

// CustomerUpdate carries a partial customer update. Nil fields are left
// untouched; the password hash is write-once and deliberately absent.
type CustomerUpdate struct {
	PassportNumber *string
	FirstName      *string
	LastName       *string
	Email          *string
}

// Empty reports whether the update carries no fields at all.
func (u CustomerUpdate) Empty() bool {
	return u.PassportNumber == nil && u.FirstName == nil && u.LastName == nil && u.Email == nil
}

// CustomerStore defines the interface for customer data persistence.
type CustomerStore interface {
	// Create saves a new customer to the store. It hashes the plaintext
	// password internally; the stored entity carries only the hash.
	// Returns ErrPassportExists if the passport number is already taken.
	// The constraint is checked at commit, not pre-checked, so concurrent
	// creates cannot race past the check.
	Create(ctx context.Context, customer *domain.Customer) error

	// GetByID retrieves a customer by their unique ID.
	// Returns ErrCustomerNotFound if the customer does not exist.
	// The returned customer never contains the plaintext password.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)

	// GetByEmail retrieves a customer by email address.
	// Returns ErrCustomerNotFound if the customer does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)

	// Update applies the supplied fields to an existing customer.
	// Returns ErrCustomerNotFound if the customer does not exist and
	// ErrPassportExists if the update collides with another customer's
	// passport number.
	Update(ctx context.Context, id uuid.UUID, update CustomerUpdate) error

	// Delete removes a customer by ID. Ownership rows cascade in the
	// database. Returns ErrCustomerNotFound if the customer does not exist;
	// the existence check is explicit so callers can distinguish "deleted"
	// from "no-op".
	Delete(ctx context.Context, id uuid.UUID) error

	// HasAccount reports whether the customer owns at least one account.
	HasAccount(ctx context.Context, id uuid.UUID) (bool, error)

	// WithTx returns a CustomerStore bound to the provided transaction,
	// allowing multiple operations to execute atomically. The transaction
	// is created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) CustomerStore
}
