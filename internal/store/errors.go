package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is the generic version of the entity-specific not found
	// errors (e.g., ErrCustomerNotFound, ErrAccountNotFound).
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate of
	// a unique entity (e.g., a customer with the same passport number).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidReference is returned when an operation references an entity
	// that does not exist (foreign-key violation) or violates a check
	// constraint, such as an account created in an unknown currency.
	ErrInvalidReference = errors.New("invalid entity reference")

	// ErrAccessDenied is returned on an attempt to mutate a write-once field
	// such as a card's PIN or CVV hash. It should not normally reach the API
	// boundary given correct calling discipline, but it is defined and
	// tested all the same.
	ErrAccessDenied = errors.New("cannot modify write-once data")

	// ErrRetryLimitExceeded is returned when identifier generation keeps
	// colliding with persisted identifiers past the configured retry
	// ceiling. Under normal identifier-space sizing the expected iteration
	// count is ~1, so hitting this indicates misconfiguration rather than
	// bad luck.
	ErrRetryLimitExceeded = errors.New("identifier generation retry limit exceeded")

	// Entity-specific "not found" errors

	// ErrCustomerNotFound indicates the requested customer does not exist.
	ErrCustomerNotFound = fmt.Errorf("%w: customer", ErrNotFound)

	// ErrAccountNotFound indicates the requested bank account does not exist.
	ErrAccountNotFound = fmt.Errorf("%w: bank account", ErrNotFound)

	// ErrCardNotFound indicates the requested bank card does not exist.
	ErrCardNotFound = fmt.Errorf("%w: bank card", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrPassportExists indicates a customer with the given passport number
	// already exists.
	ErrPassportExists = fmt.Errorf("%w: passport number", ErrDuplicate)

	// ErrOwnershipExists indicates the customer already owns the account.
	ErrOwnershipExists = fmt.Errorf("%w: ownership relation", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error,
// entity-specific or generic.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
