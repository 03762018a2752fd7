package api

import (
	"errors"
	"net/http"

	"github.com/k0rog/accounts/internal/domain"
	"github.com/k0rog/accounts/internal/service/auth"
	"github.com/k0rog/accounts/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes.
//
// Every domain-level failure deliberately answers 400, not 404 or 409: the
// API treats a missing entity, a duplicate and a broken reference uniformly
// as "the request cannot be satisfied as stated". Validation failures are
// the only 422s and are produced before services run.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	case store.IsNotFoundError(err),
		store.IsDuplicateError(err),
		errors.Is(err, store.ErrInvalidReference),
		errors.Is(err, store.ErrAccessDenied),
		errors.Is(err, store.ErrRetryLimitExceeded),
		errors.Is(err, domain.ErrUnknownCurrency),
		errors.Is(err, domain.ErrWriteOnce):
		return http.StatusBadRequest

	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the client-facing message for an error. The
// wording for missing and duplicate entities is part of the public contract
// and must not drift.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, domain.ErrUnknownCurrency):
		return "Currency does not exist!"
	case errors.Is(err, store.ErrCustomerNotFound):
		return "Customer does not exist!"
	case errors.Is(err, store.ErrAccountNotFound):
		return "BankAccount does not exist!"
	case errors.Is(err, store.ErrCardNotFound):
		return "BankCard does not exist!"
	case errors.Is(err, store.ErrPassportExists):
		return "Customer already exists!"
	case errors.Is(err, store.ErrOwnershipExists):
		return "Relation already exist!"

	case errors.Is(err, store.ErrRetryLimitExceeded):
		return "Could not allocate a unique identifier"

	case errors.Is(err, domain.ErrWriteOnce):
		return "Field may only be set once"

	default:
		return "An unexpected error occurred"
	}
}
