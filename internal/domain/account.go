package domain

import (
	"fmt"
	"strings"
	"time"
)

// Account-specific validation errors
var (
	// ErrEmptyIBAN is returned when an account is built without an IBAN.
	ErrEmptyIBAN = fmt.Errorf("%w: account IBAN cannot be empty", ErrValidation)
)

// Currency is one of the fixed set of currencies an account may hold.
type Currency string

// The currency allow-list. Accounts in any other currency are rejected.
const (
	CurrencyBYN Currency = "BYN"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

// ParseCurrency normalizes and validates a currency code against the
// allow-list. Returns ErrUnknownCurrency for anything else.
func ParseCurrency(code string) (Currency, error) {
	switch c := Currency(strings.ToUpper(code)); c {
	case CurrencyBYN, CurrencyUSD, CurrencyEUR:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
	}
}

// BankAccount represents a bank account identified by its generated IBAN.
// The IBAN is immutable once the account is persisted. The balance is a
// signed amount: overdraft is permitted by design, so no non-negativity
// constraint exists anywhere in the system.
type BankAccount struct {
	IBAN      string    `json:"iban"`
	Currency  Currency  `json:"currency"`
	Balance   float64   `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewBankAccount creates a BankAccount with the given identity, currency and
// opening balance. Returns an error if validation fails.
func NewBankAccount(iban string, currency string, balance float64) (*BankAccount, error) {
	parsed, err := ParseCurrency(currency)
	if err != nil {
		return nil, err
	}

	account := &BankAccount{
		IBAN:      iban,
		Currency:  parsed,
		Balance:   balance,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}
	return account, nil
}

// Validate checks if the BankAccount has valid data.
func (a *BankAccount) Validate() error {
	if a.IBAN == "" {
		return NewValidationError("IBAN", "cannot be empty", ErrEmptyIBAN)
	}
	if _, err := ParseCurrency(string(a.Currency)); err != nil {
		return err
	}
	return nil
}
