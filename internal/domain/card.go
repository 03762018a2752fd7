package domain

import (
	"fmt"
	"time"
)

// Card-specific validation errors, all wrapping ErrValidation.
var (
	// ErrEmptyCardNumber is returned when a card is built without a number.
	ErrEmptyCardNumber = fmt.Errorf("%w: card number cannot be empty", ErrValidation)

	// ErrEmptyCardAccount is returned when a card does not reference an account.
	ErrEmptyCardAccount = fmt.Errorf("%w: card must reference a bank account", ErrValidation)

	// ErrExpirationInPast is returned when a card would be created already expired.
	ErrExpirationInPast = fmt.Errorf("%w: card expiration date cannot be in the past", ErrValidation)
)

// BankCard represents a payment card bound to exactly one bank account.
// The card number is immutable once persisted. PIN and CVV are stored only
// as one-way hashes; the plaintext values exist exactly once, in the return
// value of the creating store call, and are never retrievable afterwards.
type BankCard struct {
	CardNumber      string    `json:"card_number"`
	ExpirationDate  time.Time `json:"expiration_date"`
	PINHash         string    `json:"-"` // Never expose secret hashes
	CVVHash         string    `json:"-"`
	BankAccountIBAN string    `json:"bank_account_iban"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewBankCard creates a BankCard bound to the given account. The PIN and CVV
// hashes are set afterwards via the write-once setters.
func NewBankCard(cardNumber string, expirationDate time.Time, accountIBAN string) (*BankCard, error) {
	card := &BankCard{
		CardNumber:      cardNumber,
		ExpirationDate:  expirationDate,
		BankAccountIBAN: accountIBAN,
		CreatedAt:       time.Now().UTC(),
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}
	return card, nil
}

// Validate checks if the BankCard has valid data.
func (c *BankCard) Validate() error {
	if c.CardNumber == "" {
		return NewValidationError("CardNumber", "cannot be empty", ErrEmptyCardNumber)
	}
	if c.BankAccountIBAN == "" {
		return NewValidationError("BankAccountIBAN", "cannot be empty", ErrEmptyCardAccount)
	}
	if c.ExpirationDate.Before(time.Now().UTC().Truncate(24 * time.Hour)) {
		return NewValidationError("ExpirationDate", "cannot be in the past", ErrExpirationInPast)
	}
	return nil
}

// SetPINHash records the PIN hash. Write-once: a second call fails with
// ErrWriteOnce even if the value is unchanged.
func (c *BankCard) SetPINHash(hash string) error {
	if c.PINHash != "" {
		return ErrWriteOnce
	}
	c.PINHash = hash
	return nil
}

// SetCVVHash records the CVV hash. Write-once, same contract as SetPINHash.
func (c *BankCard) SetCVVHash(hash string) error {
	if c.CVVHash != "" {
		return ErrWriteOnce
	}
	c.CVVHash = hash
	return nil
}
