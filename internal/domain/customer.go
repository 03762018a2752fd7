package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Customer-specific validation errors. Each wraps ErrValidation so callers
// can match the whole family with a single errors.Is check.
var (
	ErrEmptyCustomerID = fmt.Errorf("%w: customer ID cannot be empty", ErrValidation)
	ErrInvalidPassport = fmt.Errorf("%w: passport number must be two letters followed by seven digits", ErrValidation)
	ErrEmptyFirstName  = fmt.Errorf("%w: first name cannot be empty", ErrValidation)
	ErrEmptyLastName   = fmt.Errorf("%w: last name cannot be empty", ErrValidation)
	ErrNameTooLong     = fmt.Errorf("%w: name cannot exceed 64 characters", ErrValidation)
	ErrInvalidEmail    = fmt.Errorf("%w: invalid email format", ErrValidation)
	ErrEmptyPassword   = fmt.Errorf("%w: password cannot be empty", ErrValidation)
)

var (
	passportRe = regexp.MustCompile(`^[A-Z]{2}\d{7}$`)
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// Customer represents a bank customer. Identity is an opaque UUID; the
// passport number is unique across customers but is not the primary key.
// HashedPassword is write-once and never serialized.
type Customer struct {
	ID             uuid.UUID `json:"id"`
	PassportNumber string    `json:"passport_number"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext, present only between creation and hashing
	HashedPassword string    `json:"-"` // Never expose the password hash
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewCustomer creates a Customer with a fresh UUID. The passport number's
// leading letters are upper-cased before validation, matching the format the
// identifier generator and schema enforce. The plaintext password must be
// hashed by the store before persistence.
func NewCustomer(passportNumber, firstName, lastName, email, password string) (*Customer, error) {
	customer := &Customer{
		ID:             uuid.New(),
		PassportNumber: NormalizePassportNumber(passportNumber),
		FirstName:      firstName,
		LastName:       lastName,
		Email:          email,
		Password:       password,
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}

	if err := customer.Validate(); err != nil {
		return nil, err
	}
	return customer, nil
}

// NormalizePassportNumber upper-cases the two-letter series prefix so that
// "hb1111111" and "HB1111111" refer to the same document.
func NormalizePassportNumber(passportNumber string) string {
	if len(passportNumber) < 2 {
		return passportNumber
	}
	return strings.ToUpper(passportNumber[:2]) + passportNumber[2:]
}

// Validate checks if the Customer has valid data. Failures carry the
// offending field so the transport layer can report it.
func (c *Customer) Validate() error {
	if c.ID == uuid.Nil {
		return NewValidationError("ID", "cannot be empty", ErrEmptyCustomerID)
	}
	if !passportRe.MatchString(c.PassportNumber) {
		return NewValidationError("PassportNumber", "must be two letters followed by seven digits", ErrInvalidPassport)
	}
	if c.FirstName == "" {
		return NewValidationError("FirstName", "cannot be empty", ErrEmptyFirstName)
	}
	if c.LastName == "" {
		return NewValidationError("LastName", "cannot be empty", ErrEmptyLastName)
	}
	if len(c.FirstName) > 64 || len(c.LastName) > 64 {
		return NewValidationError("Name", "cannot exceed 64 characters", ErrNameTooLong)
	}
	if !emailRe.MatchString(c.Email) {
		return NewValidationError("Email", "must be a valid email address", ErrInvalidEmail)
	}
	if c.Password == "" && c.HashedPassword == "" {
		return NewValidationError("Password", "cannot be empty", ErrEmptyPassword)
	}
	return nil
}

// SetHashedPassword records the password hash. The hash is write-once:
// setting it when one is already present fails with ErrWriteOnce regardless
// of whether the new value differs.
func (c *Customer) SetHashedPassword(hash string) error {
	if c.HashedPassword != "" {
		return ErrWriteOnce
	}
	c.HashedPassword = hash
	c.Password = ""
	return nil
}
