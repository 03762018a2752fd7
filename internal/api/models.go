package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/k0rog/accounts/internal/domain"
)

// Request and response payloads. Validation tags cover shape only; domain
// rules (passport format, currency allow-list) are enforced deeper down.

// CreateCustomerRequest defines the payload for customer registration. Every
// customer starts with one account, so its currency and opening balance ride
// along as a nested object.
type CreateCustomerRequest struct {
	PassportNumber string                 `json:"passport_number" validate:"required,len=9"`
	FirstName      string                 `json:"first_name"      validate:"required,max=64"`
	LastName       string                 `json:"last_name"       validate:"required,max=64"`
	Email          string                 `json:"email"           validate:"required,email"`
	Password       string                 `json:"password"        validate:"required,min=8,max=72"`
	BankAccount    FirstBankAccountFields `json:"bank_account"`
}

// FirstBankAccountFields describes the customer's first account.
type FirstBankAccountFields struct {
	Currency string  `json:"currency" validate:"required"`
	Balance  float64 `json:"balance"  validate:"gte=0"`
}

// CreateCustomerResponse returns the new customer's identifier and the IBAN
// of their first account.
type CreateCustomerResponse struct {
	UUID uuid.UUID `json:"uuid"`
	IBAN string    `json:"iban"`
}

// UpdateCustomerRequest defines a partial customer update. Absent fields are
// left untouched.
type UpdateCustomerRequest struct {
	PassportNumber *string `json:"passport_number" validate:"omitempty,len=9"`
	FirstName      *string `json:"first_name"      validate:"omitempty,max=64"`
	LastName       *string `json:"last_name"       validate:"omitempty,max=64"`
	Email          *string `json:"email"           validate:"omitempty,email"`
}

// CustomerResponse is the public customer representation. No password
// material, ever.
type CustomerResponse struct {
	UUID           uuid.UUID `json:"uuid"`
	PassportNumber string    `json:"passport_number"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
}

// NewCustomerResponse converts a domain customer to its public shape.
func NewCustomerResponse(customer *domain.Customer) CustomerResponse {
	return CustomerResponse{
		UUID:           customer.ID,
		PassportNumber: customer.PassportNumber,
		FirstName:      customer.FirstName,
		LastName:       customer.LastName,
		Email:          customer.Email,
	}
}

// CreateAccountRequest defines the payload for opening an additional account.
type CreateAccountRequest struct {
	Currency string  `json:"currency" validate:"required"`
	Balance  float64 `json:"balance"  validate:"gte=0"`
}

// AccountResponse is the public account representation.
type AccountResponse struct {
	IBAN     string  `json:"iban"`
	Currency string  `json:"currency"`
	Balance  float64 `json:"balance"`
}

// NewAccountResponse converts a domain account to its public shape.
func NewAccountResponse(account *domain.BankAccount) AccountResponse {
	return AccountResponse{
		IBAN:     account.IBAN,
		Currency: string(account.Currency),
		Balance:  account.Balance,
	}
}

// UpdateBalanceRequest carries a signed delta applied to the balance. The
// pointer distinguishes an absent amount from a legal zero delta.
type UpdateBalanceRequest struct {
	Amount *float64 `json:"amount" validate:"required"`
}

// CreateCardRequest defines the payload for issuing a card.
type CreateCardRequest struct {
	ExpirationDate string `json:"expiration_date" validate:"required,datetime=2006-01-02"`
}

// CardResponse is the public card representation: the number and expiry,
// never the PIN or CVV hashes.
type CardResponse struct {
	CardNumber      string `json:"card_number"`
	ExpirationDate  string `json:"expiration_date"`
	BankAccountIBAN string `json:"bank_account_iban"`
}

// NewCardResponse converts a domain card to its public shape.
func NewCardResponse(card *domain.BankCard) CardResponse {
	return CardResponse{
		CardNumber:      card.CardNumber,
		ExpirationDate:  card.ExpirationDate.Format("2006-01-02"),
		BankAccountIBAN: card.BankAccountIBAN,
	}
}

// CreateCardResponse extends CardResponse with the plaintext PIN and CVV.
// This response is the only place those values ever appear.
type CreateCardResponse struct {
	CardResponse
	PIN string `json:"pin"`
	CVV string `json:"cvv"`
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// LoginResponse defines the successful login response.
type LoginResponse struct {
	CustomerID uuid.UUID `json:"customer_id"`
	Token      string    `json:"token"`
}

// cardExpirationLayout is the wire format for card expiration dates.
const cardExpirationLayout = "2006-01-02"

// parseExpirationDate parses the request date, which validation has already
// shape-checked.
func parseExpirationDate(value string) (time.Time, error) {
	return time.Parse(cardExpirationLayout, value)
}
