package domain

import "github.com/google/uuid"

// Ownership is a many-to-many join row linking a customer to a bank account.
// The pair is unique; an account may in principle be owned by more than one
// customer. Rows are removed when either side is deleted or when the account
// is explicitly unassigned.
type Ownership struct {
	CustomerID      uuid.UUID `json:"customer_id"`
	BankAccountIBAN string    `json:"bank_account_iban"`
}
