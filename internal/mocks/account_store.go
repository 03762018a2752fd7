package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/k0rog/accounts/internal/domain"
	"github.com/k0rog/accounts/internal/store"
)

// MockAccountStore implements store.AccountStore for testing.
type MockAccountStore struct {
	// Custom behavior functions
	CreateFn                func(ctx context.Context, currency string, balance float64, ownerID uuid.UUID) (*domain.BankAccount, error)
	GetByIBANFn             func(ctx context.Context, iban string) (*domain.BankAccount, error)
	GetOwnedByFn            func(ctx context.Context, ownerID uuid.UUID) ([]*domain.BankAccount, error)
	DeleteFn                func(ctx context.Context, iban string) error
	BulkDeleteFn            func(ctx context.Context, ibans []string) error
	UpdateBalanceByAmountFn func(ctx context.Context, iban string, amount float64) error
	AssignToFn              func(ctx context.Context, iban string, ownerID uuid.UUID) error

	// Default response values
	Account  *domain.BankAccount
	Accounts []*domain.BankAccount
	Err      error

	// Call tracking
	DeleteCalls     []string
	BulkDeleteCalls [][]string
}

var _ store.AccountStore = (*MockAccountStore)(nil)

func (m *MockAccountStore) Create(ctx context.Context, currency string, balance float64, ownerID uuid.UUID) (*domain.BankAccount, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, currency, balance, ownerID)
	}
	return m.Account, m.Err
}

func (m *MockAccountStore) GetByIBAN(ctx context.Context, iban string) (*domain.BankAccount, error) {
	if m.GetByIBANFn != nil {
		return m.GetByIBANFn(ctx, iban)
	}
	return m.Account, m.Err
}

func (m *MockAccountStore) GetOwnedBy(ctx context.Context, ownerID uuid.UUID) ([]*domain.BankAccount, error) {
	if m.GetOwnedByFn != nil {
		return m.GetOwnedByFn(ctx, ownerID)
	}
	return m.Accounts, m.Err
}

func (m *MockAccountStore) Delete(ctx context.Context, iban string) error {
	m.DeleteCalls = append(m.DeleteCalls, iban)
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, iban)
	}
	return m.Err
}

func (m *MockAccountStore) BulkDelete(ctx context.Context, ibans []string) error {
	m.BulkDeleteCalls = append(m.BulkDeleteCalls, ibans)
	if m.BulkDeleteFn != nil {
		return m.BulkDeleteFn(ctx, ibans)
	}
	return m.Err
}

func (m *MockAccountStore) UpdateBalanceByAmount(ctx context.Context, iban string, amount float64) error {
	if m.UpdateBalanceByAmountFn != nil {
		return m.UpdateBalanceByAmountFn(ctx, iban, amount)
	}
	return m.Err
}

func (m *MockAccountStore) AssignTo(ctx context.Context, iban string, ownerID uuid.UUID) error {
	if m.AssignToFn != nil {
		return m.AssignToFn(ctx, iban, ownerID)
	}
	return m.Err
}

// WithTx returns the mock itself; mock stores have no transaction state.
func (m *MockAccountStore) WithTx(tx *sql.Tx) store.AccountStore {
	return m
}
