package mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/k0rog/accounts/internal/domain"
	"github.com/k0rog/accounts/internal/store"
)

// MockCardStore implements store.CardStore for testing.
type MockCardStore struct {
	// Custom behavior functions
	CreateFn          func(ctx context.Context, expirationDate time.Time, accountIBAN string) (*domain.BankCard, *store.CardSecrets, error)
	GetByCardNumberFn func(ctx context.Context, number string) (*domain.BankCard, error)
	GetAttachedToFn   func(ctx context.Context, accountIBAN string) ([]*domain.BankCard, error)
	DeleteFn          func(ctx context.Context, number string) (bool, error)
	BulkDeleteFn      func(ctx context.Context, numbers []string) error
	CheckPINFn        func(ctx context.Context, number, pin string) (bool, error)

	// Default response values
	Card    *domain.BankCard
	Cards   []*domain.BankCard
	Secrets *store.CardSecrets
	Deleted bool
	PINOk   bool
	Err     error

	// Call tracking
	DeleteCalls     []string
	BulkDeleteCalls [][]string
}

var _ store.CardStore = (*MockCardStore)(nil)

func (m *MockCardStore) Create(ctx context.Context, expirationDate time.Time, accountIBAN string) (*domain.BankCard, *store.CardSecrets, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, expirationDate, accountIBAN)
	}
	return m.Card, m.Secrets, m.Err
}

func (m *MockCardStore) GetByCardNumber(ctx context.Context, number string) (*domain.BankCard, error) {
	if m.GetByCardNumberFn != nil {
		return m.GetByCardNumberFn(ctx, number)
	}
	return m.Card, m.Err
}

func (m *MockCardStore) GetAttachedTo(ctx context.Context, accountIBAN string) ([]*domain.BankCard, error) {
	if m.GetAttachedToFn != nil {
		return m.GetAttachedToFn(ctx, accountIBAN)
	}
	return m.Cards, m.Err
}

func (m *MockCardStore) Delete(ctx context.Context, number string) (bool, error) {
	m.DeleteCalls = append(m.DeleteCalls, number)
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, number)
	}
	return m.Deleted, m.Err
}

func (m *MockCardStore) BulkDelete(ctx context.Context, numbers []string) error {
	m.BulkDeleteCalls = append(m.BulkDeleteCalls, numbers)
	if m.BulkDeleteFn != nil {
		return m.BulkDeleteFn(ctx, numbers)
	}
	return m.Err
}

func (m *MockCardStore) CheckPIN(ctx context.Context, number, pin string) (bool, error) {
	if m.CheckPINFn != nil {
		return m.CheckPINFn(ctx, number, pin)
	}
	return m.PINOk, m.Err
}

// WithTx returns the mock itself; mock stores have no transaction state.
func (m *MockCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return m
}
