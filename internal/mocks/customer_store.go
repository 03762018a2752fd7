package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/k0rog/accounts/internal/domain"
	"github.com/k0rog/accounts/internal/store"
)

// MockCustomerStore implements store.CustomerStore for testing.
type MockCustomerStore struct {
	// Custom behavior functions
	CreateFn     func(ctx context.Context, customer *domain.Customer) error
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	GetByEmailFn func(ctx context.Context, email string) (*domain.Customer, error)
	UpdateFn     func(ctx context.Context, id uuid.UUID, update store.CustomerUpdate) error
	DeleteFn     func(ctx context.Context, id uuid.UUID) error
	HasAccountFn func(ctx context.Context, id uuid.UUID) (bool, error)

	// Default response values
	Customer    *domain.Customer
	HasAccounts bool
	Err         error

	// Call tracking
	DeleteCalls []uuid.UUID
}

var _ store.CustomerStore = (*MockCustomerStore)(nil)

func (m *MockCustomerStore) Create(ctx context.Context, customer *domain.Customer) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, customer)
	}
	return m.Err
}

func (m *MockCustomerStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return m.Customer, m.Err
}

func (m *MockCustomerStore) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return m.Customer, m.Err
}

func (m *MockCustomerStore) Update(ctx context.Context, id uuid.UUID, update store.CustomerUpdate) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, update)
	}
	return m.Err
}

func (m *MockCustomerStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.DeleteCalls = append(m.DeleteCalls, id)
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.Err
}

func (m *MockCustomerStore) HasAccount(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.HasAccountFn != nil {
		return m.HasAccountFn(ctx, id)
	}
	return m.HasAccounts, m.Err
}

// WithTx returns the mock itself; mock stores have no transaction state.
func (m *MockCustomerStore) WithTx(tx *sql.Tx) store.CustomerStore {
	return m
}
