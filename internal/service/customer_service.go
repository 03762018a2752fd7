package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/k0rog/accounts/internal/domain"
	"github.com/k0rog/accounts/internal/store"
)

// CustomerService handles customer lifecycle operations. Creation and
// deletion span several stores, so both run inside a single transaction.
type CustomerService struct {
	customers store.CustomerStore
	accounts  store.AccountStore
	cards     store.CardStore
	runner    store.Runner
	logger    *slog.Logger
}

// NewCustomerService creates a CustomerService. It panics if any store or the
// runner is nil, since construction happens once at startup.
func NewCustomerService(
	customers store.CustomerStore,
	accounts store.AccountStore,
	cards store.CardStore,
	runner store.Runner,
	logger *slog.Logger,
) *CustomerService {
	if customers == nil || accounts == nil || cards == nil || runner == nil {
		panic("service: NewCustomerService requires non-nil stores and runner")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CustomerService{
		customers: customers,
		accounts:  accounts,
		cards:     cards,
		runner:    runner,
		logger:    logger.With(slog.String("component", "customer_service")),
	}
}

// Create persists the customer together with their first bank account and the
// ownership row binding the two. The three writes commit or roll back as one
// unit: a rejected currency or duplicate passport leaves no partial state.
func (s *CustomerService) Create(ctx context.Context, customer *domain.Customer, currency string, balance float64) (*domain.BankAccount, error) {
	var account *domain.BankAccount

	err := s.runner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.customers.WithTx(tx).Create(ctx, customer); err != nil {
			return err
		}

		created, err := s.accounts.WithTx(tx).Create(ctx, currency, balance, customer.ID)
		if err != nil {
			return err
		}
		account = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("customer created",
		slog.String("customer_id", customer.ID.String()))
	return account, nil
}

// GetByID returns the customer without any secret material.
func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	return s.customers.GetByID(ctx, id)
}

// Update applies a partial update to the customer.
func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, update store.CustomerUpdate) error {
	return s.customers.Update(ctx, id, update)
}

// Delete removes the customer and everything reachable from them: cards on
// owned accounts first, then the accounts, then the customer row. Ownership
// rows cascade in the database. Deletion order follows the dependency chain
// so no step ever references a missing parent.
func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.runner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		accounts := s.accounts.WithTx(tx)
		cards := s.cards.WithTx(tx)

		owned, err := accounts.GetOwnedBy(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to list owned accounts: %w", err)
		}

		ibans := make([]string, 0, len(owned))
		var numbers []string
		for _, account := range owned {
			ibans = append(ibans, account.IBAN)

			attached, err := cards.GetAttachedTo(ctx, account.IBAN)
			if err != nil {
				return fmt.Errorf("failed to list cards for %s: %w", account.IBAN, err)
			}
			for _, card := range attached {
				numbers = append(numbers, card.CardNumber)
			}
		}

		if err := cards.BulkDelete(ctx, numbers); err != nil {
			return fmt.Errorf("failed to delete cards: %w", err)
		}
		if err := accounts.BulkDelete(ctx, ibans); err != nil {
			return fmt.Errorf("failed to delete accounts: %w", err)
		}
		return s.customers.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("customer deleted",
		slog.String("customer_id", id.String()))
	return nil
}
