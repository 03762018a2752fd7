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

// AccountService handles bank account operations.
type AccountService struct {
	accounts store.AccountStore
	cards    store.CardStore
	runner   store.Runner
	logger   *slog.Logger
}

// NewAccountService creates an AccountService. It panics if any store or the
// runner is nil.
func NewAccountService(
	accounts store.AccountStore,
	cards store.CardStore,
	runner store.Runner,
	logger *slog.Logger,
) *AccountService {
	if accounts == nil || cards == nil || runner == nil {
		panic("service: NewAccountService requires non-nil stores and runner")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountService{
		accounts: accounts,
		cards:    cards,
		runner:   runner,
		logger:   logger.With(slog.String("component", "account_service")),
	}
}

// Create opens an account for an existing customer. The account insert and
// the ownership insert commit atomically.
func (s *AccountService) Create(ctx context.Context, currency string, balance float64, ownerID uuid.UUID) (*domain.BankAccount, error) {
	var account *domain.BankAccount

	err := s.runner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		created, err := s.accounts.WithTx(tx).Create(ctx, currency, balance, ownerID)
		if err != nil {
			return err
		}
		account = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// GetByIBAN returns the account identified by iban.
func (s *AccountService) GetByIBAN(ctx context.Context, iban string) (*domain.BankAccount, error) {
	return s.accounts.GetByIBAN(ctx, iban)
}

// GetOwnedBy returns every account owned by the customer.
func (s *AccountService) GetOwnedBy(ctx context.Context, ownerID uuid.UUID) ([]*domain.BankAccount, error) {
	return s.accounts.GetOwnedBy(ctx, ownerID)
}

// UpdateBalanceByAmount applies a signed delta to the account balance.
func (s *AccountService) UpdateBalanceByAmount(ctx context.Context, iban string, amount float64) error {
	return s.accounts.UpdateBalanceByAmount(ctx, iban, amount)
}

// AssignTo adds the customer as a co-owner of the account.
func (s *AccountService) AssignTo(ctx context.Context, iban string, ownerID uuid.UUID) error {
	return s.accounts.AssignTo(ctx, iban, ownerID)
}

// Delete removes the account and its cards in one transaction, cards first.
func (s *AccountService) Delete(ctx context.Context, iban string) error {
	err := s.runner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		cards := s.cards.WithTx(tx)

		attached, err := cards.GetAttachedTo(ctx, iban)
		if err != nil {
			return fmt.Errorf("failed to list cards for %s: %w", iban, err)
		}
		numbers := make([]string, 0, len(attached))
		for _, card := range attached {
			numbers = append(numbers, card.CardNumber)
		}

		if err := cards.BulkDelete(ctx, numbers); err != nil {
			return fmt.Errorf("failed to delete cards: %w", err)
		}
		return s.accounts.WithTx(tx).Delete(ctx, iban)
	})
	if err != nil {
		return err
	}

	s.logger.Info("bank account deleted")
	return nil
}
