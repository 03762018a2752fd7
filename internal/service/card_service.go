package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/k0rog/accounts/internal/domain"
	"github.com/k0rog/accounts/internal/store"
)

// CardService handles bank card operations. Card writes touch a single
// table, so no explicit transaction boundary is needed here.
type CardService struct {
	cards  store.CardStore
	logger *slog.Logger
}

// NewCardService creates a CardService. It panics if the store is nil.
func NewCardService(cards store.CardStore, logger *slog.Logger) *CardService {
	if cards == nil {
		panic("service: NewCardService requires a non-nil card store")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CardService{
		cards:  cards,
		logger: logger.With(slog.String("component", "card_service")),
	}
}

// Create issues a card for the account. The returned secrets hold the only
// plaintext copy of the PIN and CVV; callers must hand them to the client
// immediately and drop them.
func (s *CardService) Create(ctx context.Context, expirationDate time.Time, accountIBAN string) (*domain.BankCard, *store.CardSecrets, error) {
	return s.cards.Create(ctx, expirationDate, accountIBAN)
}

// GetByCardNumber returns the card identified by number.
func (s *CardService) GetByCardNumber(ctx context.Context, number string) (*domain.BankCard, error) {
	return s.cards.GetByCardNumber(ctx, number)
}

// GetAttachedTo returns every card bound to the account.
func (s *CardService) GetAttachedTo(ctx context.Context, accountIBAN string) ([]*domain.BankCard, error) {
	return s.cards.GetAttachedTo(ctx, accountIBAN)
}

// Delete removes a single card. Unlike the bulk path, deleting an absent
// card is an error here: the caller named one specific card.
func (s *CardService) Delete(ctx context.Context, number string) error {
	deleted, err := s.cards.Delete(ctx, number)
	if err != nil {
		return err
	}
	if !deleted {
		return store.ErrCardNotFound
	}
	return nil
}

// DeleteAttachedTo removes every card bound to the account.
func (s *CardService) DeleteAttachedTo(ctx context.Context, accountIBAN string) error {
	attached, err := s.cards.GetAttachedTo(ctx, accountIBAN)
	if err != nil {
		return fmt.Errorf("failed to list cards for %s: %w", accountIBAN, err)
	}
	numbers := make([]string, 0, len(attached))
	for _, card := range attached {
		numbers = append(numbers, card.CardNumber)
	}
	return s.cards.BulkDelete(ctx, numbers)
}

// CheckPIN verifies a plaintext PIN against the stored hash.
func (s *CardService) CheckPIN(ctx context.Context, number, pin string) (bool, error) {
	return s.cards.CheckPIN(ctx, number, pin)
}
