package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/k0rog/accounts/internal/config"
	"github.com/k0rog/accounts/internal/domain"
	"github.com/k0rog/accounts/internal/generation"
	"github.com/k0rog/accounts/internal/platform/logger"
	"github.com/k0rog/accounts/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// Constraint names the card create path dispatches on.
const (
	cardPKConstraint  = "bank_cards_pkey"
	cardAccountFKName = "bank_cards_bank_account_iban_fkey"
)

// PostgresCardStore implements the store.CardStore interface
// using a PostgreSQL database as the storage backend. Card numbers are
// generated here with Luhn check digits; PIN and CVV are generated
// server-side, persisted only as bcrypt hashes and returned in plaintext
// exactly once.
type PostgresCardStore struct {
	db         store.DBTX
	gen        *generation.Generator
	cfg        config.BankConfig
	bcryptCost int
	logger     *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the
// CardStore interface. If logger is nil, a default logger will be used.
func NewPostgresCardStore(db store.DBTX, gen *generation.Generator, cfg config.BankConfig, bcryptCost int, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if gen == nil {
		panic("generator cannot be nil")
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:         db,
		gen:        gen,
		cfg:        cfg,
		bcryptCost: bcryptCost,
		logger:     logger.With(slog.String("component", "card_store")),
	}
}

// Ensure PostgresCardStore implements store.CardStore interface
var _ store.CardStore = (*PostgresCardStore)(nil)

// WithTx implements store.CardStore.WithTx
func (s *PostgresCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &PostgresCardStore{
		db:         tx,
		gen:        s.gen,
		cfg:        s.cfg,
		bcryptCost: s.bcryptCost,
		logger:     s.logger,
	}
}

// Create implements store.CardStore.Create
// The account reference is enforced by the insert's foreign key, so a
// missing account surfaces from the first attempt without a pre-check.
// Number collisions regenerate and retry; the plaintext secrets in the
// returned CardSecrets must never be logged.
func (s *PostgresCardStore) Create(ctx context.Context, expirationDate time.Time, accountIBAN string) (*domain.BankCard, *store.CardSecrets, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	pin := s.gen.GeneratePIN()
	cvv := s.gen.GenerateCVV()

	pinHash, err := bcrypt.GenerateFromPassword([]byte(pin), s.bcryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash PIN: %w", err)
	}
	cvvHash, err := bcrypt.GenerateFromPassword([]byte(cvv), s.bcryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash CVV: %w", err)
	}

	for attempt := 0; attempt < s.cfg.MaxGenerationRetries; attempt++ {
		number, err := s.gen.GenerateCardNumber(s.cfg.CardPaymentSystemCode, s.cfg.CardBankIdentifier, s.cfg.CardIDLength)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to generate card number: %w", err)
		}

		card, err := domain.NewBankCard(number, expirationDate, accountIBAN)
		if err != nil {
			return nil, nil, err
		}
		if err := card.SetPINHash(string(pinHash)); err != nil {
			return nil, nil, fmt.Errorf("%w: PIN hash", store.ErrAccessDenied)
		}
		if err := card.SetCVVHash(string(cvvHash)); err != nil {
			return nil, nil, fmt.Errorf("%w: CVV hash", store.ErrAccessDenied)
		}

		query := `
			INSERT INTO bank_cards (card_number, expiration_date, pin_hash, cvv_hash, bank_account_iban, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		_, err = s.db.ExecContext(
			ctx,
			query,
			card.CardNumber,
			card.ExpirationDate,
			card.PINHash,
			card.CVVHash,
			card.BankAccountIBAN,
			card.CreatedAt,
		)

		if err != nil {
			if IsUniqueViolationOn(err, cardPKConstraint) {
				log.Warn("card number collision, regenerating",
					slog.Int("attempt", attempt+1))
				continue
			}
			if isForeignKeyViolationOn(err, cardAccountFKName) {
				return nil, nil, fmt.Errorf("%w: %v", store.ErrAccountNotFound, err)
			}
			log.Error("failed to create bank card",
				slog.String("error", err.Error()))
			return nil, nil, MapError(err)
		}

		log.Info("bank card created",
			slog.String("account_iban", accountIBAN))
		return card, &store.CardSecrets{PIN: pin, CVV: cvv}, nil
	}

	return nil, nil, fmt.Errorf("%w: after %d attempts", store.ErrRetryLimitExceeded, s.cfg.MaxGenerationRetries)
}

// cardColumns is the select list shared by the read paths.
const cardColumns = `card_number, expiration_date, pin_hash, cvv_hash, bank_account_iban, created_at`

// GetByCardNumber implements store.CardStore.GetByCardNumber
func (s *PostgresCardStore) GetByCardNumber(ctx context.Context, number string) (*domain.BankCard, error) {
	query := `SELECT ` + cardColumns + ` FROM bank_cards WHERE card_number = $1`

	var card domain.BankCard
	err := s.db.QueryRowContext(ctx, query, number).Scan(
		&card.CardNumber,
		&card.ExpirationDate,
		&card.PINHash,
		&card.CVVHash,
		&card.BankAccountIBAN,
		&card.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCardNotFound
		}
		return nil, err
	}

	return &card, nil
}

// GetAttachedTo implements store.CardStore.GetAttachedTo
func (s *PostgresCardStore) GetAttachedTo(ctx context.Context, accountIBAN string) ([]*domain.BankCard, error) {
	query := `SELECT ` + cardColumns + ` FROM bank_cards WHERE bank_account_iban = $1 ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, accountIBAN)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			s.logger.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	cards := make([]*domain.BankCard, 0)
	for rows.Next() {
		var card domain.BankCard
		if err := rows.Scan(
			&card.CardNumber,
			&card.ExpirationDate,
			&card.PINHash,
			&card.CVVHash,
			&card.BankAccountIBAN,
			&card.CreatedAt,
		); err != nil {
			return nil, err
		}
		cards = append(cards, &card)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return cards, nil
}

// Delete implements store.CardStore.Delete
// The bool return reports whether a row was actually removed; the service
// layer turns false into its not-found error. The delete-by-filter
// primitive itself never raises for absence.
func (s *PostgresCardStore) Delete(ctx context.Context, number string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM bank_cards WHERE card_number = $1`, number)
	if err != nil {
		return false, MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

// BulkDelete implements store.CardStore.BulkDelete
func (s *PostgresCardStore) BulkDelete(ctx context.Context, numbers []string) error {
	if len(numbers) == 0 {
		return nil
	}

	_, err := s.db.ExecContext(ctx, `DELETE FROM bank_cards WHERE card_number = ANY($1)`, numbers)
	if err != nil {
		return MapError(err)
	}
	return nil
}

// CheckPIN implements store.CardStore.CheckPIN
func (s *PostgresCardStore) CheckPIN(ctx context.Context, number, pin string) (bool, error) {
	card, err := s.GetByCardNumber(ctx, number)
	if err != nil {
		return false, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(card.PINHash), []byte(pin))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, fmt.Errorf("failed to compare PIN hash: %w", err)
	}
	return true, nil
}
