package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/k0rog/accounts/internal/config"
	"github.com/k0rog/accounts/internal/domain"
	"github.com/k0rog/accounts/internal/generation"
	"github.com/k0rog/accounts/internal/platform/logger"
	"github.com/k0rog/accounts/internal/store"
)

// Constraint names the create and assign paths dispatch on.
const (
	accountPKConstraint   = "bank_accounts_pkey"
	ownershipPKConstraint = "customer_bank_accounts_pkey"
	ownershipCustomerFK   = "customer_bank_accounts_customer_id_fkey"
	ownershipAccountFK    = "customer_bank_accounts_bank_account_id_fkey"
)

// PostgresAccountStore implements the store.AccountStore interface
// using a PostgreSQL database as the storage backend. It owns IBAN
// generation: uniqueness is enforced by the primary key, and collisions are
// retried with a fresh identifier up to the configured ceiling.
type PostgresAccountStore struct {
	db     store.DBTX
	gen    *generation.Generator
	cfg    config.BankConfig
	logger *slog.Logger
}

// NewPostgresAccountStore creates a new PostgreSQL implementation of the
// AccountStore interface. The generator supplies candidate IBANs; cfg fixes
// their shape and the retry ceiling. If logger is nil, a default logger
// will be used.
func NewPostgresAccountStore(db store.DBTX, gen *generation.Generator, cfg config.BankConfig, logger *slog.Logger) *PostgresAccountStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if gen == nil {
		panic("generator cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAccountStore{
		db:     db,
		gen:    gen,
		cfg:    cfg,
		logger: logger.With(slog.String("component", "account_store")),
	}
}

// Ensure PostgresAccountStore implements store.AccountStore interface
var _ store.AccountStore = (*PostgresAccountStore)(nil)

// WithTx implements store.AccountStore.WithTx
func (s *PostgresAccountStore) WithTx(tx *sql.Tx) store.AccountStore {
	return &PostgresAccountStore{
		db:     tx,
		gen:    s.gen,
		cfg:    s.cfg,
		logger: s.logger,
	}
}

// Create implements store.AccountStore.Create
// The account insert and the ownership insert run against the store's
// handle; callers that need the pair to be atomic (all of them, per the
// contract) invoke this inside a transaction via WithTx. A primary key
// collision on the generated IBAN is retried with a fresh identifier; any
// other constraint violation is mapped and returned.
func (s *PostgresAccountStore) Create(ctx context.Context, currency string, balance float64, ownerID uuid.UUID) (*domain.BankAccount, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	for attempt := 0; attempt < s.cfg.MaxGenerationRetries; attempt++ {
		iban, err := s.gen.GenerateIBAN(s.cfg.IBANCountryCode, s.cfg.IBANBankIdentifier, s.cfg.IBANBBANLength)
		if err != nil {
			return nil, fmt.Errorf("failed to generate IBAN: %w", err)
		}

		account, err := domain.NewBankAccount(iban, currency, balance)
		if err != nil {
			return nil, err
		}

		query := `
			INSERT INTO bank_accounts (iban, currency, balance, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5)
		`
		_, err = s.db.ExecContext(
			ctx,
			query,
			account.IBAN,
			account.Currency,
			account.Balance,
			account.CreatedAt,
			account.UpdatedAt,
		)

		if err != nil {
			if IsUniqueViolationOn(err, accountPKConstraint) {
				// The astronomically unlikely case: another account already
				// holds this IBAN. Regenerate and try again.
				log.Warn("IBAN collision, regenerating",
					slog.Int("attempt", attempt+1))
				continue
			}
			log.Error("failed to create bank account",
				slog.String("error", err.Error()))
			return nil, MapError(err)
		}

		if err := s.AssignTo(ctx, account.IBAN, ownerID); err != nil {
			return nil, err
		}

		log.Info("bank account created",
			slog.String("currency", string(account.Currency)),
			slog.String("owner_id", ownerID.String()))
		return account, nil
	}

	return nil, fmt.Errorf("%w: after %d attempts", store.ErrRetryLimitExceeded, s.cfg.MaxGenerationRetries)
}

// GetByIBAN implements store.AccountStore.GetByIBAN
func (s *PostgresAccountStore) GetByIBAN(ctx context.Context, iban string) (*domain.BankAccount, error) {
	query := `
		SELECT iban, currency, balance, created_at, updated_at
		FROM bank_accounts
		WHERE iban = $1
	`

	var account domain.BankAccount
	err := s.db.QueryRowContext(ctx, query, iban).Scan(
		&account.IBAN,
		&account.Currency,
		&account.Balance,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrAccountNotFound
		}
		return nil, err
	}

	return &account, nil
}

// GetOwnedBy implements store.AccountStore.GetOwnedBy
func (s *PostgresAccountStore) GetOwnedBy(ctx context.Context, ownerID uuid.UUID) ([]*domain.BankAccount, error) {
	query := `
		SELECT a.iban, a.currency, a.balance, a.created_at, a.updated_at
		FROM bank_accounts a
		JOIN customer_bank_accounts o ON o.bank_account_id = a.iban
		WHERE o.customer_id = $1
		ORDER BY a.created_at
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			s.logger.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	accounts := make([]*domain.BankAccount, 0)
	for rows.Next() {
		var account domain.BankAccount
		if err := rows.Scan(
			&account.IBAN,
			&account.Currency,
			&account.Balance,
			&account.CreatedAt,
			&account.UpdatedAt,
		); err != nil {
			return nil, err
		}
		accounts = append(accounts, &account)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return accounts, nil
}

// Delete implements store.AccountStore.Delete
// Cards and ownership rows cascade via their foreign keys.
func (s *PostgresAccountStore) Delete(ctx context.Context, iban string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM bank_accounts WHERE iban = $1`, iban)
	if err != nil {
		log.Error("failed to delete bank account",
			slog.String("error", err.Error()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrAccountNotFound); err != nil {
		return err
	}

	log.Info("bank account deleted")
	return nil
}

// BulkDelete implements store.AccountStore.BulkDelete
// Unlike Delete, absence is not an error here: cascade operations call this
// with sets that may already be partially gone.
func (s *PostgresAccountStore) BulkDelete(ctx context.Context, ibans []string) error {
	if len(ibans) == 0 {
		return nil
	}

	_, err := s.db.ExecContext(ctx, `DELETE FROM bank_accounts WHERE iban = ANY($1)`, ibans)
	if err != nil {
		return MapError(err)
	}
	return nil
}

// UpdateBalanceByAmount implements store.AccountStore.UpdateBalanceByAmount
// The arithmetic happens inside the update statement, so concurrent
// applications of deltas to the same account serialize in the database and
// none is lost.
func (s *PostgresAccountStore) UpdateBalanceByAmount(ctx context.Context, iban string, amount float64) error {
	query := `
		UPDATE bank_accounts
		SET balance = balance + $2,
		    updated_at = NOW()
		WHERE iban = $1
	`

	result, err := s.db.ExecContext(ctx, query, iban, amount)
	if err != nil {
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrAccountNotFound)
}

// AssignTo implements store.AccountStore.AssignTo
// The two constraint violations the insert can produce are distinguished by
// subtype: the unique violation on the pair means the relation already
// exists, the foreign key violation on the account means the account does
// not. Neither is pre-checked.
func (s *PostgresAccountStore) AssignTo(ctx context.Context, iban string, ownerID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ownership := domain.Ownership{CustomerID: ownerID, BankAccountIBAN: iban}

	query := `
		INSERT INTO customer_bank_accounts (customer_id, bank_account_id)
		VALUES ($1, $2)
	`
	_, err := s.db.ExecContext(ctx, query, ownership.CustomerID, ownership.BankAccountIBAN)
	if err != nil {
		switch {
		case IsUniqueViolationOn(err, ownershipPKConstraint):
			return fmt.Errorf("%w: %v", store.ErrOwnershipExists, err)
		case isForeignKeyViolationOn(err, ownershipAccountFK):
			return fmt.Errorf("%w: %v", store.ErrAccountNotFound, err)
		case isForeignKeyViolationOn(err, ownershipCustomerFK):
			return fmt.Errorf("%w: %v", store.ErrCustomerNotFound, err)
		}
		log.Error("failed to assign account to customer",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return MapError(err)
	}

	return nil
}
