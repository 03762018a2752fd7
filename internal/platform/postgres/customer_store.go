package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/k0rog/accounts/internal/domain"
	"github.com/k0rog/accounts/internal/platform/logger"
	"github.com/k0rog/accounts/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// passportUniqueConstraint is the unique constraint guarding passport numbers.
const passportUniqueConstraint = "customers_passport_number_key"

// PostgresCustomerStore implements the store.CustomerStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCustomerStore struct {
	db         store.DBTX
	bcryptCost int
	logger     *slog.Logger
}

// NewPostgresCustomerStore creates a new PostgreSQL implementation of the
// CustomerStore interface. It accepts a database connection or transaction
// managed by the caller and the bcrypt cost used for password hashing.
// If logger is nil, a default logger will be used.
func NewPostgresCustomerStore(db store.DBTX, bcryptCost int, logger *slog.Logger) *PostgresCustomerStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCustomerStore{
		db:         db,
		bcryptCost: bcryptCost,
		logger:     logger.With(slog.String("component", "customer_store")),
	}
}

// Ensure PostgresCustomerStore implements store.CustomerStore interface
var _ store.CustomerStore = (*PostgresCustomerStore)(nil)

// WithTx implements store.CustomerStore.WithTx
func (s *PostgresCustomerStore) WithTx(tx *sql.Tx) store.CustomerStore {
	return &PostgresCustomerStore{
		db:         tx,
		bcryptCost: s.bcryptCost,
		logger:     s.logger,
	}
}

// Create implements store.CustomerStore.Create
// It validates the customer, hashes the plaintext password and inserts the
// row. A duplicate passport number is detected by the unique constraint at
// commit time and surfaces as store.ErrPassportExists; there is no
// check-then-act pre-query.
func (s *PostgresCustomerStore) Create(ctx context.Context, customer *domain.Customer) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := customer.Validate(); err != nil {
		log.Warn("customer validation failed during create",
			slog.String("error", err.Error()))
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(customer.Password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := customer.SetHashedPassword(string(hash)); err != nil {
		return fmt.Errorf("%w: password hash", store.ErrAccessDenied)
	}

	query := `
		INSERT INTO customers (id, passport_number, first_name, last_name, email, hashed_password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		customer.ID,
		customer.PassportNumber,
		customer.FirstName,
		customer.LastName,
		customer.Email,
		customer.HashedPassword,
		customer.CreatedAt,
		customer.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolationOn(err, passportUniqueConstraint) {
			log.Warn("duplicate passport number during customer creation",
				slog.String("customer_id", customer.ID.String()))
			return fmt.Errorf("%w: %v", store.ErrPassportExists, err)
		}

		log.Error("failed to create customer",
			slog.String("error", err.Error()),
			slog.String("customer_id", customer.ID.String()))
		return MapError(err)
	}

	log.Info("customer created",
		slog.String("customer_id", customer.ID.String()))
	return nil
}

// customerColumns is the select list shared by the read paths.
const customerColumns = `id, passport_number, first_name, last_name, email, hashed_password, created_at, updated_at`

func (s *PostgresCustomerStore) scanCustomer(row *sql.Row) (*domain.Customer, error) {
	var customer domain.Customer
	err := row.Scan(
		&customer.ID,
		&customer.PassportNumber,
		&customer.FirstName,
		&customer.LastName,
		&customer.Email,
		&customer.HashedPassword,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCustomerNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// GetByID implements store.CustomerStore.GetByID
func (s *PostgresCustomerStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	return s.scanCustomer(s.db.QueryRowContext(ctx, query, id))
}

// GetByEmail implements store.CustomerStore.GetByEmail
func (s *PostgresCustomerStore) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE email = $1`
	return s.scanCustomer(s.db.QueryRowContext(ctx, query, email))
}

// Update implements store.CustomerStore.Update
// Only the supplied fields are written. Passport collisions with another
// customer surface as store.ErrPassportExists, again caught at commit.
func (s *PostgresCustomerStore) Update(ctx context.Context, id uuid.UUID, update store.CustomerUpdate) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if update.Empty() {
		return nil
	}

	set := make([]string, 0, 5)
	args := make([]any, 0, 6)
	args = append(args, id)

	appendField := func(column string, value string) {
		args = append(args, value)
		set = append(set, column+" = $"+strconv.Itoa(len(args)))
	}

	if update.PassportNumber != nil {
		appendField("passport_number", domain.NormalizePassportNumber(*update.PassportNumber))
	}
	if update.FirstName != nil {
		appendField("first_name", *update.FirstName)
	}
	if update.LastName != nil {
		appendField("last_name", *update.LastName)
	}
	if update.Email != nil {
		appendField("email", *update.Email)
	}

	args = append(args, time.Now().UTC())
	set = append(set, "updated_at = $"+strconv.Itoa(len(args)))

	query := "UPDATE customers SET "
	for i, clause := range set {
		if i > 0 {
			query += ", "
		}
		query += clause
	}
	query += " WHERE id = $1"

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		if IsUniqueViolationOn(err, passportUniqueConstraint) {
			return fmt.Errorf("%w: %v", store.ErrPassportExists, err)
		}
		log.Error("failed to update customer",
			slog.String("error", err.Error()),
			slog.String("customer_id", id.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrCustomerNotFound)
}

// Delete implements store.CustomerStore.Delete
// Ownership rows cascade in the database. The affected-row count stands in
// for an existence pre-check so the caller can distinguish "deleted" from
// "no-op".
func (s *PostgresCustomerStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete customer",
			slog.String("error", err.Error()),
			slog.String("customer_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrCustomerNotFound); err != nil {
		return err
	}

	log.Info("customer deleted", slog.String("customer_id", id.String()))
	return nil
}

// HasAccount implements store.CustomerStore.HasAccount
func (s *PostgresCustomerStore) HasAccount(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM customer_bank_accounts WHERE customer_id = $1)`,
		id,
	).Scan(&exists)
	if err != nil {
		return false, MapError(err)
	}
	return exists, nil
}
