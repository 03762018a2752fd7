// Package testutils provides shared helpers for integration tests that need
// a real PostgreSQL database. Tests using these helpers skip themselves when
// no database is configured, so the default `go test ./...` run stays green
// on machines without one.
package testutils

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/pressly/goose/v3"
)

// envDatabaseURL is the environment variable integration tests read their
// database connection string from.
const envDatabaseURL = "ACCOUNTS_TEST_DATABASE_URL"

// IsIntegrationTestEnvironment reports whether a test database is configured.
func IsIntegrationTestEnvironment() bool {
	return os.Getenv(envDatabaseURL) != ""
}

// MustGetTestDatabaseURL returns the configured test database URL, panicking
// if none is set. Callers should gate on IsIntegrationTestEnvironment first.
func MustGetTestDatabaseURL() string {
	url := os.Getenv(envDatabaseURL)
	if url == "" {
		panic(fmt.Sprintf("%s is not set", envDatabaseURL))
	}
	return url
}

// SetupTestDatabaseSchema brings the connected database to the latest
// migration using goose, so tests always run against the real schema with
// its real constraint names.
func SetupTestDatabaseSchema(db *sql.DB) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db, migrationsDir()); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// ResetTestDatabase truncates all application tables between tests.
func ResetTestDatabase(db *sql.DB) error {
	_, err := db.Exec(`TRUNCATE customers, bank_accounts, bank_cards, customer_bank_accounts CASCADE`)
	if err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}
	return nil
}

// migrationsDir resolves the migrations directory relative to this source
// file, so tests work regardless of the package they run from.
func migrationsDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "migrations")
}
