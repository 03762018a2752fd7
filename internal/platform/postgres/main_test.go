package postgres_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/k0rog/accounts/internal/config"
	"github.com/k0rog/accounts/internal/generation"
	"github.com/k0rog/accounts/internal/testutils"
)

// testDB is shared by all integration tests in this package. It stays nil
// when no test database is configured; unit tests run regardless.
var testDB *sql.DB

// testBankConfig fixes identifier shapes for integration tests.
var testBankConfig = config.BankConfig{
	IBANCountryCode:       "BY",
	IBANBankIdentifier:    "SLNB",
	IBANBBANLength:        10,
	CardPaymentSystemCode: "4",
	CardBankIdentifier:    "29",
	CardIDLength:          12,
	MaxGenerationRetries:  10,
}

func TestMain(m *testing.M) {
	if testutils.IsIntegrationTestEnvironment() {
		var err error
		testDB, err = sql.Open("pgx", testutils.MustGetTestDatabaseURL())
		if err != nil {
			fmt.Printf("Failed to open database connection: %v\n", err)
			os.Exit(1)
		}

		testDB.SetMaxOpenConns(5)
		testDB.SetMaxIdleConns(5)
		testDB.SetConnMaxLifetime(5 * time.Minute)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := testDB.PingContext(ctx); err != nil {
			cancel()
			fmt.Printf("Failed to ping database: %v\n", err)
			os.Exit(1)
		}
		cancel()

		if err := testutils.SetupTestDatabaseSchema(testDB); err != nil {
			fmt.Printf("Failed to setup test database schema: %v\n", err)
			os.Exit(1)
		}

		if err := testutils.ResetTestDatabase(testDB); err != nil {
			fmt.Printf("Failed to reset test database: %v\n", err)
			os.Exit(1)
		}
	}

	exitCode := m.Run()

	if testDB != nil {
		if err := testDB.Close(); err != nil {
			fmt.Printf("Failed to close database connection: %v\n", err)
		}
	}

	os.Exit(exitCode)
}

// requireTestDB skips the calling test when no database is configured. Tests
// in this package generate unique identifiers, so they can share one database
// and run in parallel without stepping on each other.
func requireTestDB(t *testing.T) *sql.DB {
	t.Helper()
	if testDB == nil {
		t.Skip("integration test: set ACCOUNTS_TEST_DATABASE_URL to run")
	}
	return testDB
}

func newTestGenerator() *generation.Generator {
	return generation.NewGenerator()
}
