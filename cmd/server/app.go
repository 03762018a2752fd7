package main

import (
	"database/sql"
	"log/slog"

	"github.com/k0rog/accounts/internal/config"
	"github.com/k0rog/accounts/internal/generation"
	"github.com/k0rog/accounts/internal/platform/postgres"
	"github.com/k0rog/accounts/internal/service"
	"github.com/k0rog/accounts/internal/service/auth"
	"github.com/k0rog/accounts/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// application bundles the wired dependency graph.
type application struct {
	config *config.Config
	db     *sql.DB
	logger *slog.Logger

	customerStore store.CustomerStore
	accountStore  store.AccountStore
	cardStore     store.CardStore

	customerService *service.CustomerService
	accountService  *service.AccountService
	cardService     *service.CardService

	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
}

// newApplication wires stores, services and auth over the database handle.
// It panics on invalid configuration since nothing can run without it.
func newApplication(cfg *config.Config, db *sql.DB, logger *slog.Logger) *application {
	gen := generation.NewGenerator()

	customerStore := postgres.NewPostgresCustomerStore(db, bcrypt.DefaultCost, logger)
	accountStore := postgres.NewPostgresAccountStore(db, gen, cfg.Bank, logger)
	cardStore := postgres.NewPostgresCardStore(db, gen, cfg.Bank, bcrypt.DefaultCost, logger)

	runner := store.NewSQLRunner(db)

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		panic("invalid auth configuration: " + err.Error())
	}

	return &application{
		config:           cfg,
		db:               db,
		logger:           logger,
		customerStore:    customerStore,
		accountStore:     accountStore,
		cardStore:        cardStore,
		customerService:  service.NewCustomerService(customerStore, accountStore, cardStore, runner, logger),
		accountService:   service.NewAccountService(accountStore, cardStore, runner, logger),
		cardService:      service.NewCardService(cardStore, logger),
		jwtService:       jwtService,
		passwordVerifier: auth.NewBcryptVerifier(),
	}
}
