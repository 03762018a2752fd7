package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/k0rog/accounts/internal/api"
	apiMiddleware "github.com/k0rog/accounts/internal/api/middleware"
)

// setupRouter configures all routes and middleware. Reads stay public;
// mutating customer routes require a bearer token.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	customerHandler := api.NewCustomerHandler(app.customerService, app.logger)
	accountHandler := api.NewAccountHandler(app.accountService, app.logger)
	cardHandler := api.NewCardHandler(app.cardService, app.logger)
	authHandler := api.NewAuthHandler(app.customerStore, app.jwtService, app.passwordVerifier, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", authHandler.Login)

		r.Post("/customers", customerHandler.Create)
		r.Get("/customers/{id}", customerHandler.Get)
		r.Get("/customers/{id}/accounts", accountHandler.ListOwnedBy)

		r.Get("/accounts/{iban}", accountHandler.Get)
		r.Get("/accounts/{iban}/cards", cardHandler.ListAttachedTo)
		r.Get("/cards/{number}", cardHandler.Get)

		// Mutations require authentication.
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Patch("/customers/{id}", customerHandler.Update)
			r.Delete("/customers/{id}", customerHandler.Delete)
			r.Post("/customers/{id}/accounts", accountHandler.Create)

			r.Post("/accounts/{iban}/balance", accountHandler.UpdateBalance)
			r.Put("/accounts/{iban}/owners/{customerID}", accountHandler.AssignOwner)
			r.Delete("/accounts/{iban}", accountHandler.Delete)

			r.Post("/accounts/{iban}/cards", cardHandler.Create)
			r.Delete("/cards/{number}", cardHandler.Delete)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response",
				"error", err)
		}
	})

	return r
}
