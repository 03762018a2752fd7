package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/k0rog/accounts/internal/api/shared"
	"github.com/k0rog/accounts/internal/domain"
	"github.com/k0rog/accounts/internal/service"
	"github.com/k0rog/accounts/internal/store"
)

// CustomerHandler handles customer API requests.
type CustomerHandler struct {
	customers *service.CustomerService
	validator *validator.Validate
	logger    *slog.Logger
}

// NewCustomerHandler creates a CustomerHandler.
func NewCustomerHandler(customers *service.CustomerService, logger *slog.Logger) *CustomerHandler {
	if customers == nil {
		panic("api: NewCustomerHandler requires a non-nil customer service")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CustomerHandler{
		customers: customers,
		validator: validator.New(),
		logger:    logger.With(slog.String("component", "customer_handler")),
	}
}

// Create handles POST /api/customers.
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCustomerRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithValidationErrors(w, r, validationErrorMap(err))
		return
	}

	customer, err := domain.NewCustomer(req.PassportNumber, req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	account, err := h.customers.Create(r.Context(), customer, req.BankAccount.Currency, req.BankAccount.Balance)
	if err != nil {
		h.logger.Warn("customer creation failed",
			slog.String("error", err.Error()))
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, CreateCustomerResponse{
		UUID: customer.ID,
		IBAN: account.IBAN,
	})
}

// Get handles GET /api/customers/{id}.
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	customer, err := h.customers.GetByID(r.Context(), id)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewCustomerResponse(customer))
}

// Update handles PATCH /api/customers/{id}.
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	var req UpdateCustomerRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithValidationErrors(w, r, validationErrorMap(err))
		return
	}

	update := store.CustomerUpdate{
		PassportNumber: req.PassportNumber,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
	}
	if err := h.customers.Update(r.Context(), id, update); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/customers/{id}. Removes the customer's cards,
// accounts and ownership rows along with the customer.
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	if err := h.customers.Delete(r.Context(), id); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
