package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/k0rog/accounts/internal/api/shared"
	"github.com/k0rog/accounts/internal/service"
)

// AccountHandler handles bank account API requests.
type AccountHandler struct {
	accounts  *service.AccountService
	validator *validator.Validate
	logger    *slog.Logger
}

// NewAccountHandler creates an AccountHandler.
func NewAccountHandler(accounts *service.AccountService, logger *slog.Logger) *AccountHandler {
	if accounts == nil {
		panic("api: NewAccountHandler requires a non-nil account service")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountHandler{
		accounts:  accounts,
		validator: validator.New(),
		logger:    logger.With(slog.String("component", "account_handler")),
	}
}

// Create handles POST /api/customers/{id}/accounts.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, err := getPathUUID(r, "id")
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	var req CreateAccountRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithValidationErrors(w, r, validationErrorMap(err))
		return
	}

	account, err := h.accounts.Create(r.Context(), req.Currency, req.Balance, ownerID)
	if err != nil {
		h.logger.Warn("account creation failed",
			slog.String("error", err.Error()))
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewAccountResponse(account))
}

// Get handles GET /api/accounts/{iban}.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	iban := chi.URLParam(r, "iban")

	account, err := h.accounts.GetByIBAN(r.Context(), iban)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewAccountResponse(account))
}

// ListOwnedBy handles GET /api/customers/{id}/accounts.
func (h *AccountHandler) ListOwnedBy(w http.ResponseWriter, r *http.Request) {
	ownerID, err := getPathUUID(r, "id")
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	accounts, err := h.accounts.GetOwnedBy(r.Context(), ownerID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	response := make([]AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		response = append(response, NewAccountResponse(account))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// UpdateBalance handles POST /api/accounts/{iban}/balance. The amount is a
// signed delta; deposits are positive, withdrawals negative.
func (h *AccountHandler) UpdateBalance(w http.ResponseWriter, r *http.Request) {
	iban := chi.URLParam(r, "iban")

	var req UpdateBalanceRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithValidationErrors(w, r, validationErrorMap(err))
		return
	}

	if err := h.accounts.UpdateBalanceByAmount(r.Context(), iban, *req.Amount); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AssignOwner handles PUT /api/accounts/{iban}/owners/{customerID}.
func (h *AccountHandler) AssignOwner(w http.ResponseWriter, r *http.Request) {
	iban := chi.URLParam(r, "iban")
	ownerID, err := getPathUUID(r, "customerID")
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	if err := h.accounts.AssignTo(r.Context(), iban, ownerID); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/accounts/{iban}. Attached cards go with the
// account.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	iban := chi.URLParam(r, "iban")

	if err := h.accounts.Delete(r.Context(), iban); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
