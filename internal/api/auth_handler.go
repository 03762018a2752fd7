package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/k0rog/accounts/internal/api/shared"
	"github.com/k0rog/accounts/internal/service/auth"
	"github.com/k0rog/accounts/internal/store"
)

// AuthHandler handles authentication API requests.
type AuthHandler struct {
	customers        store.CustomerStore
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	validator        *validator.Validate
	logger           *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(
	customers store.CustomerStore,
	jwtService auth.JWTService,
	passwordVerifier auth.PasswordVerifier,
	logger *slog.Logger,
) *AuthHandler {
	if customers == nil || jwtService == nil || passwordVerifier == nil {
		panic("api: NewAuthHandler requires non-nil dependencies")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		customers:        customers,
		jwtService:       jwtService,
		passwordVerifier: passwordVerifier,
		validator:        validator.New(),
		logger:           logger.With(slog.String("component", "auth_handler")),
	}
}

// Login handles POST /api/auth/login. Unknown email and wrong password both
// answer with the same 401 so the endpoint cannot be used to probe for
// registered addresses.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithValidationErrors(w, r, validationErrorMap(err))
		return
	}

	customer, err := h.customers.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrCustomerNotFound) {
			HandleServiceError(w, r, auth.ErrInvalidCredentials)
			return
		}
		h.logger.Error("failed to look up customer",
			slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to authenticate")
		return
	}

	if err := h.passwordVerifier.Compare(customer.HashedPassword, req.Password); err != nil {
		HandleServiceError(w, r, auth.ErrInvalidCredentials)
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), customer.ID)
	if err != nil {
		h.logger.Error("failed to generate token",
			slog.String("error", err.Error()),
			slog.String("customer_id", customer.ID.String()))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{
		CustomerID: customer.ID,
		Token:      token,
	})
}
