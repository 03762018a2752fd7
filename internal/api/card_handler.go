package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/k0rog/accounts/internal/api/shared"
	"github.com/k0rog/accounts/internal/service"
)

// CardHandler handles bank card API requests.
type CardHandler struct {
	cards     *service.CardService
	validator *validator.Validate
	logger    *slog.Logger
}

// NewCardHandler creates a CardHandler.
func NewCardHandler(cards *service.CardService, logger *slog.Logger) *CardHandler {
	if cards == nil {
		panic("api: NewCardHandler requires a non-nil card service")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CardHandler{
		cards:     cards,
		validator: validator.New(),
		logger:    logger.With(slog.String("component", "card_handler")),
	}
}

// Create handles POST /api/accounts/{iban}/cards. The response carries the
// plaintext PIN and CVV exactly once; only hashes are stored.
func (h *CardHandler) Create(w http.ResponseWriter, r *http.Request) {
	iban := chi.URLParam(r, "iban")

	var req CreateCardRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithValidationErrors(w, r, validationErrorMap(err))
		return
	}

	expirationDate, err := parseExpirationDate(req.ExpirationDate)
	if err != nil {
		shared.RespondWithValidationErrors(w, r, map[string]string{
			"expiration_date": "must match format " + cardExpirationLayout,
		})
		return
	}

	card, secrets, err := h.cards.Create(r.Context(), expirationDate, iban)
	if err != nil {
		h.logger.Warn("card creation failed",
			slog.String("error", err.Error()))
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, CreateCardResponse{
		CardResponse: NewCardResponse(card),
		PIN:          secrets.PIN,
		CVV:          secrets.CVV,
	})
}

// Get handles GET /api/cards/{number}.
func (h *CardHandler) Get(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")

	card, err := h.cards.GetByCardNumber(r.Context(), number)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewCardResponse(card))
}

// ListAttachedTo handles GET /api/accounts/{iban}/cards.
func (h *CardHandler) ListAttachedTo(w http.ResponseWriter, r *http.Request) {
	iban := chi.URLParam(r, "iban")

	cards, err := h.cards.GetAttachedTo(r.Context(), iban)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	response := make([]CardResponse, 0, len(cards))
	for _, card := range cards {
		response = append(response, NewCardResponse(card))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// Delete handles DELETE /api/cards/{number}.
func (h *CardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")

	if err := h.cards.Delete(r.Context(), number); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
