package api_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/k0rog/accounts/internal/api"
	"github.com/k0rog/accounts/internal/domain"
	"github.com/k0rog/accounts/internal/mocks"
	"github.com/k0rog/accounts/internal/service"
	"github.com/k0rog/accounts/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cardRouter(cards store.CardStore) http.Handler {
	svc := service.NewCardService(cards, nil)
	handler := api.NewCardHandler(svc, nil)

	r := chi.NewRouter()
	r.Post("/api/accounts/{iban}/cards", handler.Create)
	r.Get("/api/accounts/{iban}/cards", handler.ListAttachedTo)
	r.Get("/api/cards/{number}", handler.Get)
	r.Delete("/api/cards/{number}", handler.Delete)
	return r
}

func testCard() *domain.BankCard {
	return &domain.BankCard{
		CardNumber:      "4291111111111111",
		ExpirationDate:  time.Date(2029, 6, 1, 0, 0, 0, 0, time.UTC),
		PINHash:         "$2a$10$pinhash",
		CVVHash:         "$2a$10$cvvhash",
		BankAccountIBAN: "BY11SLNB0000000001",
	}
}

func TestCardHandlerCreate(t *testing.T) {
	t.Parallel()

	t.Run("created with one-time secrets", func(t *testing.T) {
		t.Parallel()

		cards := &mocks.MockCardStore{
			Card:    testCard(),
			Secrets: &store.CardSecrets{PIN: "1234", CVV: "567"},
		}
		router := cardRouter(cards)

		body := map[string]interface{}{"expiration_date": "2029-06-01"}
		rec := doJSONRequest(t, router, http.MethodPost, "/api/accounts/BY11SLNB0000000001/cards", body)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"pin":"1234"`)
		assert.Contains(t, rec.Body.String(), `"cvv":"567"`)
		assert.Contains(t, rec.Body.String(), `"expiration_date":"2029-06-01"`)
		assert.NotContains(t, rec.Body.String(), "pinhash",
			"stored hashes must never appear in responses")
	})

	t.Run("unknown account answers 400", func(t *testing.T) {
		t.Parallel()

		router := cardRouter(&mocks.MockCardStore{Err: store.ErrAccountNotFound})

		body := map[string]interface{}{"expiration_date": "2029-06-01"}
		rec := doJSONRequest(t, router, http.MethodPost, "/api/accounts/BY00SLNB0000000000/cards", body)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"BankAccount does not exist!"}`, rec.Body.String())
	})

	t.Run("bad date answers 422", func(t *testing.T) {
		t.Parallel()

		router := cardRouter(&mocks.MockCardStore{})

		body := map[string]interface{}{"expiration_date": "06/2029"}
		rec := doJSONRequest(t, router, http.MethodPost, "/api/accounts/BY11SLNB0000000001/cards", body)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestCardHandlerGet(t *testing.T) {
	t.Parallel()

	t.Run("found without hashes", func(t *testing.T) {
		t.Parallel()

		router := cardRouter(&mocks.MockCardStore{Card: testCard()})

		rec := doJSONRequest(t, router, http.MethodGet, "/api/cards/4291111111111111", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "4291111111111111")
		assert.NotContains(t, rec.Body.String(), "pinhash")
		assert.NotContains(t, rec.Body.String(), "cvvhash")
	})

	t.Run("unknown card answers 400", func(t *testing.T) {
		t.Parallel()

		router := cardRouter(&mocks.MockCardStore{Err: store.ErrCardNotFound})

		rec := doJSONRequest(t, router, http.MethodGet, "/api/cards/4290000000000000", nil)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"BankCard does not exist!"}`, rec.Body.String())
	})
}

func TestCardHandlerListAttachedTo(t *testing.T) {
	t.Parallel()

	router := cardRouter(&mocks.MockCardStore{Cards: []*domain.BankCard{testCard()}})

	rec := doJSONRequest(t, router, http.MethodGet, "/api/accounts/BY11SLNB0000000001/cards", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "4291111111111111")
}

func TestCardHandlerDelete(t *testing.T) {
	t.Parallel()

	t.Run("deleted", func(t *testing.T) {
		t.Parallel()

		router := cardRouter(&mocks.MockCardStore{Deleted: true})

		rec := doJSONRequest(t, router, http.MethodDelete, "/api/cards/4291111111111111", nil)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("absent card answers 400", func(t *testing.T) {
		t.Parallel()

		router := cardRouter(&mocks.MockCardStore{Deleted: false})

		rec := doJSONRequest(t, router, http.MethodDelete, "/api/cards/4290000000000000", nil)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"BankCard does not exist!"}`, rec.Body.String())
	})
}
