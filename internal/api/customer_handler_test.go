package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/k0rog/accounts/internal/api"
	"github.com/k0rog/accounts/internal/domain"
	"github.com/k0rog/accounts/internal/mocks"
	"github.com/k0rog/accounts/internal/service"
	"github.com/k0rog/accounts/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// customerRouter mounts a CustomerHandler over the given mock stores.
func customerRouter(customers store.CustomerStore, accounts store.AccountStore, cards store.CardStore) http.Handler {
	svc := service.NewCustomerService(customers, accounts, cards, &mocks.MockRunner{}, nil)
	handler := api.NewCustomerHandler(svc, nil)

	r := chi.NewRouter()
	r.Post("/api/customers", handler.Create)
	r.Get("/api/customers/{id}", handler.Get)
	r.Patch("/api/customers/{id}", handler.Update)
	r.Delete("/api/customers/{id}", handler.Delete)
	return r
}

func validCreateCustomerBody() map[string]interface{} {
	return map[string]interface{}{
		"passport_number": "KH1234567",
		"first_name":      "John",
		"last_name":       "Doe",
		"email":           "john.doe@example.com",
		"password":        "secret-password",
		"bank_account":    map[string]interface{}{"currency": "USD"},
	}
}

func doJSONRequest(t *testing.T, handler http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestCustomerHandlerCreate(t *testing.T) {
	t.Parallel()

	t.Run("created", func(t *testing.T) {
		t.Parallel()

		account := &domain.BankAccount{IBAN: "BY11SLNB0000000001", Currency: domain.CurrencyUSD}
		accounts := &mocks.MockAccountStore{Account: account}
		router := customerRouter(&mocks.MockCustomerStore{}, accounts, &mocks.MockCardStore{})

		rec := doJSONRequest(t, router, http.MethodPost, "/api/customers", validCreateCustomerBody())

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp struct {
			UUID uuid.UUID `json:"uuid"`
			IBAN string    `json:"iban"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEqual(t, uuid.Nil, resp.UUID)
		assert.Equal(t, account.IBAN, resp.IBAN)
	})

	t.Run("duplicate passport answers 400", func(t *testing.T) {
		t.Parallel()

		customers := &mocks.MockCustomerStore{Err: store.ErrPassportExists}
		router := customerRouter(customers, &mocks.MockAccountStore{}, &mocks.MockCardStore{})

		rec := doJSONRequest(t, router, http.MethodPost, "/api/customers", validCreateCustomerBody())

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Customer already exists!"}`, rec.Body.String())
	})

	t.Run("unknown currency answers 400", func(t *testing.T) {
		t.Parallel()

		accounts := &mocks.MockAccountStore{Err: domain.ErrUnknownCurrency}
		router := customerRouter(&mocks.MockCustomerStore{}, accounts, &mocks.MockCardStore{})

		body := validCreateCustomerBody()
		body["bank_account"] = map[string]interface{}{"currency": "GBP"}
		rec := doJSONRequest(t, router, http.MethodPost, "/api/customers", body)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Currency does not exist!"}`, rec.Body.String())
	})

	t.Run("missing fields answer 422 with field map", func(t *testing.T) {
		t.Parallel()

		router := customerRouter(&mocks.MockCustomerStore{}, &mocks.MockAccountStore{}, &mocks.MockCardStore{})

		body := validCreateCustomerBody()
		delete(body, "email")
		rec := doJSONRequest(t, router, http.MethodPost, "/api/customers", body)

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		var resp struct {
			Errors map[string]string `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp.Errors, "Email")
	})

	t.Run("malformed passport answers 422", func(t *testing.T) {
		t.Parallel()

		router := customerRouter(&mocks.MockCustomerStore{}, &mocks.MockAccountStore{}, &mocks.MockCardStore{})

		body := validCreateCustomerBody()
		body["passport_number"] = "123456789"
		rec := doJSONRequest(t, router, http.MethodPost, "/api/customers", body)

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var resp struct {
			Errors map[string]string `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp.Errors, "PassportNumber")
	})

	t.Run("malformed body answers 400", func(t *testing.T) {
		t.Parallel()

		router := customerRouter(&mocks.MockCustomerStore{}, &mocks.MockAccountStore{}, &mocks.MockCardStore{})

		req := httptest.NewRequest(http.MethodPost, "/api/customers", bytes.NewBufferString("{not json"))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCustomerHandlerGet(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		customer, err := domain.NewCustomer("KH1234567", "John", "Doe", "john.doe@example.com", "secret-password")
		require.NoError(t, err)
		require.NoError(t, customer.SetHashedPassword("$2a$10$hash"))

		customers := &mocks.MockCustomerStore{Customer: customer}
		router := customerRouter(customers, &mocks.MockAccountStore{}, &mocks.MockCardStore{})

		rec := doJSONRequest(t, router, http.MethodGet, "/api/customers/"+customer.ID.String(), nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "$2a$10$hash",
			"password hash must never appear in responses")
		assert.Contains(t, rec.Body.String(), "KH1234567")
	})

	t.Run("unknown customer answers 400", func(t *testing.T) {
		t.Parallel()

		customers := &mocks.MockCustomerStore{Err: store.ErrCustomerNotFound}
		router := customerRouter(customers, &mocks.MockAccountStore{}, &mocks.MockCardStore{})

		rec := doJSONRequest(t, router, http.MethodGet, "/api/customers/"+uuid.NewString(), nil)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Customer does not exist!"}`, rec.Body.String())
	})

	t.Run("malformed id answers 422", func(t *testing.T) {
		t.Parallel()

		router := customerRouter(&mocks.MockCustomerStore{}, &mocks.MockAccountStore{}, &mocks.MockCardStore{})

		rec := doJSONRequest(t, router, http.MethodGet, "/api/customers/not-a-uuid", nil)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestCustomerHandlerUpdate(t *testing.T) {
	t.Parallel()

	t.Run("updated", func(t *testing.T) {
		t.Parallel()

		var gotUpdate store.CustomerUpdate
		customers := &mocks.MockCustomerStore{
			UpdateFn: func(ctx context.Context, id uuid.UUID, update store.CustomerUpdate) error {
				gotUpdate = update
				return nil
			},
		}
		router := customerRouter(customers, &mocks.MockAccountStore{}, &mocks.MockCardStore{})

		body := map[string]interface{}{"first_name": "Jane"}
		rec := doJSONRequest(t, router, http.MethodPatch, "/api/customers/"+uuid.NewString(), body)

		require.Equal(t, http.StatusNoContent, rec.Code)
		require.NotNil(t, gotUpdate.FirstName)
		assert.Equal(t, "Jane", *gotUpdate.FirstName)
		assert.Nil(t, gotUpdate.Email)
	})

	t.Run("unknown customer answers 400", func(t *testing.T) {
		t.Parallel()

		customers := &mocks.MockCustomerStore{Err: store.ErrCustomerNotFound}
		router := customerRouter(customers, &mocks.MockAccountStore{}, &mocks.MockCardStore{})

		body := map[string]interface{}{"first_name": "Jane"}
		rec := doJSONRequest(t, router, http.MethodPatch, "/api/customers/"+uuid.NewString(), body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCustomerHandlerDelete(t *testing.T) {
	t.Parallel()

	t.Run("deleted", func(t *testing.T) {
		t.Parallel()

		customers := &mocks.MockCustomerStore{}
		router := customerRouter(customers, &mocks.MockAccountStore{}, &mocks.MockCardStore{})

		rec := doJSONRequest(t, router, http.MethodDelete, "/api/customers/"+uuid.NewString(), nil)

		require.Equal(t, http.StatusNoContent, rec.Code)
		assert.Len(t, customers.DeleteCalls, 1)
	})

	t.Run("unknown customer answers 400", func(t *testing.T) {
		t.Parallel()

		customers := &mocks.MockCustomerStore{Err: store.ErrCustomerNotFound}
		router := customerRouter(customers, &mocks.MockAccountStore{}, &mocks.MockCardStore{})

		rec := doJSONRequest(t, router, http.MethodDelete, "/api/customers/"+uuid.NewString(), nil)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Customer does not exist!"}`, rec.Body.String())
	})
}
