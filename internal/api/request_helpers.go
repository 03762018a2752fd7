package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/k0rog/accounts/internal/api/shared"
	"github.com/k0rog/accounts/internal/domain"
)

// DecodeJSON decodes the request body into v, rejecting unknown fields.
func DecodeJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// validationErrorMap flattens validator.ValidationErrors into a field→message
// map for 422 responses.
func validationErrorMap(err error) map[string]string {
	errs := make(map[string]string)

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, fieldErr := range validationErrs {
			switch fieldErr.Tag() {
			case "required":
				errs[fieldErr.Field()] = "is required"
			case "email":
				errs[fieldErr.Field()] = "must be a valid email address"
			case "len":
				errs[fieldErr.Field()] = fmt.Sprintf("must be exactly %s characters", fieldErr.Param())
			case "min":
				errs[fieldErr.Field()] = fmt.Sprintf("must be at least %s characters", fieldErr.Param())
			case "max":
				errs[fieldErr.Field()] = fmt.Sprintf("must be at most %s characters", fieldErr.Param())
			case "gte":
				errs[fieldErr.Field()] = fmt.Sprintf("must be at least %s", fieldErr.Param())
			case "datetime":
				errs[fieldErr.Field()] = fmt.Sprintf("must match format %s", fieldErr.Param())
			default:
				errs[fieldErr.Field()] = "is invalid"
			}
		}
		return errs
	}

	var domainErr *domain.ValidationError
	if errors.As(err, &domainErr) {
		errs[domainErr.Field] = domainErr.Message
		return errs
	}

	errs["body"] = "is invalid"
	return errs
}

// HandleServiceError maps an error from the service layer to a response.
// Validation errors get the per-field 422 shape; everything else gets the
// mapped status with the safe message.
func HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	if status == http.StatusUnprocessableEntity {
		shared.RespondWithValidationErrors(w, r, validationErrorMap(err))
		return
	}
	shared.RespondWithError(w, r, status, GetSafeErrorMessage(err))
}

// getPathUUID extracts and parses a UUID path parameter.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}
	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrValidation)
	}
	return id, nil
}
