// Package middleware holds HTTP middleware for the api layer.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/k0rog/accounts/internal/api/shared"
	"github.com/k0rog/accounts/internal/service/auth"
)

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates an AuthMiddleware.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	if jwtService == nil {
		panic("middleware: NewAuthMiddleware requires a non-nil JWT service")
	}
	return &AuthMiddleware{jwtService: jwtService}
}

// Authenticate validates the bearer token and adds the customer ID to the
// request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), parts[1])
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			default:
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			}
			return
		}

		ctx := context.WithValue(r.Context(), shared.CustomerIDContextKey, claims.CustomerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetCustomerID extracts the authenticated customer's ID from the request
// context.
func GetCustomerID(r *http.Request) (uuid.UUID, bool) {
	customerID, ok := r.Context().Value(shared.CustomerIDContextKey).(uuid.UUID)
	return customerID, ok
}
