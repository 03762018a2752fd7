package auth

import "errors"

// Common authentication errors.
var (
	// ErrInvalidToken indicates the token is malformed or its signature does
	// not match.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrMissingToken indicates a token was expected but not provided.
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrInvalidCredentials indicates the email or password did not match.
	// Covers both "no such customer" and "wrong password" so the login
	// response does not reveal which.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
