// Copyright (c) 2026 Millearnia. All rights reserved.
// Author: steph2pro@millearnia.dev

package auth

import (
	"net/http"

	"github.com/steph2pro/millearnia/internal/platform/apperr"
)

// # Protocol Outcomes
//
// These are deliberate, client-facing results of the authentication protocol,
// not infrastructure failures. Each carries a stable machine-readable code so
// API clients can branch on them without parsing messages.

// ErrDuplicateIdentifier reports that the email or phone is already registered.
// The offending field name is included so the client can highlight it.
func ErrDuplicateIdentifier(field string) *apperr.AppError {
	return apperr.New(http.StatusConflict, "DUPLICATE_IDENTIFIER",
		"An account with this "+field+" already exists")
}

// ErrInvalidCredential reports a failed login attempt.
//
// The message is identical for "unknown account" and "wrong password" to
// prevent account enumeration. NOT_FOUND is reserved for the lookup phase
// where the identifier itself resolves to no account.
func ErrInvalidCredential() *apperr.AppError {
	return apperr.New(http.StatusUnauthorized, "INVALID_CREDENTIAL",
		"Invalid login credentials")
}

// ErrAccountNotFound reports that no account matches the given identifier.
func ErrAccountNotFound() *apperr.AppError {
	return apperr.New(http.StatusNotFound, "NOT_FOUND", "Account not found")
}

// ErrInvalidToken reports a token that fails cryptographic verification:
// bad signature, expired, malformed, or wrong token class.
func ErrInvalidToken() *apperr.AppError {
	return apperr.New(http.StatusUnauthorized, "INVALID_TOKEN",
		"Invalid or expired token")
}

// ErrTokenReusedOrRevoked reports a cryptographically valid refresh token
// that is no longer a member of the user's active set. This is the replay
// detection outcome: the token was already rotated, replaced by a newer
// login, or revoked by logout.
func ErrTokenReusedOrRevoked() *apperr.AppError {
	return apperr.New(http.StatusUnauthorized, "TOKEN_REUSED_OR_REVOKED",
		"Refresh token has been used or revoked")
}
