// Copyright (c) 2026 Millearnia. All rights reserved.
// Author: steph2pro@millearnia.dev

/*
Package auth implements the user identity and session management layer.

It defines the core domain entity (User) and the logic for registration,
credential verification, token issuance, refresh rotation, and account
recovery.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import (
	"time"

	"github.com/steph2pro/millearnia/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Millearnia platform.
type User struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email,omitempty"`
	Phone        string       `json:"phone,omitempty"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	ProfileURL   string       `json:"profile_url,omitempty"`
	Role         sec.UserRole `json:"role"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldName         = "name"
	FieldEmail        = "email"
	FieldPhone        = "phone"
	FieldPassword     = "password"
	FieldIdentifier   = "identifier"
	FieldOTP          = "otp"
	FieldToken        = "token"
	FieldNewPassword  = "new_password"
	FieldAccessToken  = "access_token"
	FieldRefreshToken = "refresh_token"
	FieldTokenType    = "token_type"
	FieldExpiresIn    = "expires_in"
	FieldUser         = "user"
	FieldMessage      = "message"
)
