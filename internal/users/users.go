// Copyright (c) 2026 Millearnia. All rights reserved.
// Author: steph2pro@millearnia.dev

// Package users exposes the administrative view of member accounts:
// paginated listing, lookup, and role management. Authentication and
// credential handling live in the auth package.
package users

import (
	"time"

	"github.com/steph2pro/millearnia/internal/platform/sec"
)

// Account is the administrative projection of a member. The password hash
// never leaves the storage layer of the auth package.
type Account struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Email      string       `json:"email,omitempty"`
	Phone      string       `json:"phone,omitempty"`
	ProfileURL string       `json:"profile_url,omitempty"`
	Role       sec.UserRole `json:"role"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// Field identifiers for validation.
const (
	FieldRole = "role"
)
