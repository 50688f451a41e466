// Copyright (c) 2026 Millearnia. All rights reserved.
// Author: steph2pro@millearnia.dev

package auth

import (
	"context"
	"time"

	"github.com/steph2pro/millearnia/internal/platform/sec"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		FindByPhone returns the account with the given phone number.

		Parameters:
		  - context: context.Context
		  - phone: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByPhone(context context.Context, phone string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		UpdatePassword replaces only the user's password hash.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - newHash: string

		Returns:
		  - error: Persistence failures
	*/
	UpdatePassword(context context.Context, userID, newHash string) error
}

// # Refresh Token Set Access

// RefreshTokenRepository manages the per-user set of currently valid refresh
// tokens.
//
// # Single Active Session
//
// At most one refresh token is valid per user at any moment. Replace and
// Rotate both leave the set with exactly one member; Clear empties it. The
// implementation must make Rotate atomic per user so that concurrent refresh
// attempts with the same token produce exactly one winner.
type RefreshTokenRepository interface {

	/*
		Replace discards every stored token for the user and installs the new
		token as the sole member of the set.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - token: string
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Replace(context context.Context, userID, token string, ttl time.Duration) error

	/*
		Rotate atomically swaps oldToken for newToken in the user's set.

		Description: If oldToken is not a member, the set is left untouched and
		rotated is false. The swap and the membership check happen as one
		indivisible step per user.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - oldToken: string
		  - newToken: string
		  - ttl: time.Duration

		Returns:
		  - bool: Whether the rotation won (oldToken was present)
		  - error: Persistence failures
	*/
	Rotate(context context.Context, userID, oldToken, newToken string, ttl time.Duration) (bool, error)

	/*
		Remove deletes a single token from the user's set.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - token: string

		Returns:
		  - error: Persistence failures
	*/
	Remove(context context.Context, userID, token string) error

	/*
		Clear empties the user's refresh-token set, revoking every session.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Persistence failures
	*/
	Clear(context context.Context, userID string) error
}

// # Volatile Data Access

// OTPRepository stores short-lived one-time password codes for account
// recovery, keyed by the account they were issued to. Keying by user binds a
// code to a single account and lets a re-request overwrite the previous code.
type OTPRepository interface {

	/*
		Set stores the user's current OTP code for a limited duration,
		replacing any previously issued code.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - code: string
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Set(context context.Context, userID string, code string, ttl time.Duration) error

	/*
		Get retrieves the OTP code currently issued to the user.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - string: Code
		  - error: apperr.NotFound if absent or expired
	*/
	Get(context context.Context, userID string) (string, error)

	/*
		Delete removes the user's OTP code after successful use.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, userID string) error
}

// ResetTokenRepository stores volatile password-reset tokens issued after a
// successful OTP verification.
type ResetTokenRepository interface {

	/*
		Set stores a reset token associated with a userID for a limited duration.

		Parameters:
		  - context: context.Context
		  - token: string
		  - userID: string
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Set(context context.Context, token string, userID string, ttl time.Duration) error

	/*
		Get retrieves the userID associated with a given reset token.

		Parameters:
		  - context: context.Context
		  - token: string

		Returns:
		  - string: UserID
		  - error: apperr.NotFound if absent or expired
	*/
	Get(context context.Context, token string) (string, error)

	/*
		Delete removes a reset token after successful use.

		Parameters:
		  - context: context.Context
		  - token: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, token string) error
}

// # Security Contracts

// PasswordHasher abstracts the one-way password hashing scheme.
type PasswordHasher interface {
	// Hash derives a storable hash from a plain-text password.
	Hash(plain string) (string, error)

	// Compare reports whether plain matches the stored hash using a
	// constant-time comparison.
	Compare(existingHash, plain string) bool
}

// TokenIssuer abstracts the signing and verification of both token classes.
type TokenIssuer interface {
	// SignAccess creates a short-lived access token carrying user ID and role.
	SignAccess(userID, role string, timeToLive time.Duration) (string, error)

	// SignRefresh creates a refresh token bound to the given user.
	SignRefresh(userID string, timeToLive time.Duration) (string, error)

	// VerifyAccess checks signature and validity of an access token.
	VerifyAccess(tokenString string) (*sec.AuthClaims, error)

	// VerifyRefresh checks signature and expiry of a refresh token and
	// returns the user ID it is bound to.
	VerifyRefresh(tokenString string) (string, error)
}

// Mailer abstracts outbound transactional mail (OTP delivery).
type Mailer interface {
	// Send delivers a plain-text email to a single recipient.
	Send(context context.Context, to, subject, body string) error
}
