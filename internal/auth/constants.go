// Copyright (c) 2026 Millearnia. All rights reserved.
// Author: steph2pro@millearnia.dev

package auth

import "time"

// # Token Lifecycle

const (
	// AccessTokenTTL is the lifetime of a short-lived access token.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL is the lifetime of a refresh token. It also bounds the
	// TTL of the per-user refresh-token set in Redis.
	RefreshTokenTTL = 24 * time.Hour
)

// # Account Recovery

const (
	// OTPDigits is the length of the numeric one-time password sent by email.
	OTPDigits = 4

	// OTPTTL is how long an issued OTP remains redeemable.
	OTPTTL = 1 * time.Hour

	// ResetTokenLength is the entropy (in bytes) of a password-reset token.
	ResetTokenLength = 32

	// ResetTokenTTL is how long a verified reset token remains usable.
	ResetTokenTTL = 1 * time.Hour
)

// # Password Policy

const (
	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 8

	// MaxPasswordLength caps input before bcrypt's own 72-byte truncation.
	MaxPasswordLength = 72
)
