// Copyright (c) 2026 Millearnia. All rights reserved.
// Author: steph2pro@millearnia.dev

package sec

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"math/big"
)

// GenerateSecureToken returns a URL-safe random token with byteLength bytes
// of entropy. Used for password reset tokens.
func GenerateSecureToken(byteLength int) (string, error) {
	buf := make([]byte, byteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("sec: failed to generate secure token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// GenerateOTP returns a numeric one-time password with the given number of
// digits (no leading zeros, so a 4-digit OTP is in [1000, 9999]).
func GenerateOTP(digits int) (string, error) {
	if digits < 2 {
		return "", fmt.Errorf("sec: otp must have at least 2 digits")
	}

	// Range [10^(d-1), 10^d) keeps the code exactly d digits long.
	min := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits-1)), nil)
	span := new(big.Int).Mul(min, big.NewInt(9))

	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", fmt.Errorf("sec: failed to generate otp: %w", err)
	}

	return new(big.Int).Add(min, n).String(), nil
}
