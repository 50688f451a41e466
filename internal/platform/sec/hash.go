// Copyright (c) 2026 Millearnia. All rights reserved.
// Author: steph2pro@millearnia.dev

package sec

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher hashes and verifies passwords using the bcrypt algorithm.
//
// It exists as a struct (rather than package functions) so that domain
// services can depend on a narrow hasher interface and substitute a cheap
// fake in tests.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher using the bcrypt default cost, which
// balances security against CPU utilization during registration spikes.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

// Hash hashes a plain-text password.
func (hasher *BcryptHasher) Hash(plainTextPassword string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), hasher.cost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// Compare checks a plain-text password against its hashed version.
// bcrypt performs a constant-time comparison internally.
func (hasher *BcryptHasher) Compare(existingHash, plainTextPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword))
	return err == nil
}
