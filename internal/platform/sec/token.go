// Copyright (c) 2026 Millearnia. All rights reserved.
// Author: steph2pro@millearnia.dev

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via narrow interfaces.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/steph2pro/millearnia/pkg/uuid"
)

// AuthClaims represents the payload embedded inside a JWT access token.
//
// # Why custom claims?
//
// By embedding the UserID and Role directly inside the JWT, the
// [middleware.Authenticate] chain can reconstruct the active user context
// WITHOUT querying the database on every single API request.
//
// The payload is deliberately minimal: never embed the full user record
// (and especially never the password hash) inside a token.
type AuthClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the JWT payload small.
	UserID string `json:"uid"`
	Role   string `json:"rol"`
}

// refreshClaims is the payload of a refresh token: subject plus a unique
// token ID. The ID guarantees two tokens issued within the same second are
// distinct strings, which the rotation set relies on. Refresh tokens are
// additionally validated against the per-user stored set, so carrying more
// state here would only widen the leak surface.
type refreshClaims struct {
	jwt.RegisteredClaims
}

// TokenSigner issues and verifies HS256-signed JWTs for both token classes.
//
// Access and refresh tokens are signed with DISTINCT secrets so that
// possession of one secret cannot forge the other token class.
type TokenSigner struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
}

// NewTokenSigner creates a new TokenSigner.
//
// It rejects empty or identical secrets: the two token classes must never
// share signing material.
func NewTokenSigner(accessSecret, refreshSecret, issuer string) (*TokenSigner, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, errors.New("sec: token secrets must not be empty")
	}
	if accessSecret == refreshSecret {
		return nil, errors.New("sec: access and refresh secrets must be distinct")
	}

	return &TokenSigner{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		issuer:        issuer,
	}, nil
}

// SignAccess creates a new short-lived access token for a user.
func (signer *TokenSigner) SignAccess(userID, role string, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    signer.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		UserID: userID,
		Role:   role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(signer.accessSecret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign access token: %w", err)
	}

	return signedToken, nil
}

// VerifyAccess checks the signature and validity of an access token string.
func (signer *TokenSigner) VerifyAccess(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return signer.accessSecret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("sec: invalid access token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, errors.New("sec: invalid access token claims")
	}

	return claims, nil
}

// SignRefresh creates a new refresh token bound to the given user.
func (signer *TokenSigner) SignRefresh(userID string, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := refreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New(),
			Subject:   userID,
			Issuer:    signer.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(signer.refreshSecret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign refresh token: %w", err)
	}

	return signedToken, nil
}

// VerifyRefresh checks signature and expiry of a refresh token and returns
// the user ID it is bound to.
//
// # Fail Closed
//
// Any malformed, expired, or mis-signed token is rejected. Note that a
// cryptographically valid refresh token is NOT yet a usable one: the caller
// must still check membership in the user's stored refresh-token set.
func (signer *TokenSigner) VerifyRefresh(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &refreshClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return signer.refreshSecret, nil
	})

	if err != nil {
		return "", fmt.Errorf("sec: invalid refresh token: %w", err)
	}

	claims, ok := token.Claims.(*refreshClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", errors.New("sec: invalid refresh token claims")
	}

	return claims.Subject, nil
}
