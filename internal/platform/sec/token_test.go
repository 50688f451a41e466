// Copyright (c) 2026 Millearnia. All rights reserved.
// Author: steph2pro@millearnia.dev

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steph2pro/millearnia/internal/platform/sec"
)

func newSigner(t *testing.T) *sec.TokenSigner {
	t.Helper()
	signer, err := sec.NewTokenSigner("access-secret", "refresh-secret", "millearnia.app")
	require.NoError(t, err)
	return signer
}

func TestNewTokenSigner_RejectsBadSecrets(t *testing.T) {
	_, err := sec.NewTokenSigner("", "refresh", "iss")
	assert.Error(t, err)

	_, err = sec.NewTokenSigner("access", "", "iss")
	assert.Error(t, err)

	// Identical secrets would collapse the two token classes into one
	_, err = sec.NewTokenSigner("same", "same", "iss")
	assert.Error(t, err)
}

func TestAccessToken_RoundTrip(t *testing.T) {
	signer := newSigner(t)

	token, err := signer.SignAccess("user-1", "user", 15*time.Minute)
	require.NoError(t, err)

	claims, err := signer.VerifyAccess(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "millearnia.app", claims.Issuer)
}

func TestAccessToken_Expired(t *testing.T) {
	signer := newSigner(t)

	token, err := signer.SignAccess("user-1", "user", -time.Minute)
	require.NoError(t, err)

	_, err = signer.VerifyAccess(token)
	assert.Error(t, err)
}

func TestRefreshToken_RoundTrip(t *testing.T) {
	signer := newSigner(t)

	token, err := signer.SignRefresh("user-1", 24*time.Hour)
	require.NoError(t, err)

	userID, err := signer.VerifyRefresh(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestRefreshToken_UniquePerIssue(t *testing.T) {
	signer := newSigner(t)

	// Two tokens for the same user in the same instant must differ,
	// otherwise rotation could not tell them apart.
	first, err := signer.SignRefresh("user-1", 24*time.Hour)
	require.NoError(t, err)
	second, err := signer.SignRefresh("user-1", 24*time.Hour)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestTokenClasses_AreNotInterchangeable(t *testing.T) {
	signer := newSigner(t)

	accessToken, err := signer.SignAccess("user-1", "user", time.Hour)
	require.NoError(t, err)
	refreshToken, err := signer.SignRefresh("user-1", time.Hour)
	require.NoError(t, err)

	// Cross-verification fails in both directions: distinct secrets.
	_, err = signer.VerifyRefresh(accessToken)
	assert.Error(t, err)

	_, err = signer.VerifyAccess(refreshToken)
	assert.Error(t, err)
}

func TestVerifyRefresh_ForeignSigner(t *testing.T) {
	signer := newSigner(t)

	foreign, err := sec.NewTokenSigner("other-access", "other-refresh", "millearnia.app")
	require.NoError(t, err)

	token, err := foreign.SignRefresh("user-1", time.Hour)
	require.NoError(t, err)

	_, err = signer.VerifyRefresh(token)
	assert.Error(t, err)
}
