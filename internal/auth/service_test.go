// Copyright (c) 2026 Millearnia. All rights reserved.
// Author: steph2pro@millearnia.dev

package auth_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steph2pro/millearnia/internal/auth"
	"github.com/steph2pro/millearnia/internal/platform/apperr"
	"github.com/steph2pro/millearnia/internal/platform/sec"
)

// # In-Memory Fakes

// memoryUserRepository is a thread-safe in-memory UserRepository.
type memoryUserRepository struct {
	mu    sync.Mutex
	users map[string]*auth.User // keyed by ID
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: map[string]*auth.User{}}
}

func (r *memoryUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, apperr.NotFound("User")
}

func (r *memoryUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (r *memoryUserRepository) FindByPhone(_ context.Context, phone string) (*auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Phone == phone {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (r *memoryUserRepository) Create(_ context.Context, user *auth.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memoryUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[userID]; ok {
		user.PasswordHash = newHash
	}
	return nil
}

// memoryRefreshTokenRepository mirrors the Redis set semantics: Rotate's
// membership check and swap happen under one lock acquisition, matching the
// per-user atomicity of the Lua script.
type memoryRefreshTokenRepository struct {
	mu   sync.Mutex
	sets map[string]map[string]bool // userID -> token set
}

func newMemoryRefreshTokenRepository() *memoryRefreshTokenRepository {
	return &memoryRefreshTokenRepository{sets: map[string]map[string]bool{}}
}

func (r *memoryRefreshTokenRepository) Replace(_ context.Context, userID, token string, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sets[userID] = map[string]bool{token: true}
	return nil
}

func (r *memoryRefreshTokenRepository) Rotate(_ context.Context, userID, oldToken, newToken string, _ time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set := r.sets[userID]
	if !set[oldToken] {
		return false, nil
	}
	delete(set, oldToken)
	set[newToken] = true
	return true, nil
}

func (r *memoryRefreshTokenRepository) Remove(_ context.Context, userID, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sets[userID], token)
	return nil
}

func (r *memoryRefreshTokenRepository) Clear(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sets, userID)
	return nil
}

// members returns a snapshot of the user's active token set.
func (r *memoryRefreshTokenRepository) members(userID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	tokens := make([]string, 0, len(r.sets[userID]))
	for token := range r.sets[userID] {
		tokens = append(tokens, token)
	}
	return tokens
}

// memoryKVRepository backs both OTPRepository (userID -> code) and
// ResetTokenRepository (token -> userID).
type memoryKVRepository struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemoryKVRepository() *memoryKVRepository {
	return &memoryKVRepository{values: map[string]string{}}
}

func (r *memoryKVRepository) Set(_ context.Context, key, value string, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = value
	return nil
}

func (r *memoryKVRepository) Get(_ context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if value, ok := r.values[key]; ok {
		return value, nil
	}
	return "", apperr.NotFound("Token")
}

func (r *memoryKVRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.values, key)
	return nil
}

// unreachableUserRepository simulates a storage backend that is down: every
// call fails with the same infrastructure error.
type unreachableUserRepository struct {
	err error
}

func (r unreachableUserRepository) FindByID(context.Context, string) (*auth.User, error) {
	return nil, r.err
}

func (r unreachableUserRepository) FindByEmail(context.Context, string) (*auth.User, error) {
	return nil, r.err
}

func (r unreachableUserRepository) FindByPhone(context.Context, string) (*auth.User, error) {
	return nil, r.err
}

func (r unreachableUserRepository) Create(context.Context, *auth.User) error { return r.err }

func (r unreachableUserRepository) UpdatePassword(context.Context, string, string) error {
	return r.err
}

// recordingMailer captures outbound mail instead of sending it.
type recordingMailer struct {
	mu   sync.Mutex
	sent []string // recipient addresses
	body []string
}

func (m *recordingMailer) Send(_ context.Context, to, _ string, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to)
	m.body = append(m.body, body)
	return nil
}

// # Test Harness

type testEnv struct {
	service *auth.Service
	users   *memoryUserRepository
	refresh *memoryRefreshTokenRepository
	otps    *memoryKVRepository
	resets  *memoryKVRepository
	mailer  *recordingMailer
	signer  *sec.TokenSigner
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	signer, err := sec.NewTokenSigner("test-access-secret", "test-refresh-secret", "millearnia.app")
	require.NoError(t, err)

	env := &testEnv{
		users:   newMemoryUserRepository(),
		refresh: newMemoryRefreshTokenRepository(),
		otps:    newMemoryKVRepository(),
		resets:  newMemoryKVRepository(),
		mailer:  &recordingMailer{},
		signer:  signer,
	}

	env.service = auth.NewService(
		env.users,
		env.refresh,
		env.otps,
		env.resets,
		sec.NewBcryptHasher(),
		signer,
		env.mailer,
	)

	return env
}

// registerAna enrolls the canonical test account.
func registerAna(t *testing.T, env *testEnv) *auth.User {
	t.Helper()

	user, err := env.service.Register(context.Background(), auth.RegisterInput{
		Name:     "Ana",
		Email:    "a@x.com",
		Phone:    "+15551234567",
		Password: "longenough",
	})
	require.NoError(t, err)
	return user
}

// newStorageDownEnv wires the service against a user store whose every call
// fails with storeErr.
func newStorageDownEnv(t *testing.T, storeErr error) (*auth.Service, *sec.TokenSigner) {
	t.Helper()

	signer, err := sec.NewTokenSigner("test-access-secret", "test-refresh-secret", "millearnia.app")
	require.NoError(t, err)

	service := auth.NewService(
		unreachableUserRepository{err: storeErr},
		newMemoryRefreshTokenRepository(),
		newMemoryKVRepository(),
		newMemoryKVRepository(),
		sec.NewBcryptHasher(),
		signer,
		&recordingMailer{},
	)

	return service, signer
}

// # Registration

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	registerAna(t, env)

	// Same email, different phone
	_, err := env.service.Register(context.Background(), auth.RegisterInput{
		Name:     "Bob",
		Email:    "a@x.com",
		Phone:    "+15557654321",
		Password: "longenough",
	})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "DUPLICATE_IDENTIFIER", ae.Code)
	assert.Equal(t, 409, ae.HTTPStatus)
}

func TestRegister_DuplicatePhone(t *testing.T) {
	env := newTestEnv(t)
	registerAna(t, env)

	// Same phone, different email
	_, err := env.service.Register(context.Background(), auth.RegisterInput{
		Name:     "Bob",
		Email:    "b@x.com",
		Phone:    "+15551234567",
		Password: "longenough",
	})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "DUPLICATE_IDENTIFIER", ae.Code)
}

func TestRegister_SingleIdentifierAccounts(t *testing.T) {
	env := newTestEnv(t)

	// Email-only
	_, err := env.service.Register(context.Background(), auth.RegisterInput{
		Name:     "Ana",
		Email:    "a@x.com",
		Password: "longenough",
	})
	require.NoError(t, err)

	// Two phone-only accounts must not collide on their empty email
	_, err = env.service.Register(context.Background(), auth.RegisterInput{
		Name:     "Bob",
		Phone:    "+15551234567",
		Password: "longenough",
	})
	require.NoError(t, err)

	_, err = env.service.Register(context.Background(), auth.RegisterInput{
		Name:     "Cleo",
		Phone:    "+15557654321",
		Password: "longenough",
	})
	require.NoError(t, err)

	// Each account logs in through the identifier it registered with
	_, err = env.service.Login(context.Background(), auth.LoginInput{
		Identifier: "a@x.com", Password: "longenough",
	})
	assert.NoError(t, err)

	_, err = env.service.Login(context.Background(), auth.LoginInput{
		Identifier: "+15557654321", Password: "longenough",
	})
	assert.NoError(t, err)
}

func TestRegister_NeverStoresPlaintext(t *testing.T) {
	env := newTestEnv(t)
	user := registerAna(t, env)

	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "longenough", user.PasswordHash)
	assert.Equal(t, sec.RoleUser, user.Role)
}

// # Login

func TestLogin_ByEmailAndByPhone(t *testing.T) {
	env := newTestEnv(t)
	registerAna(t, env)

	byEmail, err := env.service.Login(context.Background(), auth.LoginInput{
		Identifier: "a@x.com",
		Password:   "longenough",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, byEmail.AccessToken)
	assert.NotEmpty(t, byEmail.RefreshToken)

	byPhone, err := env.service.Login(context.Background(), auth.LoginInput{
		Identifier: "+15551234567",
		Password:   "longenough",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, byPhone.AccessToken)
}

func TestLogin_UnknownIdentifier(t *testing.T) {
	env := newTestEnv(t)
	registerAna(t, env)

	_, err := env.service.Login(context.Background(), auth.LoginInput{
		Identifier: "nobody@x.com",
		Password:   "longenough",
	})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t)
	registerAna(t, env)

	_, err := env.service.Login(context.Background(), auth.LoginInput{
		Identifier: "a@x.com",
		Password:   "wrongpassword",
	})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "INVALID_CREDENTIAL", ae.Code)
	assert.Equal(t, 401, ae.HTTPStatus)
}

func TestLogin_ReplacesActiveSession(t *testing.T) {
	env := newTestEnv(t)
	user := registerAna(t, env)

	first, err := env.service.Login(context.Background(), auth.LoginInput{
		Identifier: "a@x.com", Password: "longenough",
	})
	require.NoError(t, err)

	// The set contains exactly the freshly issued token
	assert.Equal(t, []string{first.RefreshToken}, env.refresh.members(user.ID))

	second, err := env.service.Login(context.Background(), auth.LoginInput{
		Identifier: "a@x.com", Password: "longenough",
	})
	require.NoError(t, err)

	// A second login replaces the set; the first session is gone
	assert.Equal(t, []string{second.RefreshToken}, env.refresh.members(user.ID))

	// The replaced token is now a reuse
	_, err = env.service.Refresh(context.Background(), first.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, "TOKEN_REUSED_OR_REVOKED", apperr.As(err).Code)
}

// # Refresh Rotation

func TestRefresh_RotatesAndRejectsReuse(t *testing.T) {
	env := newTestEnv(t)
	registerAna(t, env)

	pair, err := env.service.Login(context.Background(), auth.LoginInput{
		Identifier: "a@x.com", Password: "longenough",
	})
	require.NoError(t, err)

	// First refresh succeeds and yields a brand new pair
	rotated, err := env.service.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	// Replaying the original token must fail: it was rotated out
	_, err = env.service.Refresh(context.Background(), pair.RefreshToken)
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "TOKEN_REUSED_OR_REVOKED", ae.Code)

	// The rotated-in token still works
	_, err = env.service.Refresh(context.Background(), rotated.RefreshToken)
	assert.NoError(t, err)
}

func TestRefresh_WrongSecret(t *testing.T) {
	env := newTestEnv(t)
	user := registerAna(t, env)

	// A forged token signed with foreign secrets
	foreignSigner, err := sec.NewTokenSigner("other-access", "other-refresh", "millearnia.app")
	require.NoError(t, err)
	forged, err := foreignSigner.SignRefresh(user.ID, time.Hour)
	require.NoError(t, err)

	_, err = env.service.Refresh(context.Background(), forged)
	require.Error(t, err)
	assert.Equal(t, "INVALID_TOKEN", apperr.As(err).Code)
}

func TestRefresh_ExpiredToken(t *testing.T) {
	env := newTestEnv(t)
	user := registerAna(t, env)

	// Correctly signed but already expired
	expired, err := env.signer.SignRefresh(user.ID, -time.Minute)
	require.NoError(t, err)

	_, err = env.service.Refresh(context.Background(), expired)
	require.Error(t, err)
	assert.Equal(t, "INVALID_TOKEN", apperr.As(err).Code)
}

func TestRefresh_AccessTokenRejected(t *testing.T) {
	env := newTestEnv(t)
	user := registerAna(t, env)

	// An access token presented as a refresh token fails: distinct secrets
	accessToken, err := env.signer.SignAccess(user.ID, string(sec.RoleUser), time.Hour)
	require.NoError(t, err)

	_, err = env.service.Refresh(context.Background(), accessToken)
	require.Error(t, err)
	assert.Equal(t, "INVALID_TOKEN", apperr.As(err).Code)
}

func TestRefresh_ConcurrentSingleWinner(t *testing.T) {
	env := newTestEnv(t)
	registerAna(t, env)

	pair, err := env.service.Login(context.Background(), auth.LoginInput{
		Identifier: "a@x.com", Password: "longenough",
	})
	require.NoError(t, err)

	const attempts = 8
	var wg sync.WaitGroup
	results := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			_, results[slot] = env.service.Refresh(context.Background(), pair.RefreshToken)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
			continue
		}
		assert.Equal(t, "TOKEN_REUSED_OR_REVOKED", apperr.As(err).Code)
	}

	// Exactly one rotation wins; no double-rotation, no lost update
	assert.Equal(t, 1, winners)
}

// # Storage Failures
//
// A store outage must surface as a server error, never as a protocol outcome
// like NOT_FOUND: the protocol errors are reserved for definitive answers.

func TestLogin_StoreOutageIsAServerError(t *testing.T) {
	storeErr := errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")
	service, _ := newStorageDownEnv(t, storeErr)

	_, err := service.Login(context.Background(), auth.LoginInput{
		Identifier: "a@x.com", Password: "longenough",
	})

	require.Error(t, err)
	require.ErrorIs(t, err, storeErr)
	assert.Nil(t, apperr.As(err))
}

func TestRefresh_StoreOutageIsAServerError(t *testing.T) {
	storeErr := errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")
	service, signer := newStorageDownEnv(t, storeErr)

	// A perfectly valid token whose account lookup hits the outage
	refreshToken, err := signer.SignRefresh("user-1", time.Hour)
	require.NoError(t, err)

	_, err = service.Refresh(context.Background(), refreshToken)

	require.Error(t, err)
	require.ErrorIs(t, err, storeErr)
	assert.Nil(t, apperr.As(err))
}

func TestRegister_StoreOutageIsAServerError(t *testing.T) {
	storeErr := errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")
	service, _ := newStorageDownEnv(t, storeErr)

	// A failed uniqueness check must abort, not count as "no duplicate"
	_, err := service.Register(context.Background(), auth.RegisterInput{
		Name:     "Ana",
		Email:    "a@x.com",
		Phone:    "+15551234567",
		Password: "longenough",
	})

	require.Error(t, err)
	require.ErrorIs(t, err, storeErr)
	assert.Nil(t, apperr.As(err))
}

// # Logout

func TestLogout_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	user := registerAna(t, env)

	pair, err := env.service.Login(context.Background(), auth.LoginInput{
		Identifier: "a@x.com", Password: "longenough",
	})
	require.NoError(t, err)

	require.NoError(t, env.service.Logout(context.Background(), pair.RefreshToken))
	assert.Empty(t, env.refresh.members(user.ID))

	// Logging out again (or with garbage) is still a success
	assert.NoError(t, env.service.Logout(context.Background(), pair.RefreshToken))
	assert.NoError(t, env.service.Logout(context.Background(), "not-a-token"))
}

// # Account Recovery

func TestVerifyIdentifier_EmailSendsOTP(t *testing.T) {
	env := newTestEnv(t)
	registerAna(t, env)

	result, err := env.service.VerifyIdentifier(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, auth.IdentifierEmail, result.Kind)
	assert.True(t, result.OTPSent)
	assert.Equal(t, []string{"a@x.com"}, env.mailer.sent)
}

func TestVerifyIdentifier_PhoneConfirmsOnly(t *testing.T) {
	env := newTestEnv(t)
	registerAna(t, env)

	result, err := env.service.VerifyIdentifier(context.Background(), "+15551234567")
	require.NoError(t, err)
	assert.Equal(t, auth.IdentifierPhone, result.Kind)
	assert.False(t, result.OTPSent)
	assert.Empty(t, env.mailer.sent)
}

func TestVerifyIdentifier_Unknown(t *testing.T) {
	env := newTestEnv(t)
	registerAna(t, env)

	_, err := env.service.VerifyIdentifier(context.Background(), "ghost@x.com")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestRecoveryFlow_EndToEnd(t *testing.T) {
	env := newTestEnv(t)
	user := registerAna(t, env)

	// Keep an active session to verify the reset revokes it
	pair, err := env.service.Login(context.Background(), auth.LoginInput{
		Identifier: "a@x.com", Password: "longenough",
	})
	require.NoError(t, err)

	// Step 1: identifier verification stores and mails an OTP
	_, err = env.service.VerifyIdentifier(context.Background(), "a@x.com")
	require.NoError(t, err)

	// Extract the stored code directly from the fake; it lives under the
	// account it was issued to
	env.otps.mu.Lock()
	code := env.otps.values[user.ID]
	env.otps.mu.Unlock()
	require.NotEmpty(t, code)
	assert.Len(t, code, auth.OTPDigits)

	// Step 2: the OTP redeems for a reset token, single-use
	resetToken, err := env.service.VerifyOTP(context.Background(), "a@x.com", code)
	require.NoError(t, err)
	require.NotEmpty(t, resetToken)

	_, err = env.service.VerifyOTP(context.Background(), "a@x.com", code)
	require.Error(t, err)
	assert.Equal(t, "INVALID_TOKEN", apperr.As(err).Code)

	// Step 3: the reset token updates the password and clears all sessions
	require.NoError(t, env.service.ResetPassword(context.Background(), resetToken, "evenlongerpassword"))
	assert.Empty(t, env.refresh.members(user.ID))

	// Old session's refresh token is dead
	_, err = env.service.Refresh(context.Background(), pair.RefreshToken)
	require.Error(t, err)

	// Old password no longer works; the new one does
	_, err = env.service.Login(context.Background(), auth.LoginInput{
		Identifier: "a@x.com", Password: "longenough",
	})
	require.Error(t, err)

	_, err = env.service.Login(context.Background(), auth.LoginInput{
		Identifier: "a@x.com", Password: "evenlongerpassword",
	})
	assert.NoError(t, err)
}

func TestVerifyOTP_BoundToRequestingAccount(t *testing.T) {
	env := newTestEnv(t)
	ana := registerAna(t, env)

	_, err := env.service.Register(context.Background(), auth.RegisterInput{
		Name:     "Bob",
		Email:    "b@x.com",
		Phone:    "+15557654321",
		Password: "longenough",
	})
	require.NoError(t, err)

	_, err = env.service.VerifyIdentifier(context.Background(), "a@x.com")
	require.NoError(t, err)

	env.otps.mu.Lock()
	code := env.otps.values[ana.ID]
	env.otps.mu.Unlock()
	require.NotEmpty(t, code)

	// Ana's live code must not redeem through Bob's identifier
	_, err = env.service.VerifyOTP(context.Background(), "b@x.com", code)
	require.Error(t, err)
	assert.Equal(t, "INVALID_TOKEN", apperr.As(err).Code)

	// A wrong guess against Ana's account fails too
	guess := "0000"
	if guess == code {
		guess = "1111"
	}
	_, err = env.service.VerifyOTP(context.Background(), "a@x.com", guess)
	require.Error(t, err)
	assert.Equal(t, "INVALID_TOKEN", apperr.As(err).Code)

	// The rightful owner still redeems it
	resetToken, err := env.service.VerifyOTP(context.Background(), "a@x.com", code)
	require.NoError(t, err)
	assert.NotEmpty(t, resetToken)
}

func TestResetPassword_BadToken(t *testing.T) {
	env := newTestEnv(t)
	registerAna(t, env)

	err := env.service.ResetPassword(context.Background(), "bogus", "whatevernew")
	require.Error(t, err)
	assert.Equal(t, "INVALID_TOKEN", apperr.As(err).Code)
}

// # End-to-End Protocol Example

func TestProtocol_RegisterLoginRefreshReuse(t *testing.T) {
	env := newTestEnv(t)

	// Register Ana
	user, err := env.service.Register(context.Background(), auth.RegisterInput{
		Name:     "Ana",
		Email:    "a@x.com",
		Phone:    "+15551234567",
		Password: "longenough",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana", user.Name)

	// Login yields an access+refresh pair whose refresh token is the sole set member
	pair, err := env.service.Login(context.Background(), auth.LoginInput{
		Identifier: "a@x.com", Password: "longenough",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{pair.RefreshToken}, env.refresh.members(user.ID))

	// The access token verifies statelessly and carries the minimal payload
	claims, err := env.signer.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, string(sec.RoleUser), claims.Role)

	// Refresh rotates; re-using the original token is detected
	rotated, err := env.service.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, rotated.AccessToken)

	_, err = env.service.Refresh(context.Background(), pair.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, "TOKEN_REUSED_OR_REVOKED", apperr.As(err).Code)
}
