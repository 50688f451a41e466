// Copyright (c) 2026 Millearnia. All rights reserved.
// Author: steph2pro@millearnia.dev

package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"
	"time"

	"github.com/steph2pro/millearnia/internal/platform/apperr"
	"github.com/steph2pro/millearnia/internal/platform/sec"
	"github.com/steph2pro/millearnia/pkg/uuid"
)

// Service implements the authentication protocol use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, token
// issuance, or rotation logic must be reviewed by the security team.
type Service struct {
	userRepository         UserRepository
	refreshTokenRepository RefreshTokenRepository
	otpRepository          OTPRepository
	resetTokenRepository   ResetTokenRepository
	passwordHasher         PasswordHasher
	tokenIssuer            TokenIssuer
	mailer                 Mailer
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	refreshRepo RefreshTokenRepository,
	otpRepo OTPRepository,
	resetRepo ResetTokenRepository,
	hasher PasswordHasher,
	issuer TokenIssuer,
	mailer Mailer,
) *Service {
	return &Service{
		userRepository:         userRepo,
		refreshTokenRepository: refreshRepo,
		otpRepository:          otpRepo,
		resetTokenRepository:   resetRepo,
		passwordHasher:         hasher,
		tokenIssuer:            issuer,
		mailer:                 mailer,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Name       string
	Email      string
	Phone      string
	Password   string
	ProfileURL string
}

/*
Register validates, hashes, and persists a brand new user account.

Description: An account carries an email, a phone number, or both; each
provided identifier must be globally unique, and the first duplicate found
wins and names the offending field. Only a definitive "no such account"
answer from the store passes the uniqueness check — a storage failure aborts
the registration instead of masking a possible duplicate.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity (password hash never serialized)
  - error: ErrDuplicateIdentifier or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {

	// Verify email uniqueness. Return a client-safe Conflict error.
	if input.Email != "" {
		_, err := service.userRepository.FindByEmail(context, input.Email)
		switch {
		case err == nil:
			return nil, ErrDuplicateIdentifier(FieldEmail)
		case !isNotFound(err):
			return nil, fmt.Errorf("auth_service_email_check_failed: %w", err)
		}
	}

	// Verify phone uniqueness. Return a client-safe Conflict error.
	if input.Phone != "" {
		_, err := service.userRepository.FindByPhone(context, input.Phone)
		switch {
		case err == nil:
			return nil, ErrDuplicateIdentifier(FieldPhone)
		case !isNotFound(err):
			return nil, fmt.Errorf("auth_service_phone_check_failed: %w", err)
		}
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := service.passwordHasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuid.New(),
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: hashedPassword,
		ProfileURL:   input.ProfileURL,
		Role:         sec.RoleUser,
	}

	// Persist the user to the database
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Identifier string // Email or phone; routed by ClassifyIdentifier.
	Password   string
}

// TokenPair represents a successfully issued access/refresh token pair.
type TokenPair struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *User
}

/*
Login validates user credentials and issues a fresh token pair.

Description: The identifier is classified as email or phone (presence of '@'
decides), the matching account is loaded, and the password is verified with a
constant-time comparison. On success the user's refresh-token set is REPLACED
with the newly issued token: logging in invalidates every prior session.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *TokenPair: Transport-ready session credentials
  - error: ErrAccountNotFound, ErrInvalidCredential, or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*TokenPair, error) {

	// Route the lookup by identifier kind. Only a definitive miss maps to the
	// protocol outcome; a storage failure stays a server error.
	user, err := service.findByIdentifier(context, input.Identifier)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrAccountNotFound()
		}
		return nil, fmt.Errorf("auth_service_login_lookup_failed: %w", err)
	}

	// Verify password hash using constant-time comparison in bcrypt to prevent timing attacks
	if !service.passwordHasher.Compare(user.PasswordHash, input.Password) {
		return nil, ErrInvalidCredential()
	}

	// Issue the pair and install the refresh token as the SOLE active session
	return service.issuePair(context, user, true, "")
}

/*
Logout removes the presented refresh token from the user's active set.

Description: Idempotent — an already-rotated or unknown token is treated as a
successful logout.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - error: Revocation failures
*/
func (service *Service) Logout(context context.Context, refreshToken string) error {

	// A token that fails verification has no session to end
	userID, err := service.tokenIssuer.VerifyRefresh(refreshToken)
	if err != nil {
		return nil
	}

	if err := service.refreshTokenRepository.Remove(context, userID, refreshToken); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	return nil
}

// # Refresh Token Rotation

/*
Refresh implements the refresh-token rotation mechanism.

Description: A refresh token is only honored when it is BOTH cryptographically
valid AND currently a member of the owning account's stored set. The swap of
old-for-new is atomic per user: of two concurrent calls presenting the same
token, exactly one wins; the loser observes a reuse.

Flow:
 1. Verify signature and expiry with the refresh secret (ErrInvalidToken).
 2. Load the bound account (ErrAccountNotFound).
 3. Atomically swap the presented token for a freshly signed one; a failed
    membership check means the token was already rotated out, replaced by a
    newer login, or revoked (ErrTokenReusedOrRevoked).
 4. Issue a new access token bound to the same account.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - *TokenPair: New session credentials
  - error: ErrInvalidToken, ErrAccountNotFound, ErrTokenReusedOrRevoked, or storage failures
*/
func (service *Service) Refresh(context context.Context, refreshToken string) (*TokenPair, error) {

	// 1. Cryptographic verification (signature + expiry). Fails closed.
	userID, err := service.tokenIssuer.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, ErrInvalidToken()
	}

	// 2. Load the account the token is bound to
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrAccountNotFound()
		}
		return nil, fmt.Errorf("auth_service_refresh_lookup_failed: %w", err)
	}

	// 3 + 4. Atomic membership check and swap, then a fresh access token
	return service.issuePair(context, user, false, refreshToken)
}

// issuePair signs a new access/refresh pair and installs the refresh token.
//
// When replace is true the user's whole set is replaced (login semantics);
// otherwise the oldToken is atomically rotated out (refresh semantics).
func (service *Service) issuePair(context context.Context, user *User, replace bool, oldToken string) (*TokenPair, error) {

	// Generate short-lived Access Token
	accessToken, err := service.tokenIssuer.SignAccess(user.ID, string(user.Role), AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_access_token_failed: %w", err)
	}

	// Generate long-lived Refresh Token
	newRefreshToken, err := service.tokenIssuer.SignRefresh(user.ID, RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	// Install the new token in the user's active set
	if replace {
		if err := service.refreshTokenRepository.Replace(context, user.ID, newRefreshToken, RefreshTokenTTL); err != nil {
			return nil, fmt.Errorf("auth_service_replace_failed: %w", err)
		}
	} else {
		rotated, err := service.refreshTokenRepository.Rotate(context, user.ID, oldToken, newRefreshToken, RefreshTokenTTL)
		if err != nil {
			return nil, fmt.Errorf("auth_service_rotate_failed: %w", err)
		}

		// A valid signature on a non-member token is the replay signal
		if !rotated {
			return nil, ErrTokenReusedOrRevoked()
		}
	}

	return &TokenPair{
		AccessToken:           accessToken,
		RefreshToken:          newRefreshToken,
		RefreshTokenExpiresAt: time.Now().Add(RefreshTokenTTL),
		User:                  user,
	}, nil
}

// # Account Recovery

// VerifyIdentifierResult reports which channel the recovery flow continues on.
type VerifyIdentifierResult struct {
	Kind IdentifierKind `json:"kind"`
	// OTPSent is true when a one-time password was emailed to the account.
	OTPSent bool `json:"otp_sent"`
}

/*
VerifyIdentifier initiates the forgot-password flow.

Description: Looks up the account behind the identifier. For an email
identifier a numeric OTP is generated, stored with a TTL, and emailed to the
account. For a phone identifier only the account's existence is confirmed
(SMS delivery is handled by the mobile client).

Parameters:
  - context: context.Context
  - identifier: string

Returns:
  - *VerifyIdentifierResult: Which recovery channel applies
  - error: ErrAccountNotFound or delivery failures
*/
func (service *Service) VerifyIdentifier(context context.Context, identifier string) (*VerifyIdentifierResult, error) {

	classified := ClassifyIdentifier(identifier)

	user, err := service.findByIdentifier(context, identifier)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrAccountNotFound()
		}
		return nil, fmt.Errorf("auth_service_recovery_lookup_failed: %w", err)
	}

	// Phone recovery: existence check only
	if classified.Kind == IdentifierPhone {
		return &VerifyIdentifierResult{Kind: IdentifierPhone, OTPSent: false}, nil
	}

	// Email recovery: generate, store, and send a one-time password
	code, err := sec.GenerateOTP(OTPDigits)
	if err != nil {
		return nil, fmt.Errorf("auth_service_otp_generation_failed: %w", err)
	}

	// Keyed by account: a code only redeems for the user it was issued to,
	// and a re-request overwrites the previous code.
	if err := service.otpRepository.Set(context, user.ID, code, OTPTTL); err != nil {
		return nil, fmt.Errorf("auth_service_otp_store_failed: %w", err)
	}

	subject := "Your Millearnia verification code"
	body := fmt.Sprintf("Hello %s,\n\nYour verification code is: %s\n\nIt expires in %d minutes.",
		user.Name, code, int(OTPTTL.Minutes()))

	if err := service.mailer.Send(context, user.Email, subject, body); err != nil {
		return nil, fmt.Errorf("auth_service_otp_mail_failed: %w", err)
	}

	return &VerifyIdentifierResult{Kind: IdentifierEmail, OTPSent: true}, nil
}

/*
VerifyOTP redeems a one-time password for a password-reset token.

Description: The code is bound to the account behind the identifier — a code
issued to one user never redeems for another. The comparison is constant-time
and the OTP is single-use; redeeming it deletes the code and issues a
high-entropy reset token with its own TTL.

Parameters:
  - context: context.Context
  - identifier: string
  - code: string

Returns:
  - string: Reset token to present to ResetPassword
  - error: ErrAccountNotFound, ErrInvalidToken, or storage failures
*/
func (service *Service) VerifyOTP(context context.Context, identifier, code string) (string, error) {

	// Resolve the account the code must have been issued to
	user, err := service.findByIdentifier(context, identifier)
	if err != nil {
		if isNotFound(err) {
			return "", ErrAccountNotFound()
		}
		return "", fmt.Errorf("auth_service_otp_lookup_failed: %w", err)
	}

	storedCode, err := service.otpRepository.Get(context, user.ID)
	if err != nil {
		if isNotFound(err) {
			return "", ErrInvalidToken()
		}
		return "", fmt.Errorf("auth_service_otp_fetch_failed: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(storedCode), []byte(code)) != 1 {
		return "", ErrInvalidToken()
	}

	// Single-use: burn the code before handing out the reset token
	_ = service.otpRepository.Delete(context, user.ID)

	resetToken, err := sec.GenerateSecureToken(ResetTokenLength)
	if err != nil {
		return "", fmt.Errorf("auth_service_reset_token_generation_failed: %w", err)
	}

	if err := service.resetTokenRepository.Set(context, resetToken, user.ID, ResetTokenTTL); err != nil {
		return "", fmt.Errorf("auth_service_reset_token_store_failed: %w", err)
	}

	return resetToken, nil
}

/*
ResetPassword completes the forgot-password flow.

Description: Verifies the reset token, hashes the new password, updates the
account, and clears the refresh-token set so every existing session must
re-authenticate with the new credentials.

Parameters:
  - context: context.Context
  - token: string
  - newPassword: string

Returns:
  - error: ErrInvalidToken, validation, or update failures
*/
func (service *Service) ResetPassword(context context.Context, token, newPassword string) error {

	// Retrieve the userID associated with the reset token
	userID, err := service.resetTokenRepository.Get(context, token)
	if err != nil {
		if isNotFound(err) {
			return ErrInvalidToken()
		}
		return fmt.Errorf("auth_service_reset_token_fetch_failed: %w", err)
	}

	// Hash the new password securely
	hashedPassword, err := service.passwordHasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_reset_password_hash_failed: %w", err)
	}

	// Update the user's password in persistent storage
	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_reset_password_update_failed: %w", err)
	}

	// Security Cleanup: revoke EVERY active session for this user
	_ = service.refreshTokenRepository.Clear(context, userID)

	// Delete the used token
	_ = service.resetTokenRepository.Delete(context, token)

	return nil
}

// # Profile

/*
Profile returns the account of the currently authenticated user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *User: Hydrated entity
  - error: ErrAccountNotFound
*/
func (service *Service) Profile(context context.Context, userID string) (*User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrAccountNotFound()
		}
		return nil, fmt.Errorf("auth_service_profile_lookup_failed: %w", err)
	}
	return user, nil
}

// findByIdentifier routes an account lookup through the email or phone column
// depending on the classification of the raw identifier.
func (service *Service) findByIdentifier(context context.Context, raw string) (*User, error) {
	identifier := ClassifyIdentifier(raw)
	if identifier.Kind == IdentifierEmail {
		return service.userRepository.FindByEmail(context, identifier.Value)
	}
	return service.userRepository.FindByPhone(context, identifier.Value)
}

// isNotFound reports whether err is a store's definitive not-found outcome.
// Anything else (connectivity, timeouts, scan failures) must stay a server
// error instead of being presented as a protocol result.
func isNotFound(err error) bool {
	appError := apperr.As(err)
	return appError != nil && appError.HTTPStatus == http.StatusNotFound
}
