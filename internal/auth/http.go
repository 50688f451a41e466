// Copyright (c) 2026 Millearnia. All rights reserved.
// Author: steph2pro@millearnia.dev

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/steph2pro/millearnia/internal/platform/constants"
	"github.com/steph2pro/millearnia/internal/platform/middleware"
	requestutil "github.com/steph2pro/millearnia/internal/platform/request"
	"github.com/steph2pro/millearnia/internal/platform/respond"
	"github.com/steph2pro/millearnia/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages everything related to the user lifecycle entry points
// (Registration, Login, Token Refresh, Account Recovery).
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /register          : Creates a new account.
//   - POST /login             : Authenticates by email or phone and returns a token pair.
//   - POST /refresh           : Rotates the refresh token.
//   - POST /logout            : Ends the current session.
//   - POST /verify-identifier : Starts the forgot-password flow.
//   - POST /verify-otp        : Redeems an OTP for a reset token.
//   - POST /reset-password    : Completes the forgot-password flow.
//   - GET  /profile           : Returns the authenticated user.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)
	router.Post("/logout", handler.logout)
	router.Post("/verify-identifier", handler.verifyIdentifier)
	router.Post("/verify-otp", handler.verifyOTP)
	router.Post("/reset-password", handler.resetPassword)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/profile", handler.profile)
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Password   string `json:"password"`
	ProfileURL string `json:"profile_url"`
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type verifyIdentifierRequest struct {
	Identifier string `json:"identifier"`
}

type verifyOTPRequest struct {
	Identifier string `json:"identifier"`
	OTP        string `json:"otp"`
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

/*
Register handles the creation of a new user account.

POST /api/v1/auth/register

Description: Validates input, checks for identity conflicts on the provided
identifiers, and persists a new user profile to the database. An account
registers with an email, a phone number, or both; each identifier is only
format-checked when present.

Request:
  - Body: registerRequest (Name, Email and/or Phone, Password, ProfileURL)

Response:
  - 201: User: Created user profile (no password hash)
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 409: DUPLICATE_IDENTIFIER: Email or phone already registered
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MinLen(FieldName, input.Name, 3).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLength).
		MaxLen(FieldPassword, input.Password, MaxPasswordLength)

	// At least one reachable identifier is required; either alone is fine
	validator.Custom(FieldIdentifier, input.Email == "" && input.Phone == "",
		"An email or a phone number is required")
	if input.Email != "" {
		validator.Email(FieldEmail, input.Email)
	}
	if input.Phone != "" {
		validator.Phone(FieldPhone, input.Phone)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Register(request.Context(), RegisterInput{
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		Password:   input.Password,
		ProfileURL: input.ProfileURL,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
Login authenticates a user and establishes a session.

POST /api/v1/auth/login

Description: Classifies the identifier (email or phone), verifies credentials,
and issues a fresh token pair. Every previously issued refresh token for the
account is invalidated: one active session per user.

Request:
  - Body: loginRequest (Identifier, Password)

Response:
  - 200: TokenPair: Access token, refresh token, and user profile
  - 401: INVALID_CREDENTIAL: Wrong password
  - 404: NOT_FOUND: No account matches the identifier
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldIdentifier, input.Identifier)
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	pair, err := handler.authService.Login(request.Context(), LoginInput{
		Identifier: input.Identifier,
		Password:   input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	setRefreshCookie(writer, pair.RefreshToken, pair.RefreshTokenExpiresAt)

	respond.OK(writer, map[string]any{
		FieldAccessToken:  pair.AccessToken,
		FieldRefreshToken: pair.RefreshToken,
		FieldTokenType:    "Bearer",
		FieldExpiresIn:    AccessTokenTTL / time.Second,
		FieldUser:         pair.User,
	})
}

/*
Refresh rotates the session's refresh token.

POST /api/v1/auth/refresh

Description: Accepts the refresh token from the scoped cookie (web clients)
or the JSON body (mobile clients), verifies it, and atomically swaps it for a
new pair. A reused token is rejected and never re-activated.

Request:
  - Body: refreshRequest (RefreshToken, optional when the cookie is present)

Response:
  - 200: TokenPair: New access and refresh tokens
  - 401: INVALID_TOKEN: Signature or expiry failure
  - 401: TOKEN_REUSED_OR_REVOKED: Token already rotated, replaced, or revoked
  - 404: NOT_FOUND: Account no longer exists
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	refreshToken := refreshTokenFromRequest(request)
	if refreshToken == "" {
		respond.Error(writer, request, ErrInvalidToken())
		return
	}

	pair, err := handler.authService.Refresh(request.Context(), refreshToken)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	setRefreshCookie(writer, pair.RefreshToken, pair.RefreshTokenExpiresAt)

	respond.OK(writer, map[string]any{
		FieldAccessToken:  pair.AccessToken,
		FieldRefreshToken: pair.RefreshToken,
		FieldTokenType:    "Bearer",
		FieldExpiresIn:    AccessTokenTTL / time.Second,
	})
}

/*
Logout terminates the current user session.

POST /api/v1/auth/logout

Description: Removes the refresh token (if present) from the account's active
set and clears the security cookie from the client. Idempotent.

Response:
  - 204: No Content: Session terminated
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	if refreshToken := refreshTokenFromRequest(request); refreshToken != "" {
		_ = handler.authService.Logout(request.Context(), refreshToken)
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    "",
		Path:     constants.RefreshTokenCookiePath,
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	respond.NoContent(writer)
}

/*
VerifyIdentifier initiates the password recovery flow.

POST /api/v1/auth/verify-identifier

Description: Confirms that the identifier belongs to an account. Email
identifiers additionally receive a one-time password by mail; phone
identifiers only get the existence confirmation.

Request:
  - Body: verifyIdentifierRequest (Identifier)

Response:
  - 200: VerifyIdentifierResult: Which recovery channel applies
  - 404: NOT_FOUND: No account matches the identifier
*/
func (handler *Handler) verifyIdentifier(writer http.ResponseWriter, request *http.Request) {
	var input verifyIdentifierRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if input.Identifier == "" {
		respond.Error(writer, request, validate.RequiredError(FieldIdentifier, "This field is required"))
		return
	}

	result, err := handler.authService.VerifyIdentifier(request.Context(), input.Identifier)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
VerifyOTP redeems a one-time password for a password-reset token.

POST /api/v1/auth/verify-otp

Description: Validates the OTP code against the account behind the identifier
and, on success, returns a single-use reset token for the reset-password
endpoint. A code issued to a different account never redeems.

Request:
  - Body: verifyOTPRequest (Identifier, OTP)

Response:
  - 200: Token: Reset token
  - 401: INVALID_TOKEN: Wrong, unknown, or expired OTP
  - 404: NOT_FOUND: No account matches the identifier
*/
func (handler *Handler) verifyOTP(writer http.ResponseWriter, request *http.Request) {
	var input verifyOTPRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldIdentifier, input.Identifier)
	validator.Required(FieldOTP, input.OTP)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	resetToken, err := handler.authService.VerifyOTP(request.Context(), input.Identifier, input.OTP)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldToken: resetToken,
	})
}

/*
ResetPassword completes the password recovery flow.

POST /api/v1/auth/reset-password

Description: Validates the reset token, updates the user's password, and
revokes every active session.

Request:
  - Body: resetPasswordRequest (Token, NewPassword)

Response:
  - 200: Success: Password updated
  - 401: INVALID_TOKEN: Unknown or expired reset token
  - 400: VALIDATION_ERROR: Weak password
*/
func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	var input resetPasswordRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldToken, input.Token).
		Required(FieldNewPassword, input.NewPassword).
		MinLen(FieldNewPassword, input.NewPassword, MinPasswordLength).
		MaxLen(FieldNewPassword, input.NewPassword, MaxPasswordLength)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.ResetPassword(request.Context(), input.Token, input.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "Password updated successfully",
	})
}

/*
Profile returns the authenticated user's account.

GET /api/v1/auth/profile

Response:
  - 200: User: Hydrated profile (no password hash)
  - 401: UNAUTHORIZED: Authentication required
*/
func (handler *Handler) profile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Profile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// # Transport Helpers

// setRefreshCookie installs the refresh token as a scoped, HTTP-only cookie.
func setRefreshCookie(writer http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    token,
		Path:     constants.RefreshTokenCookiePath,
		Expires:  expiresAt,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// refreshTokenFromRequest reads the refresh token from the scoped cookie,
// falling back to the JSON body for cookie-less (mobile) clients.
func refreshTokenFromRequest(request *http.Request) string {
	if cookie, err := request.Cookie(constants.RefreshTokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	var body refreshRequest
	if err := requestutil.DecodeJSON(request, &body); err == nil {
		return body.RefreshToken
	}

	return ""
}
