package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/aussiebroadwan/idgate/internal/auth/service"
	"github.com/aussiebroadwan/idgate/pkg/authsdk"
	"github.com/aussiebroadwan/idgate/pkg/httpx"
	"github.com/aussiebroadwan/idgate/pkg/jwtx"
	"github.com/aussiebroadwan/idgate/pkg/slogx"
)

// AuthHandler serves the /v1/auth endpoints.
type AuthHandler struct {
	AuthService *service.AuthService
}

// decode reads a JSON body into v, writing invalid_request on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := httpx.DecodeJSON(w, r, v); err != nil {
		slogx.FromContext(r.Context()).Warn("failed to parse request", "err", err)
		authsdk.ErrInvalidRequest.WithDescription("invalid JSON body").WriteError(w)
		return false
	}
	return true
}

// claims returns the verified claims put in the context by AuthnMiddleware.
func claims(w http.ResponseWriter, r *http.Request) (c jwtx.Claims, ok bool) {
	c, ok = httpx.ClaimsFromContext(r.Context())
	if !ok {
		authsdk.ErrInvalidToken.WriteError(w)
	}
	return c, ok
}

func tokenResponse(res service.LoginResult) authsdk.TokenResponse {
	return authsdk.TokenResponse{
		AccessToken:       res.AccessToken,
		TokenType:         authsdk.TokenTypeBearer,
		ExpiresIn:         int(res.ExpiresIn / time.Second),
		RequiresTwoFactor: res.RequiresTwoFactor,
	}
}

// HandleRegister handles POST /v1/auth/register
//
//	@Summary		Register an account
//	@Description	Creates an unverified identity with the USER role and emails a verification link valid for 24 hours.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RegisterRequest	true	"Email and password (at least 6 characters)"
//	@Success		201		{object}	authsdk.MessageResponse	"Verification email sent"
//	@Failure		400		{object}	authsdk.ErrorResponse	"invalid_request or conflict"
//	@Failure		500		{object}	authsdk.ErrorResponse	"notification_failed or server_error"
//	@Router			/v1/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req authsdk.RegisterRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.AuthService.Register(r.Context(), req.Email, req.Password); err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, authsdk.MessageResponse{
		Message: "registration successful, check your email to verify your account",
	})
}

// HandleVerifyEmail handles POST /v1/auth/verify-email
//
//	@Summary		Verify email address
//	@Description	Consumes the token from a verification link. Each token works once.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.VerifyEmailRequest	true	"Verification token"
//	@Success		200		{object}	authsdk.MessageResponse		"Email verified"
//	@Failure		400		{object}	authsdk.ErrorResponse		"invalid_or_expired"
//	@Router			/v1/auth/verify-email [post].
func (h *AuthHandler) HandleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req authsdk.VerifyEmailRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.AuthService.VerifyEmail(r.Context(), req.Token); err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{Message: "email verified"})
}

// HandleResendVerification handles POST /v1/auth/resend-verification
//
//	@Summary		Resend verification email
//	@Description	Issues a new verification link; the previous link stops working.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.ResendVerificationRequest	true	"Account email"
//	@Success		200		{object}	authsdk.MessageResponse				"Verification email sent"
//	@Failure		400		{object}	authsdk.ErrorResponse				"not_found or already_verified"
//	@Failure		500		{object}	authsdk.ErrorResponse				"notification_failed"
//	@Router			/v1/auth/resend-verification [post].
func (h *AuthHandler) HandleResendVerification(w http.ResponseWriter, r *http.Request) {
	var req authsdk.ResendVerificationRequest
	if !decode(w, r, &req) {
		return
	}

	err := h.AuthService.ResendVerification(r.Context(), req.Email)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrNotFound):
		// Resend answers 400 for unknown emails, unlike the admin routes.
		slogx.FromContext(r.Context()).Info("request rejected", "code", authsdk.ErrorCodeNotFound)
		authsdk.ErrResendNotFound.WriteError(w)
		return
	default:
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{Message: "verification email sent"})
}

// HandleLogin handles POST /v1/auth/login
//
//	@Summary		Log in
//	@Description	Checks email and password. Without two-factor a full session token is returned.
//	@Description	With two-factor enabled a code is emailed and a temporary token (requires_2fa=true, 10 minutes) is returned for POST /v1/auth/verify-2fa.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	authsdk.TokenResponse	"Full or temporary token"
//	@Failure		401		{object}	authsdk.ErrorResponse	"invalid_credentials or email_not_verified"
//	@Failure		500		{object}	authsdk.ErrorResponse	"notification_failed"
//	@Router			/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req authsdk.LoginRequest
	if !decode(w, r, &req) {
		return
	}

	res, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tokenResponse(res))
}

// HandleVerifyTwoFactor handles POST /v1/auth/verify-2fa
//
//	@Summary		Complete two-factor login
//	@Description	Exchanges the temporary token and the emailed code for a full session token. A code works once.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.VerifyTwoFactorRequest	true	"Six digit code"
//	@Success		200		{object}	authsdk.TokenResponse			"Full session token"
//	@Failure		401		{object}	authsdk.ErrorResponse			"invalid_token, unauthorized or invalid_or_expired_code"
//	@Router			/v1/auth/verify-2fa [post].
func (h *AuthHandler) HandleVerifyTwoFactor(w http.ResponseWriter, r *http.Request) {
	c, ok := claims(w, r)
	if !ok {
		return
	}

	var req authsdk.VerifyTwoFactorRequest
	if !decode(w, r, &req) {
		return
	}

	res, err := h.AuthService.VerifyTwoFactor(r.Context(), c, req.Code)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tokenResponse(res))
}

// HandleEnableTwoFactor handles POST /v1/auth/enable-2fa
//
//	@Summary		Enable two-factor
//	@Description	Future logins require a code sent by email.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.MessageResponse	"Two-factor enabled"
//	@Failure		401	{object}	authsdk.ErrorResponse	"Missing, invalid or temporary token"
//	@Router			/v1/auth/enable-2fa [post].
func (h *AuthHandler) HandleEnableTwoFactor(w http.ResponseWriter, r *http.Request) {
	c, ok := claims(w, r)
	if !ok {
		return
	}

	if err := h.AuthService.EnableTwoFactor(r.Context(), c); err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{Message: "two-factor authentication enabled"})
}

// HandleDisableTwoFactor handles POST /v1/auth/disable-2fa
//
//	@Summary		Disable two-factor
//	@Description	Turns off emailed codes and discards any pending code.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.MessageResponse	"Two-factor disabled"
//	@Failure		401	{object}	authsdk.ErrorResponse	"Missing, invalid or temporary token"
//	@Router			/v1/auth/disable-2fa [post].
func (h *AuthHandler) HandleDisableTwoFactor(w http.ResponseWriter, r *http.Request) {
	c, ok := claims(w, r)
	if !ok {
		return
	}

	if err := h.AuthService.DisableTwoFactor(r.Context(), c); err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{Message: "two-factor authentication disabled"})
}

// HandleProfile handles GET /v1/auth/profile
//
//	@Summary		Get own profile
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.ProfileResponse	"Caller's identity"
//	@Failure		401	{object}	authsdk.ErrorResponse	"Missing, invalid or temporary token"
//	@Router			/v1/auth/profile [get].
func (h *AuthHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	c, ok := claims(w, r)
	if !ok {
		return
	}

	p, err := h.AuthService.Profile(r.Context(), c)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, authsdk.ProfileResponse{
		ID:               p.ID,
		Email:            p.Email,
		Roles:            p.Roles,
		EmailVerified:    p.EmailVerified,
		TwoFactorEnabled: p.TwoFactorEnabled,
	})
}
