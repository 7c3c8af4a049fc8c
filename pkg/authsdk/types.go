package authsdk

import (
	"github.com/aussiebroadwan/idgate/pkg/jwtx"
)

// TokenTypeBearer is the only token type the service issues.
const TokenTypeBearer = "Bearer"

// ErrorResponse is the {error, error_description} body of a failed request.
// Client code should use the OAuth2Error type from errors.go instead.
type ErrorResponse struct {
	// Error is the machine readable error code (e.g., "invalid_credentials")
	Error string `json:"error" example:"invalid_credentials"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description" example:"invalid credentials"`
}

// MessageResponse acknowledges an operation that returns no data.
type MessageResponse struct {
	Message string `json:"message" example:"verification email sent"`
}

// ============================================================================
// Authentication Types
// ============================================================================

// RegisterRequest creates a new unverified identity.
type RegisterRequest struct {
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"correct horse"`
}

// LoginRequest exchanges credentials for a token.
type LoginRequest struct {
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"correct horse"`
}

// VerifyEmailRequest carries the token from the verification link.
type VerifyEmailRequest struct {
	Token string `json:"token" example:"Q2hhbGxlbmdlVG9rZW4tZXhhbXBsZS12YWx1ZS0xMjM"`
}

// ResendVerificationRequest asks for a fresh verification link.
type ResendVerificationRequest struct {
	Email string `json:"email" example:"alice@example.com"`
}

// VerifyTwoFactorRequest carries the emailed six digit code.
type VerifyTwoFactorRequest struct {
	Code string `json:"code" example:"042917"`
}

// TokenResponse is returned by login and two-factor verification. When
// RequiresTwoFactor is set the access token is temporary and only accepted
// by POST /v1/auth/verify-2fa.
type TokenResponse struct {
	// AccessToken is the signed JWT
	AccessToken string `json:"access_token"`

	// TokenType is always "Bearer"
	TokenType string `json:"token_type" example:"Bearer"`

	// ExpiresIn is the lifetime in seconds of the access token
	ExpiresIn int `json:"expires_in" example:"3600"`

	// RequiresTwoFactor reports that a code was emailed and must be verified
	RequiresTwoFactor bool `json:"requires_2fa"`
}

// ProfileResponse is the caller's own identity.
type ProfileResponse struct {
	ID               string   `json:"id" example:"01JA2Z3Y4X5W6V7U8T9S0R1Q2P"`
	Email            string   `json:"email" example:"alice@example.com"`
	Roles            []string `json:"roles" example:"USER"`
	EmailVerified    bool     `json:"verified"`
	TwoFactorEnabled bool     `json:"two_factor_enabled"`
}

// ============================================================================
// Role Types
// ============================================================================

// RoleInfo represents a role in the system.
type RoleInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name" example:"ADMIN"`
	Description string `json:"description,omitempty"`
}

// ListRolesResponse is returned from GET /v1/admin/roles.
type ListRolesResponse struct {
	Roles []RoleInfo `json:"roles"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results for critical dependencies (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// Database indicates the database connection status
	Database string `json:"database"`

	// Signer indicates the JWT signing capability status
	Signer string `json:"signer"`
}

// ============================================================================
// JWKS Types
// ============================================================================

// JWKSResponse contains the public keys used to verify session tokens.
type JWKSResponse jwtx.JWKS
