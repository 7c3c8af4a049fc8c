package authsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/idgate/pkg/httpx"
)

// ============================================================================
// Error Codes
// ============================================================================

const (
	ErrorCodeInvalidRequest       = "invalid_request"
	ErrorCodeConflict             = "conflict"
	ErrorCodeInvalidCredentials   = "invalid_credentials"
	ErrorCodeEmailNotVerified     = "email_not_verified"
	ErrorCodeInvalidOrExpired     = "invalid_or_expired"
	ErrorCodeInvalidOrExpiredCode = "invalid_or_expired_code"
	ErrorCodeAlreadyVerified      = "already_verified"
	ErrorCodeNotFound             = "not_found"
	ErrorCodeInvalidToken         = "invalid_token"
	ErrorCodeUnauthorized         = "unauthorized"
	ErrorCodeForbidden            = "forbidden"
	ErrorCodeServerError          = "server_error"
	ErrorCodeNotificationFailed   = "notification_failed"
)

// ============================================================================
// OAuth2Error - error body shared by server and client
// ============================================================================

// OAuth2Error is the {error, error_description} body used by every failing
// endpoint. It implements the error interface and is used both by the
// server (to write HTTP responses) and by the SDK client (to represent
// errors).
type OAuth2Error struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine readable error code (e.g., "invalid_credentials")
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *OAuth2Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Is matches on status and code so callers can use errors.Is against the
// predefined values.
func (e *OAuth2Error) Is(target error) bool {
	t, ok := target.(*OAuth2Error)
	if !ok {
		return false
	}
	return e.StatusCode == t.StatusCode && e.Code == t.Code
}

// WriteError writes this OAuth2Error to an HTTP response writer.
func (e *OAuth2Error) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error:            e.Code,
		ErrorDescription: e.Description,
	})
}

// WithDescription returns a copy of e carrying a different description.
func (e *OAuth2Error) WithDescription(description string) *OAuth2Error {
	return &OAuth2Error{StatusCode: e.StatusCode, Code: e.Code, Description: description}
}

// ============================================================================
// Predefined Errors
// ============================================================================

var (
	// ErrInvalidRequest is returned for malformed bodies and failed input validation.
	ErrInvalidRequest = &OAuth2Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrConflict is returned when registering an email that is already taken.
	ErrConflict = &OAuth2Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeConflict,
		Description: "email already registered",
	}

	// ErrInvalidCredentials covers both unknown emails and wrong passwords.
	ErrInvalidCredentials = &OAuth2Error{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "invalid credentials",
	}

	// ErrEmailNotVerified is returned by login before the email is confirmed.
	ErrEmailNotVerified = &OAuth2Error{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeEmailNotVerified,
		Description: "email not verified",
	}

	// ErrInvalidOrExpired is returned for unknown, used or expired verification tokens.
	ErrInvalidOrExpired = &OAuth2Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidOrExpired,
		Description: "verification token invalid or expired",
	}

	// ErrInvalidOrExpiredCode is returned for wrong, used or expired two-factor codes.
	ErrInvalidOrExpiredCode = &OAuth2Error{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidOrExpiredCode,
		Description: "two-factor code invalid or expired",
	}

	// ErrAlreadyVerified is returned when resending to a verified identity.
	ErrAlreadyVerified = &OAuth2Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeAlreadyVerified,
		Description: "email already verified",
	}

	// ErrResendNotFound is returned when resending to an unknown email.
	ErrResendNotFound = &OAuth2Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeNotFound,
		Description: "no account for that email",
	}

	// ErrNotFound is returned by admin operations on unknown identities or roles.
	ErrNotFound = &OAuth2Error{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "not found",
	}

	// ErrInvalidToken is returned when the bearer token is missing, invalid or expired.
	ErrInvalidToken = &OAuth2Error{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "the access token is missing, invalid or expired",
	}

	// ErrUnauthorized is returned when a valid token is the wrong kind
	// (temporary vs full) for the endpoint.
	ErrUnauthorized = &OAuth2Error{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeUnauthorized,
		Description: "unauthorized",
	}

	// ErrForbidden is returned when the caller lacks a required role.
	ErrForbidden = &OAuth2Error{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeForbidden,
		Description: "insufficient role",
	}

	// ErrNotificationFailed is returned when an email could not be delivered.
	// The challenge was stored and can be resent.
	ErrNotificationFailed = &OAuth2Error{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeNotificationFailed,
		Description: "could not deliver email, try again",
	}

	// ErrServerError is returned for unexpected failures.
	ErrServerError = &OAuth2Error{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// NewOAuth2Error creates a new OAuth2Error with the given status code, error code, and description.
func NewOAuth2Error(statusCode int, code, description string) *OAuth2Error {
	return &OAuth2Error{
		StatusCode:  statusCode,
		Code:        code,
		Description: description,
	}
}

// ============================================================================
// Error Parsing Helpers
// ============================================================================

// parseErrorResponse turns a non-2xx response into an *OAuth2Error.
// Returns nil if the response indicates success.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return NewOAuth2Error(resp.StatusCode, errResp.Error, errResp.ErrorDescription)
	}

	// Fallback: create generic error from status code
	return NewOAuth2Error(resp.StatusCode, ErrorCodeServerError,
		fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)))
}
