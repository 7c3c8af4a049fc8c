package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/idgate/internal/auth/service"
	"github.com/aussiebroadwan/idgate/pkg/authsdk"
	"github.com/aussiebroadwan/idgate/pkg/slogx"
)

// errorMappings is checked in order; the first match wins.
var errorMappings = []struct {
	err  error
	resp *authsdk.OAuth2Error
}{
	{service.ErrInvalidInput, authsdk.ErrInvalidRequest},
	{service.ErrConflict, authsdk.ErrConflict},
	{service.ErrInvalidCredentials, authsdk.ErrInvalidCredentials},
	{service.ErrEmailNotVerified, authsdk.ErrEmailNotVerified},
	{service.ErrInvalidOrExpired, authsdk.ErrInvalidOrExpired},
	{service.ErrInvalidOrExpiredCode, authsdk.ErrInvalidOrExpiredCode},
	{service.ErrAlreadyVerified, authsdk.ErrAlreadyVerified},
	{service.ErrInvalidToken, authsdk.ErrInvalidToken},
	{service.ErrUnauthorized, authsdk.ErrUnauthorized},
	{service.ErrForbidden, authsdk.ErrForbidden},
	{service.ErrNotFound, authsdk.ErrNotFound},
	{service.ErrNotificationFailed, authsdk.ErrNotificationFailed},
}

// toOAuth2Error maps a service error to its response. Anything unmapped
// is a server error.
func toOAuth2Error(err error) *authsdk.OAuth2Error {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return m.resp
		}
	}
	return authsdk.ErrServerError
}

// writeError renders err. It doubles as the guard deny writer.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	resp := toOAuth2Error(err)
	log := slogx.FromContext(r.Context())

	switch {
	case resp == authsdk.ErrServerError:
		log.Error("request failed", "err", err)
	case resp.StatusCode >= http.StatusInternalServerError:
		log.Error("request failed", "code", resp.Code, "err", err)
	default:
		log.Info("request rejected", "code", resp.Code, "err", err)
	}

	// Invalid input carries the validation reason, which never holds secrets.
	if resp == authsdk.ErrInvalidRequest {
		resp = resp.WithDescription(err.Error())
	}
	resp.WriteError(w)
}
