package authsdk

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Session holds the access token of a logged in caller.
type Session struct {
	client *SDKClient

	mu                sync.RWMutex
	accessToken       string
	expiresAt         time.Time
	requiresTwoFactor bool
}

func newSession(client *SDKClient, tokenResp *TokenResponse) *Session {
	s := &Session{client: client}
	s.setToken(tokenResp)
	return s
}

func (s *Session) setToken(tokenResp *TokenResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = tokenResp.AccessToken
	s.expiresAt = time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)
	s.requiresTwoFactor = tokenResp.RequiresTwoFactor
}

// AccessToken returns the current access token.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// ExpiresAt is when the current token stops being accepted. Zero for
// sessions built from a bare token.
func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

// RequiresTwoFactor reports whether the session still holds a temporary token.
func (s *Session) RequiresTwoFactor() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.requiresTwoFactor
}

// VerifyTwoFactor submits the emailed code and, on success, upgrades the
// session to a full token.
func (s *Session) VerifyTwoFactor(ctx context.Context, code string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/auth/verify-2fa", VerifyTwoFactorRequest{Code: code})
	if err != nil {
		return err
	}

	var tokenResp TokenResponse
	if err := decodeJSON(resp, &tokenResp, http.StatusOK); err != nil {
		return err
	}
	s.setToken(&tokenResp)
	return nil
}

// EnableTwoFactor turns on emailed codes for future logins.
func (s *Session) EnableTwoFactor(ctx context.Context) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/auth/enable-2fa", nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}

// DisableTwoFactor turns off emailed codes.
func (s *Session) DisableTwoFactor(ctx context.Context) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/auth/disable-2fa", nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}

// Profile returns the caller's identity.
func (s *Session) Profile(ctx context.Context) (*ProfileResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/auth/profile", nil)
	if err != nil {
		return nil, err
	}

	var profile ProfileResponse
	if err := decodeJSON(resp, &profile, http.StatusOK); err != nil {
		return nil, err
	}
	return &profile, nil
}
