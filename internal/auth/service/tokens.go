package service

import (
	"time"

	"github.com/aussiebroadwan/idgate/internal/auth/domain"
	"github.com/aussiebroadwan/idgate/pkg/jwtx"
)

// TokenIssuer mints and validates session tokens.
type TokenIssuer struct {
	Keys   *jwtx.KeyManager
	Issuer string
	TTL    time.Duration
	Now    func() time.Time
}

func NewTokenIssuer(keys *jwtx.KeyManager, issuer string, ttl time.Duration, now func() time.Time) *TokenIssuer {
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}
	if now == nil {
		now = time.Now
	}
	return &TokenIssuer{Keys: keys, Issuer: issuer, TTL: ttl, Now: now}
}

// IssueFull mints a verified session token.
func (t *TokenIssuer) IssueFull(identity domain.Identity) (string, time.Duration, error) {
	claims := jwtx.NewSessionClaims(identity.ID, identity.Email, identity.Roles, t.TTL, t.Issuer, t.Now())
	return t.sign(claims, t.TTL)
}

// IssueTemporary mints a token that can only complete a two-factor login.
func (t *TokenIssuer) IssueTemporary(identity domain.Identity) (string, time.Duration, error) {
	claims := jwtx.NewTemporaryClaims(identity.ID, identity.Email, identity.Roles, t.Issuer, t.Now())
	return t.sign(claims, jwtx.TemporaryTTL)
}

func (t *TokenIssuer) sign(claims jwtx.Claims, ttl time.Duration) (string, time.Duration, error) {
	token, err := t.Keys.GetSigner().Sign(claims)
	if err != nil {
		return "", 0, err
	}
	return token, ttl, nil
}

// Validate checks signature, issuer and expiry. Every failure is
// reported as ErrInvalidToken.
func (t *TokenIssuer) Validate(raw string) (jwtx.Claims, error) {
	claims, err := t.Keys.Verifier.Verify(raw)
	if err != nil {
		return jwtx.Claims{}, ErrInvalidToken
	}
	return claims, nil
}
