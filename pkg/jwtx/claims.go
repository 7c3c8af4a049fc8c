package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// DefaultSessionTTL is the lifetime of a full session token unless
	// configured otherwise.
	DefaultSessionTTL = time.Hour

	// TemporaryTTL is the fixed lifetime of a token that only completes a
	// pending two-factor login.
	TemporaryTTL = 10 * time.Minute
)

// Claims are the session token claims. Resource services verifying our
// tokens decode the same struct.
type Claims struct {
	jwt.RegisteredClaims

	// Email of the identity at the time the token was minted.
	Email string `json:"email,omitempty"`

	// Roles held by the identity, e.g. ["USER","ADMIN"].
	Roles []string `json:"roles,omitempty"`

	// Verified is only true on full session tokens.
	Verified bool `json:"verified"`

	// Temp marks a token that may only be used to submit a two-factor code.
	Temp bool `json:"temp,omitempty"`
}

// NewSessionClaims builds a full session token's claims.
func NewSessionClaims(subject, email string, roles []string, ttl time.Duration, issuer string, now time.Time) Claims {
	return newClaims(subject, email, roles, true, false, ttl, issuer, now)
}

// NewTemporaryClaims builds claims for the window between a correct
// password and a confirmed two-factor code. They are never Verified.
func NewTemporaryClaims(subject, email string, roles []string, issuer string, now time.Time) Claims {
	return newClaims(subject, email, roles, false, true, TemporaryTTL, issuer, now)
}

func newClaims(subject, email string, roles []string, verified, temp bool, ttl time.Duration, issuer string, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Email:    email,
		Roles:    slices.Clone(roles),
		Verified: verified,
		Temp:     temp,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// HasAnyRole reports whether the claims carry at least one of roles.
func (c Claims) HasAnyRole(roles ...string) bool {
	for _, r := range roles {
		if slices.Contains(c.Roles, r) {
			return true
		}
	}
	return false
}
