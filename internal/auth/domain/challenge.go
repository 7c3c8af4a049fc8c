package domain

import "time"

// Challenge TTLs.
const (
	EmailChallengeTTL     = 24 * time.Hour
	TwoFactorChallengeTTL = 5 * time.Minute
)

// TwoFactorChallenge is the live emailed code for an identity. Only the
// SHA-256 fingerprint of the code is kept.
type TwoFactorChallenge struct {
	IdentityID string
	CodeHash   string
	ExpiresAt  time.Time
}

// Expired reports whether the challenge is no longer usable at now.
// The challenge is still valid at exactly ExpiresAt.
func (c TwoFactorChallenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
