package domain

import (
	"slices"
	"strings"
	"time"
)

// Identity is a registered account. Values returned from the store are
// snapshots; changes go through explicit store calls.
type Identity struct {
	ID               string
	Email            string // trimmed and lower-cased
	PasswordHash     string // argon2id PHC string (bcrypt for imported accounts)
	EmailVerified    bool
	TwoFactorEnabled bool
	Roles            []string // role names
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HasRole reports whether the identity holds the named role.
func (i Identity) HasRole(name string) bool {
	return slices.Contains(i.Roles, name)
}

// NormalizeEmail trims and lower-cases an email address so lookups are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
