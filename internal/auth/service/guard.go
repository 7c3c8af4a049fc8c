package service

import (
	"fmt"

	"github.com/aussiebroadwan/idgate/pkg/httpx"
	"github.com/aussiebroadwan/idgate/pkg/jwtx"
)

// Guard allows or denies a request based on validated claims.
type Guard = httpx.Guard

// Verified requires a full session token.
func Verified(c jwtx.Claims) error {
	if !c.Verified || c.Temp {
		return fmt.Errorf("%w: email verification required", ErrUnauthorized)
	}
	return nil
}

// TemporaryOnly admits only tokens minted for a pending two-factor login.
func TemporaryOnly(c jwtx.Claims) error {
	if !c.Temp {
		return fmt.Errorf("%w: two-factor token required", ErrUnauthorized)
	}
	return nil
}

// RoleRequired admits callers holding at least one of roles. Temporary
// tokens never pass.
func RoleRequired(roles ...string) Guard {
	return func(c jwtx.Claims) error {
		if c.Temp {
			return fmt.Errorf("%w: two-factor login incomplete", ErrUnauthorized)
		}
		if !c.HasAnyRole(roles...) {
			return ErrForbidden
		}
		return nil
	}
}

// Chain runs guards in order and stops at the first denial.
func Chain(guards ...Guard) Guard {
	return func(c jwtx.Claims) error {
		for _, g := range guards {
			if err := g(c); err != nil {
				return err
			}
		}
		return nil
	}
}
