package service

import (
	"errors"
	"testing"

	"github.com/aussiebroadwan/idgate/internal/auth/domain"
	"github.com/aussiebroadwan/idgate/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestGuards(t *testing.T) {
	full := jwtx.Claims{Verified: true, Roles: []string{domain.RoleUser}}
	admin := jwtx.Claims{Verified: true, Roles: []string{domain.RoleUser, domain.RoleAdmin}}
	temp := jwtx.Claims{Temp: true, Roles: []string{domain.RoleAdmin}}
	unverified := jwtx.Claims{Roles: []string{domain.RoleUser}}

	tests := []struct {
		name   string
		guard  Guard
		claims jwtx.Claims
		want   error
	}{
		{"verified full", Verified, full, nil},
		{"verified rejects temporary", Verified, temp, ErrUnauthorized},
		{"verified rejects unverified", Verified, unverified, ErrUnauthorized},
		{"temporary only accepts temporary", TemporaryOnly, temp, nil},
		{"temporary only rejects full", TemporaryOnly, full, ErrUnauthorized},
		{"role missing", RoleRequired(domain.RoleAdmin), full, ErrForbidden},
		{"role held", RoleRequired(domain.RoleAdmin), admin, nil},
		{"any of roles", RoleRequired(domain.RoleModerator, domain.RoleUser), full, nil},
		{"role on temporary token", RoleRequired(domain.RoleAdmin), temp, ErrUnauthorized},
		{"chain passes", Chain(Verified, RoleRequired(domain.RoleAdmin)), admin, nil},
		{"chain first denial wins", Chain(Verified, RoleRequired(domain.RoleAdmin)), temp, ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.guard(tt.claims)
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestChain_StopsAtFirstDenial(t *testing.T) {
	denied := errors.New("denied")
	var calls []string

	record := func(name string, err error) Guard {
		return func(jwtx.Claims) error {
			calls = append(calls, name)
			return err
		}
	}

	err := Chain(record("a", nil), record("b", denied), record("c", nil))(jwtx.Claims{})
	require.ErrorIs(t, err, denied)
	require.Equal(t, []string{"a", "b"}, calls)

	require.NoError(t, Chain()(jwtx.Claims{}))
}
