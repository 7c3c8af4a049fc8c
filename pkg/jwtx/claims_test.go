package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/idgate/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const exampleIssuer = "https://id.example.test"

func TestNewSessionClaims(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	roles := []string{"USER", "ADMIN"}

	c := jwtx.NewSessionClaims("01HZX", "a@x.com", roles, time.Hour, exampleIssuer, now)
	require.Equal(t, "01HZX", c.Subject)
	require.Equal(t, "a@x.com", c.Email)
	require.Equal(t, exampleIssuer, c.Issuer)
	require.True(t, c.Verified)
	require.False(t, c.Temp)
	require.True(t, now.Add(time.Hour).Equal(c.ExpiresAt.Time))
	require.NotEmpty(t, c.ID)

	// Claims own their role slice.
	roles[0] = "MUTATED"
	require.Equal(t, []string{"USER", "ADMIN"}, c.Roles)
}

func TestNewTemporaryClaims(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	c := jwtx.NewTemporaryClaims("01HZX", "a@x.com", []string{"ADMIN"}, exampleIssuer, now)
	require.False(t, c.Verified)
	require.True(t, c.Temp)
	require.True(t, now.Add(jwtx.TemporaryTTL).Equal(c.ExpiresAt.Time))
	require.Equal(t, 10*time.Minute, jwtx.TemporaryTTL)
}

func TestClaims_HasAnyRole(t *testing.T) {
	c := jwtx.Claims{Roles: []string{"USER", "MODERATOR"}}

	require.True(t, c.HasAnyRole("ADMIN", "MODERATOR"))
	require.True(t, c.HasAnyRole("USER"))
	require.False(t, c.HasAnyRole("ADMIN"))
	require.False(t, c.HasAnyRole())
	require.False(t, jwtx.Claims{}.HasAnyRole("USER"))
}

func TestNewJTI_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		jti := jwtx.NewJTI()
		require.Len(t, jti, 27)
		require.False(t, seen[jti])
		seen[jti] = true
	}
}
