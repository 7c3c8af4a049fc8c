package service

import (
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/idgate/internal/auth/domain"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer(t *testing.T) {
	env := newTestEnv(t)
	tokens := env.auth.Tokens
	identity := domain.Identity{ID: "01JTESTIDENTITY0000000000A", Email: "t@x.com", Roles: []string{domain.RoleUser}}

	t.Run("full token", func(t *testing.T) {
		raw, ttl, err := tokens.IssueFull(identity)
		require.NoError(t, err)
		require.Equal(t, time.Hour, ttl)

		claims, err := tokens.Validate(raw)
		require.NoError(t, err)
		require.True(t, claims.Verified)
		require.False(t, claims.Temp)
		require.Equal(t, testIssuer, claims.Issuer)
		require.NotEmpty(t, claims.ID)
	})

	t.Run("temporary token", func(t *testing.T) {
		raw, ttl, err := tokens.IssueTemporary(identity)
		require.NoError(t, err)
		require.Equal(t, 10*time.Minute, ttl)

		claims, err := tokens.Validate(raw)
		require.NoError(t, err)
		require.True(t, claims.Temp)
		require.False(t, claims.Verified)
	})

	t.Run("tampered", func(t *testing.T) {
		raw, _, err := tokens.IssueFull(identity)
		require.NoError(t, err)

		parts := strings.Split(raw, ".")
		require.Len(t, parts, 3)
		sig := []byte(parts[2])
		if sig[0] == 'A' {
			sig[0] = 'B'
		} else {
			sig[0] = 'A'
		}
		_, err = tokens.Validate(parts[0] + "." + parts[1] + "." + string(sig))
		require.ErrorIs(t, err, ErrInvalidToken)

		_, err = tokens.Validate("not.a.jwt")
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		raw, ttl, err := tokens.IssueTemporary(identity)
		require.NoError(t, err)

		env.clock.Advance(ttl)
		_, err = tokens.Validate(raw)
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}
