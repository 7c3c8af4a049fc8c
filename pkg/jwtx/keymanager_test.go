package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/idgate/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestNewEphemeralKeyManager(t *testing.T) {
	tests := []struct {
		name      string
		algorithm string
		want      string
	}{
		{"default is EdDSA", "", jwtx.AlgorithmEdDSA},
		{"EdDSA", jwtx.AlgorithmEdDSA, jwtx.AlgorithmEdDSA},
		{"ES256", jwtx.AlgorithmES256, jwtx.AlgorithmES256},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
				Algorithm: tt.algorithm,
				Issuer:    exampleIssuer,
				NumKeys:   1,
			})
			require.NoError(t, err)
			require.Equal(t, tt.want, km.Algorithm())
			require.True(t, km.IsReady())
			require.Equal(t, 1, km.NumSigners())
			require.Equal(t, tt.want, km.GetSigner().Alg())

			now := time.Now()
			claims := jwtx.NewSessionClaims("user-123", "u@example.com", []string{"USER"}, time.Hour, exampleIssuer, now)
			token, err := km.GetSigner().Sign(claims)
			require.NoError(t, err)

			got, err := km.Verifier.Verify(token)
			require.NoError(t, err)
			require.Equal(t, "user-123", got.Subject)
		})
	}
}

func TestNewEphemeralKeyManager_Errors(t *testing.T) {
	_, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Algorithm: jwtx.AlgorithmEdDSA})
	require.ErrorContains(t, err, "Issuer is required")

	_, err = jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Algorithm: "RS256", Issuer: exampleIssuer})
	require.ErrorContains(t, err, "unsupported algorithm")
}

func TestKeyManager_NumKeys(t *testing.T) {
	tests := []struct {
		name     string
		numKeys  int
		expected int
	}{
		{"explicit 2 keys", 2, 2},
		{"max capped at 10", 15, 10},
		{"zero defaults to 3", 0, 3},
		{"negative defaults to 3", -1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
				Issuer:  exampleIssuer,
				NumKeys: tt.numKeys,
			})
			require.NoError(t, err)
			require.Equal(t, tt.expected, km.NumSigners())

			jwks := km.KeySet.PublicJWKS()
			require.Len(t, jwks.Keys, tt.expected)

			kids := make(map[string]bool)
			for _, jwk := range jwks.Keys {
				require.False(t, kids[jwk.Kid], "duplicate kid %s", jwk.Kid)
				kids[jwk.Kid] = true
			}
		})
	}
}

func TestKeyManager_InjectedClock(t *testing.T) {
	issued := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := issued

	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
		Issuer:  exampleIssuer,
		NumKeys: 2,
		Now:     func() time.Time { return clock },
	})
	require.NoError(t, err)

	token, err := km.GetSigner().Sign(jwtx.NewTemporaryClaims("user-1", "", nil, exampleIssuer, issued))
	require.NoError(t, err)

	clock = issued.Add(jwtx.TemporaryTTL - time.Second)
	_, err = km.Verifier.Verify(token)
	require.NoError(t, err)

	clock = issued.Add(jwtx.TemporaryTTL)
	_, err = km.Verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}
