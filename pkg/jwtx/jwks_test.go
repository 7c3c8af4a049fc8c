package jwtx

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func parsePEMPublicKey(t *testing.T, pemStr string) any {
	t.Helper()

	require.True(t, strings.HasPrefix(pemStr, "-----BEGIN PUBLIC KEY-----"))

	block, _ := pem.Decode([]byte(pemStr))
	require.NotNil(t, block, "PEM block should be valid")
	require.Equal(t, "PUBLIC KEY", block.Type)

	key, err := x509.ParsePKIXPublicKey(block.Bytes)
	require.NoError(t, err)
	return key
}

func TestJWK_PEM_Ed25519(t *testing.T) {
	publicKey, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	pemStr, err := NewEd25519JWK("kid", "sig", AlgorithmEdDSA, publicKey).PEM()
	require.NoError(t, err)

	parsed, ok := parsePEMPublicKey(t, pemStr).(ed25519.PublicKey)
	require.True(t, ok)
	require.Equal(t, publicKey, parsed)
}

func TestJWK_PEM_ES256(t *testing.T) {
	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	jwk := NewES256JWK("kid", "sig", AlgorithmES256, &privateKey.PublicKey)
	require.Len(t, jwk.X, 43)
	require.Len(t, jwk.Y, 43)

	pemStr, err := jwk.PEM()
	require.NoError(t, err)

	parsed, ok := parsePEMPublicKey(t, pemStr).(*ecdsa.PublicKey)
	require.True(t, ok)
	require.True(t, privateKey.PublicKey.Equal(parsed))
}

func TestJWK_Unsupported(t *testing.T) {
	tests := []struct {
		name string
		jwk  JWK
	}{
		{"rsa", JWK{Kty: "RSA", Kid: "r"}},
		{"okp other curve", JWK{Kty: "OKP", Crv: "X25519", X: "AAAA"}},
		{"ec other curve", JWK{Kty: "EC", Crv: "P-384", X: "AAAA", Y: "AAAA"}},
		{"bad base64", JWK{Kty: "OKP", Crv: "Ed25519", X: "!!!"}},
		{"short ed25519", JWK{Kty: "OKP", Crv: "Ed25519", X: "AAAA"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.jwk.PEM()
			require.Error(t, err)
		})
	}
}

func TestKeySet_ResetFromJWKS(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	jwks := JWKS{Keys: []JWK{NewEd25519JWK("a", "sig", AlgorithmEdDSA, pub)}}

	// Round trip through JSON the way a resource service would receive it.
	raw, err := json.Marshal(jwks)
	require.NoError(t, err)
	var fetched JWKS
	require.NoError(t, json.Unmarshal(raw, &fetched))

	ks := NewKeySet()
	require.False(t, ks.IsReady())
	require.NoError(t, ks.ResetFromJWKS(fetched))
	require.True(t, ks.IsReady())

	key, err := ks.Get("a")
	require.NoError(t, err)
	require.Equal(t, pub, key)

	_, err = ks.Get("b")
	require.ErrorIs(t, err, ErrNoKey)

	require.Error(t, ks.ResetFromJWKS(JWKS{Keys: []JWK{{Kty: "RSA", Kid: "r"}}}))
	// A failed reset keeps the previous keys.
	_, err = ks.Get("a")
	require.NoError(t, err)
}
