package jwtx

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Supported signing algorithms.
const (
	AlgorithmES256 = "ES256"
	AlgorithmEdDSA = "EdDSA"
)

// Signer is our interface for anything that can sign JWTs.
type Signer interface {
	Alg() string
	KID() string
	Sign(Claims) (string, error)
	PublicJWK() JWK
}

type keySigner struct {
	kid    string
	method jwt.SigningMethod
	key    any // ed25519.PrivateKey | *ecdsa.PrivateKey
	jwk    JWK
}

// NewSigner loads a PKCS8 PEM private key for the given algorithm.
func NewSigner(alg, kid string, pemKey []byte) (Signer, error) {
	switch alg {
	case AlgorithmEdDSA:
		return NewSignerEdDSA(kid, pemKey)
	case AlgorithmES256:
		return NewSignerES256(kid, pemKey)
	default:
		return nil, fmt.Errorf("jwtx: unsupported algorithm %q (supported: ES256, EdDSA)", alg)
	}
}

// NewSignerEdDSA creates an EdDSA signer from a PKCS8 Ed25519 key.
func NewSignerEdDSA(kid string, pemKey []byte) (Signer, error) {
	priv, err := parsePKCS8(pemKey)
	if err != nil {
		return nil, err
	}
	key, ok := priv.(ed25519.PrivateKey)
	if !ok {
		return nil, errors.New("jwtx: not Ed25519 private key")
	}

	alg := jwt.SigningMethodEdDSA.Alg()
	return &keySigner{
		kid:    kid,
		method: jwt.SigningMethodEdDSA,
		key:    key,
		jwk:    NewEd25519JWK(kid, "sig", alg, key.Public().(ed25519.PublicKey)),
	}, nil
}

// NewSignerES256 creates an ES256 signer from a PKCS8 P-256 key.
func NewSignerES256(kid string, pemKey []byte) (Signer, error) {
	priv, err := parsePKCS8(pemKey)
	if err != nil {
		return nil, err
	}
	key, ok := priv.(*ecdsa.PrivateKey)
	if !ok {
		return nil, errors.New("jwtx: not ECDSA private key")
	}
	if name := key.Curve.Params().Name; name != "P-256" {
		return nil, fmt.Errorf("jwtx: expected P-256 curve, got %s", name)
	}

	alg := jwt.SigningMethodES256.Alg()
	return &keySigner{
		kid:    kid,
		method: jwt.SigningMethodES256,
		key:    key,
		jwk:    NewES256JWK(kid, "sig", alg, &key.PublicKey),
	}, nil
}

func (s *keySigner) Alg() string    { return s.method.Alg() }
func (s *keySigner) KID() string    { return s.kid }
func (s *keySigner) PublicJWK() JWK { return s.jwk }

// Sign serialises claims and signs them with the kid in the header.
func (s *keySigner) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(s.method, claims)
	t.Header["kid"] = s.kid
	return t.SignedString(s.key)
}

func parsePKCS8(pemKey []byte) (any, error) {
	block, _ := pem.Decode(pemKey)
	if block == nil {
		return nil, errors.New("jwtx: invalid PEM private key")
	}
	if block.Type != "PRIVATE KEY" {
		return nil, fmt.Errorf("jwtx: expected PRIVATE KEY, got %q (PKCS8 required)", block.Type)
	}

	priv, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("jwtx: parse PKCS8: %w", err)
	}
	return priv, nil
}
