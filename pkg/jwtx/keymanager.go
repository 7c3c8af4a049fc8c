package jwtx

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/aussiebroadwan/idgate/pkg/cryptox"
)

// KeyManager owns the signing keys of one instance and the KeySet that
// publishes their public halves.
//
// Keys are ephemeral: they only live in memory, so every token is
// invalidated when the process restarts.
type KeyManager struct {
	Verifier  Verifier
	KeySet    *KeySet
	algorithm string

	signers []Signer
}

// KeyManagerOptions configures NewEphemeralKeyManager.
type KeyManagerOptions struct {
	// Algorithm is AlgorithmEdDSA (default) or AlgorithmES256.
	Algorithm string

	// Issuer is stamped on and enforced for every token.
	Issuer string

	// NumKeys is how many signing keys to generate, 1 to 10. Defaults to 3.
	NumKeys int

	// Leeway for exp/nbf checks.
	Leeway time.Duration

	// Now overrides the verification clock. Defaults to time.Now.
	Now func() time.Time
}

// NewEphemeralKeyManager generates fresh signing keys and a verifier
// over them.
func NewEphemeralKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, fmt.Errorf("jwtx: Issuer is required")
	}
	if opts.Algorithm == "" {
		opts.Algorithm = AlgorithmEdDSA
	}

	numKeys := opts.NumKeys
	if numKeys <= 0 {
		numKeys = 3
	}
	if numKeys > 10 {
		numKeys = 10
	}

	verifierKeys := NewKeySet()
	verifier, err := NewVerifier(verifierKeys, VerifyOptions{
		Algorithm: opts.Algorithm,
		Issuer:    opts.Issuer,
		Leeway:    opts.Leeway,
		Now:       opts.Now,
	})
	if err != nil {
		return nil, err
	}

	signers := make([]Signer, 0, numKeys)
	for i := range numKeys {
		signer, err := generateSigner(opts.Algorithm)
		if err != nil {
			return nil, fmt.Errorf("jwtx: generate signer %d: %w", i+1, err)
		}
		if err := verifierKeys.AddSigner(signer); err != nil {
			return nil, fmt.Errorf("jwtx: add signer %d to keyset: %w", i+1, err)
		}
		signers = append(signers, signer)
	}

	return &KeyManager{
		Verifier:  verifier,
		KeySet:    verifierKeys,
		algorithm: opts.Algorithm,
		signers:   signers,
	}, nil
}

func generateSigner(algorithm string) (Signer, error) {
	token, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return nil, fmt.Errorf("key id: %w", err)
	}
	kid := "idgate-" + token

	var pemBytes []byte
	switch algorithm {
	case AlgorithmES256:
		pemBytes, err = cryptox.GenerateES256Key()
	case AlgorithmEdDSA:
		pemBytes, err = cryptox.GenerateEd25519Key()
	default:
		return nil, fmt.Errorf("unsupported algorithm %q", algorithm)
	}
	if err != nil {
		return nil, err
	}
	return NewSigner(algorithm, kid, pemBytes)
}

// Algorithm returns the signing algorithm being used.
func (km *KeyManager) Algorithm() string {
	return km.algorithm
}

// IsReady returns true if the KeyManager has keys loaded.
func (km *KeyManager) IsReady() bool {
	return km.KeySet.IsReady()
}

// GetSigner returns one of the signing keys at random.
func (km *KeyManager) GetSigner() Signer {
	switch len(km.signers) {
	case 0:
		return nil
	case 1:
		return km.signers[0]
	}
	return km.signers[rand.IntN(len(km.signers))]
}

// NumSigners returns the number of signing keys.
func (km *KeyManager) NumSigners() int {
	return len(km.signers)
}
