package service

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/aussiebroadwan/idgate/pkg/cryptox"
	"github.com/pquerna/otp"
)

// SecretGenerator mints challenge secrets.
type SecretGenerator interface {
	// NewVerificationToken returns an unguessable URL-safe token.
	NewVerificationToken() (string, error)

	// NewTwoFactorCode returns a six digit code uniform over 000000-999999.
	NewTwoFactorCode() (string, error)
}

// CryptoSecrets draws every secret from crypto/rand.
type CryptoSecrets struct{}

var twoFactorCodeSpace = big.NewInt(1_000_000)

func (CryptoSecrets) NewVerificationToken() (string, error) {
	return cryptox.GenerateToken(cryptox.TokenSize256)
}

func (CryptoSecrets) NewTwoFactorCode() (string, error) {
	n, err := rand.Int(rand.Reader, twoFactorCodeSpace)
	if err != nil {
		return "", fmt.Errorf("generate two-factor code: %w", err)
	}
	return otp.DigitsSix.Format(int32(n.Int64())), nil // #nosec G115 - n < 10^6
}
