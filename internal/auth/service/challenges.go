package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/idgate/internal/auth/domain"
	"github.com/aussiebroadwan/idgate/internal/auth/store"
	"github.com/aussiebroadwan/idgate/pkg/cryptox"
)

// ChallengeStore issues and consumes the email verification and
// two-factor challenges of an identity. Only SHA-256 fingerprints of the
// secrets reach the database.
type ChallengeStore struct {
	Store   store.Store
	Secrets SecretGenerator
	Now     func() time.Time
}

func NewChallengeStore(st store.Store, secrets SecretGenerator, now func() time.Time) *ChallengeStore {
	if secrets == nil {
		secrets = CryptoSecrets{}
	}
	if now == nil {
		now = time.Now
	}
	return &ChallengeStore{Store: st, Secrets: secrets, Now: now}
}

// IssueEmailChallenge replaces the identity's verification token and
// returns the new plaintext token.
func (c *ChallengeStore) IssueEmailChallenge(ctx context.Context, identityID string) (string, error) {
	return c.issueEmailChallenge(ctx, c.Store.Challenges(), identityID)
}

func (c *ChallengeStore) issueEmailChallenge(ctx context.Context, repo store.Challenges, identityID string) (string, error) {
	token, err := c.Secrets.NewVerificationToken()
	if err != nil {
		return "", err
	}

	expiresAt := c.Now().Add(domain.EmailChallengeTTL)
	if err := repo.PutEmailChallenge(ctx, identityID, cryptox.FingerprintToken(token), expiresAt); err != nil {
		return "", fmt.Errorf("store email challenge: %w", err)
	}
	return token, nil
}

// ConsumeEmailChallenge marks the token's owner verified. Unknown,
// expired and already used tokens all fail with ErrInvalidOrExpired.
func (c *ChallengeStore) ConsumeEmailChallenge(ctx context.Context, token string) (domain.Identity, error) {
	if token == "" {
		return domain.Identity{}, ErrInvalidOrExpired
	}

	identityID, err := c.Store.Challenges().ConsumeEmailChallenge(ctx, cryptox.FingerprintToken(token), c.Now())
	if errors.Is(err, store.ErrNotFound) {
		return domain.Identity{}, ErrInvalidOrExpired
	}
	if err != nil {
		return domain.Identity{}, fmt.Errorf("consume email challenge: %w", err)
	}

	identity, err := c.Store.Identities().GetIdentityByID(ctx, identityID)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("load verified identity: %w", err)
	}
	return identity, nil
}

// IssueTwoFactorChallenge replaces the identity's code and returns the
// new plaintext code.
func (c *ChallengeStore) IssueTwoFactorChallenge(ctx context.Context, identityID string) (string, error) {
	code, err := c.Secrets.NewTwoFactorCode()
	if err != nil {
		return "", err
	}

	expiresAt := c.Now().Add(domain.TwoFactorChallengeTTL)
	if err := c.Store.Challenges().PutTwoFactorChallenge(ctx, identityID, cryptox.FingerprintToken(code), expiresAt); err != nil {
		return "", fmt.Errorf("store two-factor challenge: %w", err)
	}
	return code, nil
}

// ConsumeTwoFactorChallenge reports whether code matches the identity's
// live challenge, clearing it on a match. A wrong code leaves the
// challenge live. Of concurrent correct submissions only one wins.
func (c *ChallengeStore) ConsumeTwoFactorChallenge(ctx context.Context, identityID, code string) (bool, error) {
	if code == "" {
		return false, nil
	}

	challenge, err := c.Store.Challenges().GetTwoFactorChallenge(ctx, identityID)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load two-factor challenge: %w", err)
	}

	if challenge.Expired(c.Now()) {
		return false, nil
	}
	if !cryptox.FingerprintMatches(code, challenge.CodeHash) {
		return false, nil
	}

	cleared, err := c.Store.Challenges().ClearTwoFactorChallenge(ctx, identityID, challenge.CodeHash)
	if err != nil {
		return false, fmt.Errorf("clear two-factor challenge: %w", err)
	}
	return cleared, nil
}
