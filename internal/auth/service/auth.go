package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/aussiebroadwan/idgate/internal/auth/domain"
	"github.com/aussiebroadwan/idgate/internal/auth/store"
	"github.com/aussiebroadwan/idgate/pkg/idx"
	"github.com/aussiebroadwan/idgate/pkg/jwtx"
	"github.com/aussiebroadwan/idgate/pkg/slogx"
)

// MinPasswordLength is the shortest password Register accepts.
const MinPasswordLength = 6

// Notifier delivers challenge secrets out of band.
type Notifier interface {
	SendVerificationEmail(ctx context.Context, to, token string) error
	SendTwoFactorCode(ctx context.Context, to, code string) error
}

// LoginResult is what Login and VerifyTwoFactor hand back. A temporary
// token has RequiresTwoFactor set.
type LoginResult struct {
	AccessToken       string
	ExpiresIn         time.Duration
	RequiresTwoFactor bool
}

// Profile is the caller's view of their own identity.
type Profile struct {
	ID               string
	Email            string
	Roles            []string
	EmailVerified    bool
	TwoFactorEnabled bool
}

// AuthService drives registration, email verification, login and the
// two-factor handshake.
type AuthService struct {
	Store       store.Store
	Credentials *CredentialVerifier
	Challenges  *ChallengeStore
	Tokens      *TokenIssuer
	Notifier    Notifier

	// BootstrapAdminEmail is granted ADMIN on registration.
	BootstrapAdminEmail string
}

// Register creates an unverified identity holding USER and emails it a
// verification link. No token is returned.
func (s *AuthService) Register(ctx context.Context, email, password string) error {
	log := slogx.FromContext(ctx)

	email = domain.NormalizeEmail(email)
	if err := validateRegistration(email, password); err != nil {
		return err
	}

	hash, err := s.Credentials.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	identityID := idx.New().String()
	roles := []string{domain.RoleUser}
	if s.BootstrapAdminEmail != "" && email == domain.NormalizeEmail(s.BootstrapAdminEmail) {
		roles = append(roles, domain.RoleAdmin)
	}

	var token string
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		err := tx.Identities().CreateIdentity(ctx, domain.Identity{
			ID:           identityID,
			Email:        email,
			PasswordHash: hash,
		})
		if errors.Is(err, store.ErrAlreadyExists) {
			return ErrConflict
		}
		if err != nil {
			return fmt.Errorf("create identity: %w", err)
		}

		for _, name := range roles {
			role, err := tx.Roles().GetRoleByName(ctx, name)
			if err != nil {
				return fmt.Errorf("lookup role %s: %w", name, err)
			}
			if err := tx.Roles().AssignRole(ctx, identityID, role.ID); err != nil {
				return fmt.Errorf("assign role %s: %w", name, err)
			}
		}

		token, err = s.Challenges.issueEmailChallenge(ctx, tx.Challenges(), identityID)
		return err
	})
	if err != nil {
		return err
	}

	log.Info("identity registered", "identity_id", identityID, "roles", roles)
	return s.notifyVerification(ctx, email, token)
}

func validateRegistration(email, password string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: email must be a plain address", ErrInvalidInput)
	}
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, MinPasswordLength)
	}
	return nil
}

// VerifyEmail consumes a verification token. A token works once.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	identity, err := s.Challenges.ConsumeEmailChallenge(ctx, token)
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("email verified", "identity_id", identity.ID)
	return nil
}

// ResendVerification issues a fresh verification token, invalidating the
// previous one.
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	identity, err := s.Store.Identities().GetIdentityByEmail(ctx, domain.NormalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("lookup identity: %w", err)
	}
	if identity.EmailVerified {
		return ErrAlreadyVerified
	}

	token, err := s.Challenges.IssueEmailChallenge(ctx, identity.ID)
	if err != nil {
		return err
	}
	return s.notifyVerification(ctx, identity.Email, token)
}

// Login checks the password. Identities without two-factor get a full
// token; the rest get a temporary token and a code by email.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	log := slogx.FromContext(ctx)

	identity, err := s.Store.Identities().GetIdentityByEmail(ctx, domain.NormalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		s.Credentials.VerifyDummy(password)
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, fmt.Errorf("lookup identity: %w", err)
	}

	if !s.Credentials.Verify(password, identity.PasswordHash) {
		log.Info("login rejected", "identity_id", identity.ID)
		return LoginResult{}, ErrInvalidCredentials
	}
	if !identity.EmailVerified {
		return LoginResult{}, ErrEmailNotVerified
	}

	if !identity.TwoFactorEnabled {
		return s.issueFull(identity)
	}

	code, err := s.Challenges.IssueTwoFactorChallenge(ctx, identity.ID)
	if err != nil {
		return LoginResult{}, err
	}
	if err := s.Notifier.SendTwoFactorCode(ctx, identity.Email, code); err != nil {
		log.Error("two-factor code delivery failed", "identity_id", identity.ID, "err", err)
		return LoginResult{}, fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}

	token, ttl, err := s.Tokens.IssueTemporary(identity)
	if err != nil {
		return LoginResult{}, fmt.Errorf("sign temporary token: %w", err)
	}

	log.Info("two-factor challenge issued", "identity_id", identity.ID)
	return LoginResult{AccessToken: token, ExpiresIn: ttl, RequiresTwoFactor: true}, nil
}

// VerifyTwoFactor exchanges the caller's temporary token and emailed code
// for a full token.
func (s *AuthService) VerifyTwoFactor(ctx context.Context, claims jwtx.Claims, code string) (LoginResult, error) {
	if err := TemporaryOnly(claims); err != nil {
		return LoginResult{}, err
	}

	ok, err := s.Challenges.ConsumeTwoFactorChallenge(ctx, claims.Subject, code)
	if err != nil {
		return LoginResult{}, err
	}
	if !ok {
		return LoginResult{}, ErrInvalidOrExpiredCode
	}

	identity, err := s.Store.Identities().GetIdentityByID(ctx, claims.Subject)
	if errors.Is(err, store.ErrNotFound) {
		return LoginResult{}, ErrUnauthorized
	}
	if err != nil {
		return LoginResult{}, fmt.Errorf("lookup identity: %w", err)
	}

	slogx.FromContext(ctx).Info("two-factor verified", "identity_id", identity.ID)
	return s.issueFull(identity)
}

// EnableTwoFactor turns on emailed codes for the caller.
func (s *AuthService) EnableTwoFactor(ctx context.Context, claims jwtx.Claims) error {
	return s.setTwoFactor(ctx, claims, true)
}

// DisableTwoFactor turns off emailed codes and drops any pending code.
func (s *AuthService) DisableTwoFactor(ctx context.Context, claims jwtx.Claims) error {
	return s.setTwoFactor(ctx, claims, false)
}

func (s *AuthService) setTwoFactor(ctx context.Context, claims jwtx.Claims, enabled bool) error {
	if err := Verified(claims); err != nil {
		return err
	}

	err := s.Store.Identities().SetTwoFactorEnabled(ctx, claims.Subject, enabled)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update two-factor: %w", err)
	}

	slogx.FromContext(ctx).Info("two-factor updated", "identity_id", claims.Subject, "enabled", enabled)
	return nil
}

// Profile returns the caller's identity as currently stored.
func (s *AuthService) Profile(ctx context.Context, claims jwtx.Claims) (Profile, error) {
	if err := Verified(claims); err != nil {
		return Profile{}, err
	}

	identity, err := s.Store.Identities().GetIdentityByID(ctx, claims.Subject)
	if errors.Is(err, store.ErrNotFound) {
		return Profile{}, ErrNotFound
	}
	if err != nil {
		return Profile{}, fmt.Errorf("lookup identity: %w", err)
	}

	return Profile{
		ID:               identity.ID,
		Email:            identity.Email,
		Roles:            identity.Roles,
		EmailVerified:    identity.EmailVerified,
		TwoFactorEnabled: identity.TwoFactorEnabled,
	}, nil
}

func (s *AuthService) issueFull(identity domain.Identity) (LoginResult, error) {
	token, ttl, err := s.Tokens.IssueFull(identity)
	if err != nil {
		return LoginResult{}, fmt.Errorf("sign session token: %w", err)
	}
	return LoginResult{AccessToken: token, ExpiresIn: ttl}, nil
}

// notifyVerification runs after the challenge is stored, so a failed
// delivery can be retried with ResendVerification.
func (s *AuthService) notifyVerification(ctx context.Context, email, token string) error {
	if err := s.Notifier.SendVerificationEmail(ctx, email, token); err != nil {
		slogx.FromContext(ctx).Error("verification email delivery failed", "err", err)
		return fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}
	return nil
}
