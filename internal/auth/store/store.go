package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/idgate/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite) implement
// this. It exposes sub-repositories so a transaction can only be opened from
// the root, never from inside another transaction.
type Store interface {
	Identities() Identities
	Roles() Roles
	Challenges() Challenges

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction. A nil return commits, anything else
	// rolls back.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Identities interface {
	// CreateIdentity inserts a new identity (id is a ULID chosen by the caller).
	// Returns ErrAlreadyExists when the email is taken.
	CreateIdentity(ctx context.Context, identity domain.Identity) error

	// GetIdentityByID returns the identity with its role names loaded.
	GetIdentityByID(ctx context.Context, id string) (domain.Identity, error)

	// GetIdentityByEmail looks up by normalized email.
	GetIdentityByEmail(ctx context.Context, email string) (domain.Identity, error)

	// SetTwoFactorEnabled toggles emailed 2FA. Disabling also clears any
	// live two-factor challenge.
	SetTwoFactorEnabled(ctx context.Context, id string, enabled bool) error
}

type Roles interface {
	GetRoleByName(ctx context.Context, name string) (domain.Role, error)

	// ListAll returns every role ordered by name.
	ListAll(ctx context.Context) ([]domain.Role, error)

	// AssignRole links a role to an identity. Assigning a held role is a no-op.
	AssignRole(ctx context.Context, identityID, roleID string) error

	// UnassignRole removes the link; ErrNotFound if the identity did not hold it.
	UnassignRole(ctx context.Context, identityID, roleID string) error
}

// Challenges holds the single live email and two-factor challenge per
// identity. Only fingerprints are stored.
type Challenges interface {
	// PutEmailChallenge replaces the identity's email challenge.
	PutEmailChallenge(ctx context.Context, identityID, tokenHash string, expiresAt time.Time) error

	// ConsumeEmailChallenge marks the owning identity verified and clears the
	// challenge in one conditional statement. Returns ErrNotFound when no
	// challenge with that fingerprint is live at now.
	ConsumeEmailChallenge(ctx context.Context, tokenHash string, now time.Time) (identityID string, err error)

	// PutTwoFactorChallenge replaces the identity's two-factor challenge.
	PutTwoFactorChallenge(ctx context.Context, identityID, codeHash string, expiresAt time.Time) error

	// GetTwoFactorChallenge returns ErrNotFound when no challenge is stored.
	GetTwoFactorChallenge(ctx context.Context, identityID string) (domain.TwoFactorChallenge, error)

	// ClearTwoFactorChallenge removes the challenge only if it still carries
	// codeHash. Reports whether this call removed it.
	ClearTwoFactorChallenge(ctx context.Context, identityID, codeHash string) (bool, error)

	// DeleteExpiredChallenges clears challenge material that expired before now.
	DeleteExpiredChallenges(ctx context.Context, now time.Time) (int64, error)
}
