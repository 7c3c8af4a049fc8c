package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/idgate/internal/auth/domain"
	"github.com/aussiebroadwan/idgate/internal/auth/store"
	"github.com/aussiebroadwan/idgate/internal/auth/store/drivers/sqlite/gen"
)

type challengesRepo struct {
	q *gen.Queries
}

func (r *challengesRepo) PutEmailChallenge(
	ctx context.Context,
	identityID, tokenHash string,
	expiresAt time.Time,
) error {
	n, err := r.q.SetEmailChallenge(ctx, gen.SetEmailChallengeParams{
		EmailTokenHash:      mapStringNull(tokenHash),
		EmailTokenExpiresAt: toMillis(expiresAt),
		UpdatedAt:           now(),
		ID:                  identityID,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *challengesRepo) ConsumeEmailChallenge(
	ctx context.Context,
	tokenHash string,
	at time.Time,
) (string, error) {
	id, err := r.q.ConsumeEmailChallenge(ctx, gen.ConsumeEmailChallengeParams{
		UpdatedAt:           now(),
		EmailTokenHash:      mapStringNull(tokenHash),
		EmailTokenExpiresAt: toMillis(at),
	})
	if err != nil {
		return "", mapNotFound(err)
	}
	return id, nil
}

func (r *challengesRepo) PutTwoFactorChallenge(
	ctx context.Context,
	identityID, codeHash string,
	expiresAt time.Time,
) error {
	n, err := r.q.SetTwoFactorChallenge(ctx, gen.SetTwoFactorChallengeParams{
		TwoFactorCodeHash:  mapStringNull(codeHash),
		TwoFactorExpiresAt: toMillis(expiresAt),
		UpdatedAt:          now(),
		ID:                 identityID,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *challengesRepo) GetTwoFactorChallenge(
	ctx context.Context,
	identityID string,
) (domain.TwoFactorChallenge, error) {
	row, err := r.q.GetTwoFactorChallenge(ctx, identityID)
	if err != nil {
		return domain.TwoFactorChallenge{}, mapNotFound(err)
	}
	if !row.TwoFactorCodeHash.Valid || !row.TwoFactorExpiresAt.Valid {
		return domain.TwoFactorChallenge{}, store.ErrNotFound
	}
	return domain.TwoFactorChallenge{
		IdentityID: identityID,
		CodeHash:   row.TwoFactorCodeHash.String,
		ExpiresAt:  fromMillis(row.TwoFactorExpiresAt),
	}, nil
}

func (r *challengesRepo) ClearTwoFactorChallenge(
	ctx context.Context,
	identityID, codeHash string,
) (bool, error) {
	n, err := r.q.ClearTwoFactorChallenge(ctx, gen.ClearTwoFactorChallengeParams{
		UpdatedAt:         now(),
		ID:                identityID,
		TwoFactorCodeHash: mapStringNull(codeHash),
	})
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *challengesRepo) DeleteExpiredChallenges(ctx context.Context, at time.Time) (int64, error) {
	emails, err := r.q.ClearExpiredEmailChallenges(ctx, toMillis(at))
	if err != nil {
		return 0, err
	}
	codes, err := r.q.ClearExpiredTwoFactorChallenges(ctx, toMillis(at))
	if err != nil {
		return emails, err
	}
	return emails + codes, nil
}
