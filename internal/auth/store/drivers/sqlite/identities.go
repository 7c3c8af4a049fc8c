package sqlite

import (
	"context"

	"github.com/aussiebroadwan/idgate/internal/auth/domain"
	"github.com/aussiebroadwan/idgate/internal/auth/store"
	"github.com/aussiebroadwan/idgate/internal/auth/store/drivers/sqlite/gen"
)

type identitiesRepo struct {
	q *gen.Queries
}

func (r *identitiesRepo) CreateIdentity(ctx context.Context, identity domain.Identity) error {
	ts := now()
	err := r.q.CreateIdentity(ctx, gen.CreateIdentityParams{
		ID:           identity.ID,
		Email:        identity.Email,
		PasswordHash: identity.PasswordHash,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	})
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}

func (r *identitiesRepo) GetIdentityByID(ctx context.Context, id string) (domain.Identity, error) {
	row, err := r.q.GetIdentityByID(ctx, id)
	if err != nil {
		return domain.Identity{}, mapNotFound(err)
	}
	return r.withRoles(ctx, row)
}

func (r *identitiesRepo) GetIdentityByEmail(ctx context.Context, email string) (domain.Identity, error) {
	row, err := r.q.GetIdentityByEmail(ctx, email)
	if err != nil {
		return domain.Identity{}, mapNotFound(err)
	}
	return r.withRoles(ctx, row)
}

func (r *identitiesRepo) SetTwoFactorEnabled(ctx context.Context, id string, enabled bool) error {
	var (
		n   int64
		err error
	)
	if enabled {
		n, err = r.q.EnableTwoFactor(ctx, gen.EnableTwoFactorParams{UpdatedAt: now(), ID: id})
	} else {
		n, err = r.q.DisableTwoFactor(ctx, gen.DisableTwoFactorParams{UpdatedAt: now(), ID: id})
	}
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *identitiesRepo) withRoles(ctx context.Context, row gen.Identity) (domain.Identity, error) {
	roles, err := r.q.ListIdentityRoleNames(ctx, row.ID)
	if err != nil {
		return domain.Identity{}, err
	}
	return mapIdentity(row, roles), nil
}
