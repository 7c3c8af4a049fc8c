package sqlite

import (
	"context"

	"github.com/aussiebroadwan/idgate/internal/auth/domain"
	"github.com/aussiebroadwan/idgate/internal/auth/store"
	"github.com/aussiebroadwan/idgate/internal/auth/store/drivers/sqlite/gen"
)

type rolesRepo struct {
	q *gen.Queries
}

func (r *rolesRepo) GetRoleByName(ctx context.Context, name string) (domain.Role, error) {
	row, err := r.q.GetRoleByName(ctx, name)
	if err != nil {
		return domain.Role{}, mapNotFound(err)
	}
	return mapRole(row), nil
}

func (r *rolesRepo) ListAll(ctx context.Context) ([]domain.Role, error) {
	rows, err := r.q.ListAllRoles(ctx)
	if err != nil {
		return nil, err
	}

	roles := make([]domain.Role, len(rows))
	for i, row := range rows {
		roles[i] = mapRole(row)
	}
	return roles, nil
}

func (r *rolesRepo) AssignRole(ctx context.Context, identityID, roleID string) error {
	err := r.q.AddIdentityRole(ctx, gen.AddIdentityRoleParams{
		IdentityID: identityID,
		RoleID:     roleID,
		CreatedAt:  now(),
	})
	if isForeignKeyViolation(err) {
		return store.ErrNotFound
	}
	return err
}

func (r *rolesRepo) UnassignRole(ctx context.Context, identityID, roleID string) error {
	n, err := r.q.RemoveIdentityRole(ctx, gen.RemoveIdentityRoleParams{
		IdentityID: identityID,
		RoleID:     roleID,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
