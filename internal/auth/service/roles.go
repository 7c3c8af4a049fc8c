package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/idgate/internal/auth/domain"
	"github.com/aussiebroadwan/idgate/internal/auth/store"
	"github.com/aussiebroadwan/idgate/pkg/idx"
	"github.com/aussiebroadwan/idgate/pkg/slogx"
)

// RolesService backs the ADMIN-only role endpoints.
type RolesService struct {
	Store store.Store
}

// ListRoles returns every role ordered by name.
func (s *RolesService) ListRoles(ctx context.Context) ([]domain.Role, error) {
	return s.Store.Roles().ListAll(ctx)
}

// GrantRole gives identityID the named role. Granting a held role is a
// no-op. Unknown identities and roles are ErrNotFound.
func (s *RolesService) GrantRole(ctx context.Context, identityID, roleName string) error {
	identity, role, err := s.resolve(ctx, identityID, roleName)
	if err != nil {
		return err
	}
	if identity.HasRole(role.Name) {
		return nil
	}

	err = s.Store.Roles().AssignRole(ctx, identity.ID, role.ID)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: identity", ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("assign role: %w", err)
	}

	slogx.FromContext(ctx).Info("role granted", "identity_id", identity.ID, "role", role.Name)
	return nil
}

// RevokeRole removes the named role. ErrNotFound if it was not held.
func (s *RolesService) RevokeRole(ctx context.Context, identityID, roleName string) error {
	identity, role, err := s.resolve(ctx, identityID, roleName)
	if err != nil {
		return err
	}
	if !identity.HasRole(role.Name) {
		return fmt.Errorf("%w: role not held", ErrNotFound)
	}

	err = s.Store.Roles().UnassignRole(ctx, identity.ID, role.ID)
	if errors.Is(err, store.ErrNotFound) {
		// Revoked concurrently.
		return fmt.Errorf("%w: role not held", ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("unassign role: %w", err)
	}

	slogx.FromContext(ctx).Info("role revoked", "identity_id", identity.ID, "role", role.Name)
	return nil
}

func (s *RolesService) resolve(ctx context.Context, identityID, roleName string) (domain.Identity, domain.Role, error) {
	if _, err := idx.Parse(identityID); err != nil {
		return domain.Identity{}, domain.Role{}, fmt.Errorf("%w: identity", ErrNotFound)
	}

	identity, err := s.Store.Identities().GetIdentityByID(ctx, identityID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Identity{}, domain.Role{}, fmt.Errorf("%w: identity", ErrNotFound)
	}
	if err != nil {
		return domain.Identity{}, domain.Role{}, fmt.Errorf("lookup identity: %w", err)
	}

	role, err := s.Store.Roles().GetRoleByName(ctx, strings.ToUpper(strings.TrimSpace(roleName)))
	if errors.Is(err, store.ErrNotFound) {
		return domain.Identity{}, domain.Role{}, fmt.Errorf("%w: role", ErrNotFound)
	}
	if err != nil {
		return domain.Identity{}, domain.Role{}, fmt.Errorf("lookup role: %w", err)
	}
	return identity, role, nil
}
