package auth_test

import (
	"testing"

	"github.com/aussiebroadwan/idgate/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestBootstrapAdminManagesRoles checks the bootstrap email gets ADMIN and
// that role changes apply from the next login.
func TestBootstrapAdminManagesRoles(t *testing.T) {
	stack := setupStack(t)
	ctx := t.Context()

	stack.registerVerified(t, adminEmail, adminPassword)
	admin := stack.login(t, adminEmail, adminPassword)

	adminProfile, err := admin.Profile(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"ADMIN", "USER"}, adminProfile.Roles)

	roles, err := admin.ListRoles(ctx)
	require.NoError(t, err)
	names := make([]string, 0, len(roles.Roles))
	for _, r := range roles.Roles {
		names = append(names, r.Name)
	}
	require.Equal(t, []string{"ADMIN", "MODERATOR", "USER"}, names)

	const email, password = "erin@example.com", "erin-pw"
	stack.registerVerified(t, email, password)
	user := stack.login(t, email, password)

	_, err = user.ListRoles(ctx)
	require.ErrorIs(t, err, authsdk.ErrForbidden)

	userProfile, err := user.Profile(ctx)
	require.NoError(t, err)

	require.NoError(t, admin.GrantRole(ctx, userProfile.ID, "MODERATOR"))
	require.ErrorIs(t, admin.GrantRole(ctx, userProfile.ID, "SUPERUSER"), authsdk.ErrNotFound)

	refreshed, err := stack.login(t, email, password).Profile(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"MODERATOR", "USER"}, refreshed.Roles)

	require.NoError(t, admin.RevokeRole(ctx, userProfile.ID, "MODERATOR"))
	require.ErrorIs(t, admin.RevokeRole(ctx, userProfile.ID, "MODERATOR"), authsdk.ErrNotFound)
}
