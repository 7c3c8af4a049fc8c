package auth_test

import (
	"testing"

	"github.com/aussiebroadwan/idgate/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestRegistrationThroughMailbox follows the emailed link to verify an account.
func TestRegistrationThroughMailbox(t *testing.T) {
	stack := setupStack(t)
	ctx := t.Context()

	const email, password = "alice@example.com", "alice-pw"

	require.NoError(t, stack.client.Register(ctx, email, password))

	_, err := stack.client.Login(ctx, email, password)
	require.ErrorIs(t, err, authsdk.ErrEmailNotVerified)

	token := stack.verificationToken(t, email, 1)
	require.NoError(t, stack.client.VerifyEmail(ctx, token))

	err = stack.client.VerifyEmail(ctx, token)
	require.ErrorIs(t, err, authsdk.ErrInvalidOrExpired, "Verification links are single use")

	profile, err := stack.login(t, email, password).Profile(ctx)
	require.NoError(t, err)
	require.Equal(t, email, profile.Email)
	require.Equal(t, []string{"USER"}, profile.Roles)
	require.True(t, profile.EmailVerified)
	require.False(t, profile.TwoFactorEnabled)
}

// TestResendVerification checks only the newest link verifies.
func TestResendVerification(t *testing.T) {
	stack := setupStack(t)
	ctx := t.Context()

	const email, password = "bob@example.com", "bob-pw-1"

	require.NoError(t, stack.client.Register(ctx, email, password))
	first := stack.verificationToken(t, email, 1)

	require.NoError(t, stack.client.ResendVerification(ctx, email))
	second := stack.verificationToken(t, email, 2)
	require.NotEqual(t, first, second)

	require.ErrorIs(t, stack.client.VerifyEmail(ctx, first), authsdk.ErrInvalidOrExpired)
	require.NoError(t, stack.client.VerifyEmail(ctx, second))

	err := stack.client.ResendVerification(ctx, email)
	require.ErrorIs(t, err, authsdk.ErrAlreadyVerified)
}

// TestInvalidCredentials verifies that unknown emails and wrong passwords
// are indistinguishable.
func TestInvalidCredentials(t *testing.T) {
	stack := setupStack(t)
	ctx := t.Context()

	stack.registerVerified(t, "carol@example.com", "carol-pw")

	_, wrongPassword := stack.client.Login(ctx, "carol@example.com", "not-it")
	_, unknownEmail := stack.client.Login(ctx, "nobody@example.com", "carol-pw")

	require.ErrorIs(t, wrongPassword, authsdk.ErrInvalidCredentials)
	require.ErrorIs(t, unknownEmail, authsdk.ErrInvalidCredentials)
	require.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

// TestInvalidAccessToken verifies that protected endpoints reject garbage tokens.
func TestInvalidAccessToken(t *testing.T) {
	stack := setupStack(t)

	_, err := stack.client.NewSessionFromToken("invalid-token-12345").Profile(t.Context())
	require.ErrorIs(t, err, authsdk.ErrInvalidToken)
}
