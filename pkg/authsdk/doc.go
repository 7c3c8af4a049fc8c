/*
Package authsdk provides a client SDK for the idgate identity service.

# SDKClient vs Session

The package is organized around two main types:

  - SDKClient: public endpoints (register, verify email, login, health, JWKS)
  - Session: operations that need a bearer token

Create an SDKClient and register an account:

	client := authsdk.NewSDKClient("https://id.example.com")

	// Sends a verification link to the address
	err := client.Register(ctx, "alice@example.com", "correct horse")

	// The token comes from the link
	err = client.VerifyEmail(ctx, token)

# Login and Two-Factor

Login returns a Session. When the account has emailed two-factor enabled
the session starts with a temporary token that is only accepted by
VerifyTwoFactor:

	session, err := client.Login(ctx, "alice@example.com", "correct horse")
	if err != nil {
		return err
	}
	if session.RequiresTwoFactor() {
		// code arrives by email and is valid for 5 minutes
		if err := session.VerifyTwoFactor(ctx, code); err != nil {
			return err
		}
	}

	profile, err := session.Profile(ctx)

Tokens are not refreshed. When a session token expires, log in again.

# Admin Operations

Callers holding the ADMIN role can manage role grants:

	roles, err := session.ListRoles(ctx)
	err = session.GrantRole(ctx, identityID, "MODERATOR")
	err = session.RevokeRole(ctx, identityID, "MODERATOR")

# Error Handling

Failed requests return *OAuth2Error carrying the HTTP status and the
service's error code. The predefined values match with errors.Is:

	err := client.VerifyEmail(ctx, token)
	if errors.Is(err, authsdk.ErrInvalidOrExpired) {
		// ask for a new link
	}

# Verifying Tokens

Resource services verify session tokens offline against the public keys
from GetJWKS (EdDSA or ES256).

# Thread Safety

Sessions are safe for concurrent use.
*/
package authsdk
