package service

import (
	"sync"

	"github.com/aussiebroadwan/idgate/pkg/cryptox"
)

// CredentialVerifier hashes and checks passwords.
type CredentialVerifier struct {
	dummyOnce sync.Once
	dummyHash string
}

// Hash returns an argon2id PHC string for password.
func (c *CredentialVerifier) Hash(password string) (string, error) {
	return cryptox.HashPassword(password)
}

// Verify reports whether password matches hash. Malformed hashes never match.
func (c *CredentialVerifier) Verify(password, hash string) bool {
	return cryptox.VerifyPassword(password, hash) == nil
}

// fallbackDummyHash is a well-formed argon2id hash, with the same
// parameters HashPassword uses, that no password matches.
const fallbackDummyHash = "$argon2id$v=19$m=19456,t=2,p=1$UwtXldU+B+iI7NLY0Tj+1Q$f6RWnI7paLvyIeFw3JOItlpL9DSoI7XogcoI4Gwrinc"

// VerifyDummy burns the same work as Verify for logins against unknown
// emails, so response time does not reveal which emails are registered.
func (c *CredentialVerifier) VerifyDummy(password string) {
	c.dummyOnce.Do(func() {
		c.dummyHash = dummyHash(cryptox.HashPassword)
	})
	_ = cryptox.VerifyPassword(password, c.dummyHash)
}

func dummyHash(hash func(string) (string, error)) string {
	h, err := hash("idgate-dummy-password")
	if err != nil {
		return fallbackDummyHash
	}
	return h
}
