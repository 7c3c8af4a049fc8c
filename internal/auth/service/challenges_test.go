package service

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/idgate/internal/auth/store"
	"github.com/stretchr/testify/require"
)

func TestCryptoSecrets(t *testing.T) {
	secrets := CryptoSecrets{}
	sixDigits := regexp.MustCompile(`^[0-9]{6}$`)

	seen := make(map[string]struct{})
	for range 200 {
		code, err := secrets.NewTwoFactorCode()
		require.NoError(t, err)
		require.Regexp(t, sixDigits, code)
		seen[code] = struct{}{}
	}
	require.Greater(t, len(seen), 190, "codes should rarely repeat")

	a, err := secrets.NewVerificationToken()
	require.NoError(t, err)
	b, err := secrets.NewVerificationToken()
	require.NoError(t, err)
	require.Len(t, a, 43)
	require.NotEqual(t, a, b)
}

// race runs fn from n goroutines released at the same moment.
func race(n int, fn func()) {
	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			fn()
		}()
	}
	close(start)
	wg.Wait()
}

func TestVerifyEmail_ConcurrentSingleWinner(t *testing.T) {
	ctx := context.Background()
	env := newFileTestEnv(t)

	require.NoError(t, env.auth.Register(ctx, "race@x.com", "secret1"))
	token := env.notifier.lastToken(t, "race@x.com")

	var (
		mu         sync.Mutex
		wins       int
		unexpected []error
	)
	race(8, func() {
		err := env.auth.VerifyEmail(ctx, token)

		mu.Lock()
		defer mu.Unlock()
		switch {
		case err == nil:
			wins++
		case !errors.Is(err, ErrInvalidOrExpired):
			unexpected = append(unexpected, err)
		}
	})

	require.Empty(t, unexpected)
	require.Equal(t, 1, wins)

	identity, err := env.store.Identities().GetIdentityByEmail(ctx, "race@x.com")
	require.NoError(t, err)
	require.True(t, identity.EmailVerified)
}

func TestConsumeTwoFactorChallenge_ConcurrentSingleWinner(t *testing.T) {
	ctx := context.Background()
	env := newFileTestEnv(t)
	claims := env.verifiedIdentity(t, "race@x.com", "secret1")

	code, err := env.auth.Challenges.IssueTwoFactorChallenge(ctx, claims.Subject)
	require.NoError(t, err)

	var (
		mu         sync.Mutex
		wins       int
		unexpected []error
	)
	race(8, func() {
		ok, err := env.auth.Challenges.ConsumeTwoFactorChallenge(ctx, claims.Subject, code)

		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			unexpected = append(unexpected, err)
			return
		}
		if ok {
			wins++
		}
	})

	require.Empty(t, unexpected)
	require.Equal(t, 1, wins)

	_, err = env.store.Challenges().GetTwoFactorChallenge(ctx, claims.Subject)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestConsumeTwoFactorChallenge_NoChallenge(t *testing.T) {
	env := newTestEnv(t)
	claims := env.verifiedIdentity(t, "none@x.com", "secret1")

	ok, err := env.auth.Challenges.ConsumeTwoFactorChallenge(context.Background(), claims.Subject, "123456")
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = env.auth.Challenges.ConsumeTwoFactorChallenge(context.Background(), claims.Subject, "")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHousekeeping_ClearsExpiredChallenges(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	claims := env.verifiedIdentity(t, "hk@x.com", "secret1")

	_, err := env.auth.Challenges.IssueTwoFactorChallenge(ctx, claims.Subject)
	require.NoError(t, err)

	hk := NewHousekeepingService(env.store, discardLogger(), time.Hour)
	hk.Now = func() time.Time { return env.clock.Now().Add(time.Hour) }

	hk.Start()
	hk.Stop()

	_, err = env.store.Challenges().GetTwoFactorChallenge(ctx, claims.Subject)
	require.ErrorIs(t, err, store.ErrNotFound)
}
