package idx_test

import (
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/idgate/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNewAndParse(t *testing.T) {
	id := idx.New()
	require.Len(t, id.String(), 26)
	require.False(t, id.IsZero())

	parsed, err := idx.Parse(" " + id.String() + " ")
	require.NoError(t, err)
	require.Equal(t, id, parsed)
}

func TestParse_Invalid(t *testing.T) {
	for _, s := range []string{"", "   ", "not-a-ulid", "01HZZZZZZZZZZZZZZZZZZZZZZZU", "8ZZZZZZZZZZZZZZZZZZZZZZZZZ"} {
		_, err := idx.Parse(s)
		require.ErrorIs(t, err, idx.ErrInvalid, s)
	}
}

func TestNewAt_Ordering(t *testing.T) {
	at := time.UnixMilli(1_700_000_000_000).UTC()

	a := idx.NewAt(at)
	b := idx.NewAt(at)
	c := idx.NewAt(at.Add(time.Millisecond))

	require.Less(t, a.String(), b.String(), "same millisecond stays monotonic")
	require.Less(t, b.String(), c.String())
	require.True(t, at.Equal(a.Time()))
	require.True(t, idx.Zero.Time().IsZero())
}

func TestNew_Concurrent(t *testing.T) {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[idx.ID]bool)
	)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				id := idx.New()
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	require.Len(t, seen, 800)
}
