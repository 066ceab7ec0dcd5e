package refresh_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authclient/pkg/async"
	"github.com/dmitrymomot/authclient/pkg/refresh"
)

func TestFlight_JoinAndResolve(t *testing.T) {
	t.Parallel()

	var f refresh.Flight
	assert.Equal(t, refresh.Idle, f.State())
	assert.Equal(t, 0, f.Queued())

	first, leader := f.Join()
	assert.True(t, leader)
	assert.Equal(t, refresh.Refreshing, f.State())

	second, leader := f.Join()
	assert.False(t, leader)
	assert.Same(t, first, second)
	assert.Equal(t, 2, f.Queued())

	assert.Equal(t, 2, f.ResolveAll())
	assert.Equal(t, refresh.Idle, f.State())
	assert.Equal(t, 0, f.Queued())

	_, err := first.Await(context.Background())
	assert.NoError(t, err)
}

func TestFlight_RejectAll(t *testing.T) {
	t.Parallel()

	var f refresh.Flight
	want := errors.New("refresh failed")

	futures := make([]*async.Future[struct{}], 3)
	for i := range futures {
		futures[i], _ = f.Join()
	}
	assert.Equal(t, 3, f.RejectAll(want))

	for _, fut := range futures {
		_, err := fut.Await(context.Background())
		assert.Same(t, want, err)
	}
}

func TestFlight_NewRefreshAfterSettle(t *testing.T) {
	t.Parallel()

	var f refresh.Flight
	old, _ := f.Join()
	f.ResolveAll()

	next, leader := f.Join()
	assert.True(t, leader)
	assert.NotSame(t, old, next)
	assert.False(t, next.IsComplete())
	f.RejectAll(errors.New("x"))
}

func TestFlight_SettleIdle(t *testing.T) {
	t.Parallel()

	var f refresh.Flight
	assert.Equal(t, 0, f.ResolveAll())
	assert.Equal(t, 0, f.RejectAll(errors.New("x")))
}

func TestFlight_ConcurrentJoinHasOneLeader(t *testing.T) {
	t.Parallel()

	var f refresh.Flight
	var mu sync.Mutex
	leaders := 0

	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, leader := f.Join(); leader {
				mu.Lock()
				leaders++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, leaders)
	assert.Equal(t, 100, f.ResolveAll())
}

func TestFlight_Generation(t *testing.T) {
	t.Parallel()

	var f refresh.Flight
	assert.Zero(t, f.Generation())

	f.Join()
	f.RejectAll(errors.New("denied"))
	assert.Zero(t, f.Generation(), "failed refresh does not advance")

	f.Join()
	f.ResolveAll()
	assert.Equal(t, uint64(1), f.Generation())

	f.ResolveAll()
	assert.Equal(t, uint64(1), f.Generation(), "idle resolve does not advance")
}

func TestFlight_Leave(t *testing.T) {
	t.Parallel()

	var f refresh.Flight
	stale, _ := f.Join()
	f.Join()
	f.Leave(stale)
	assert.Equal(t, 1, f.Queued())
	assert.Equal(t, 1, f.ResolveAll())

	f.Join()
	f.Leave(stale)
	assert.Equal(t, 1, f.Queued(), "a future from a settled refresh does not leave the next one")
}
