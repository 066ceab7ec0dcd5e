package refresh

import (
	"sync"

	"github.com/dmitrymomot/authclient/pkg/async"
)

// State is the refresh state of a Flight.
type State int

const (
	Idle State = iota
	Refreshing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Refreshing:
		return "refreshing"
	default:
		return "unknown"
	}
}

// Flight collapses concurrent refresh attempts into one. The zero value is
// an idle flight ready for use.
type Flight struct {
	mu      sync.Mutex
	promise *async.Promise[struct{}]
	waiters int
	gen     uint64
}

// Join attaches the caller to the current refresh, starting one if the flight
// is idle. leader is true for the caller that started it; that caller must
// eventually call ResolveAll or RejectAll.
func (f *Flight) Join() (future *async.Future[struct{}], leader bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.waiters++
	if f.promise == nil {
		f.promise = async.NewPromise[struct{}]()
		return f.promise.Future(), true
	}
	return f.promise.Future(), false
}

// Leave detaches a waiter that stopped waiting on future. It is a no-op once
// that refresh has settled, so a late Leave never touches a newer refresh.
func (f *Flight) Leave(future *async.Future[struct{}]) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.promise != nil && f.promise.Future() == future && f.waiters > 0 {
		f.waiters--
	}
}

// ResolveAll settles every waiter with success, returns the flight to Idle
// and reports how many waiters were released.
func (f *Flight) ResolveAll() int {
	p, n := f.finish(true)
	if p != nil {
		p.Resolve(struct{}{})
	}
	return n
}

// RejectAll settles every waiter with err, returns the flight to Idle and
// reports how many waiters were released.
func (f *Flight) RejectAll(err error) int {
	p, n := f.finish(false)
	if p != nil {
		p.Reject(err)
	}
	return n
}

func (f *Flight) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.promise == nil {
		return Idle
	}
	return Refreshing
}

// Queued is the number of callers waiting on the current refresh, leader
// included. Callers that left through Leave are not counted.
func (f *Flight) Queued() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.waiters
}

// Generation counts successful refreshes. A caller that saw a 401 under an
// older generation already has fresh credentials available.
func (f *Flight) Generation() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gen
}

func (f *Flight) finish(ok bool) (*async.Promise[struct{}], int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, n := f.promise, f.waiters
	f.promise, f.waiters = nil, 0
	if ok && p != nil {
		f.gen++
	}
	return p, n
}
