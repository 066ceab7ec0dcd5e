package session

import (
	"context"
	"sync"
)

// Reason explains why the session changed.
type Reason string

const (
	ReasonLogin        Reason = "login"
	ReasonLogout       Reason = "logout"
	ReasonVerified     Reason = "verified"
	ReasonVerifyFailed Reason = "verify_failed"
	ReasonExpired      Reason = "expired"
)

// Change is delivered to subscribers whenever the session value changes.
type Change struct {
	Prev    Session
	Current Session
	Reason  Reason
}

// Snapshot is a consistent view of the store.
type Snapshot struct {
	Session Session
	Loading bool
}

// Store holds the single current session of a client. Safe for concurrent use.
//
// The store starts Unauthenticated with the loading flag set. Writes that do
// not change the session are not announced.
type Store struct {
	mu      sync.RWMutex
	current Session
	loading bool

	subs       map[*subscription]struct{}
	bufferSize int
}

type subscription struct {
	ch     chan Change
	closed bool
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithBufferSize sets the per-subscriber channel buffer. Minimum 1.
func WithBufferSize(n int) StoreOption {
	return func(s *Store) {
		s.bufferSize = max(n, 1)
	}
}

// WithInitial seeds the store, for example in tests.
func WithInitial(sess Session, loading bool) StoreOption {
	return func(s *Store) {
		s.current = normalize(sess)
		s.loading = loading
	}
}

func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		current:    Unauthenticated{},
		loading:    true,
		subs:       make(map[*subscription]struct{}),
		bufferSize: 16,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Session() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Session: s.current, Loading: s.loading}
}

// Set replaces the session and reports whether it changed.
func (s *Store) Set(sess Session, reason Reason) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replace(normalize(sess), reason)
}

// Clear sets the session to Unauthenticated. Returns false when it already was.
func (s *Store) Clear(reason Reason) bool {
	return s.Set(Unauthenticated{}, reason)
}

// Expire clears the session with ReasonExpired.
func (s *Store) Expire() bool {
	return s.Clear(ReasonExpired)
}

func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
}

// Subscribe returns a channel of changes that is closed when ctx is done.
// With a context that is never done the subscription lives as long as the
// store. Changes made before Subscribe returns are not delivered. A subscriber
// that falls behind by more than the buffer misses events rather than
// blocking writers.
func (s *Store) Subscribe(ctx context.Context) <-chan Change {
	sub := &subscription{ch: make(chan Change, s.bufferSize)}

	s.mu.Lock()
	s.subs[sub] = struct{}{}
	s.mu.Unlock()

	if ctx.Done() == nil {
		return sub.ch
	}
	go func() {
		<-ctx.Done()
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, sub)
		if !sub.closed {
			sub.closed = true
			close(sub.ch)
		}
	}()

	return sub.ch
}

// must hold s.mu
func (s *Store) replace(next Session, reason Reason) bool {
	if Equal(s.current, next) {
		return false
	}
	change := Change{Prev: s.current, Current: next, Reason: reason}
	s.current = next

	for sub := range s.subs {
		select {
		case sub.ch <- change:
		default:
		}
	}
	return true
}
