package transport

import (
	"sync"
	"time"
)

// CircuitState is the state of a CircuitBreaker.
type CircuitState int

const (
	// CircuitClosed lets calls through.
	CircuitClosed CircuitState = iota
	// CircuitOpen fails calls with ErrCircuitOpen without touching the network.
	CircuitOpen
	// CircuitHalfOpen lets probe calls through until enough of them succeed.
	CircuitHalfOpen
)

func (s CircuitState) String() string {
	switch s {
	case CircuitClosed:
		return "closed"
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreaker stops a client from hammering an API that is down.
// Safe for concurrent use.
type CircuitBreaker struct {
	mu sync.Mutex

	failureThreshold int
	successThreshold int
	cooldown         time.Duration
	now              func() time.Time
	onChange         func(from, to CircuitState)

	state     CircuitState
	failures  int
	successes int
	openedAt  time.Time
}

// NewCircuitBreaker opens after failureThreshold consecutive failures, waits
// cooldown, then closes after successThreshold consecutive probe successes.
// Non-positive values fall back to 5, 2 and 30s.
func NewCircuitBreaker(failureThreshold, successThreshold int, cooldown time.Duration) *CircuitBreaker {
	if failureThreshold <= 0 {
		failureThreshold = 5
	}
	if successThreshold <= 0 {
		successThreshold = 2
	}
	if cooldown <= 0 {
		cooldown = 30 * time.Second
	}
	return &CircuitBreaker{
		failureThreshold: failureThreshold,
		successThreshold: successThreshold,
		cooldown:         cooldown,
		now:              time.Now,
	}
}

// OnStateChange registers fn to be called on every transition. fn runs while
// the breaker lock is held and must not call back into the breaker.
func (cb *CircuitBreaker) OnStateChange(fn func(from, to CircuitState)) *CircuitBreaker {
	cb.mu.Lock()
	cb.onChange = fn
	cb.mu.Unlock()
	return cb
}

// Allow reports whether a call may proceed. An open breaker moves to
// half-open once the cooldown has elapsed.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case CircuitClosed, CircuitHalfOpen:
		return true
	case CircuitOpen:
		if cb.now().Sub(cb.openedAt) >= cb.cooldown {
			cb.transition(CircuitHalfOpen)
			return true
		}
	}
	return false
}

func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case CircuitClosed:
		cb.failures = 0
	case CircuitHalfOpen:
		cb.successes++
		if cb.successes >= cb.successThreshold {
			cb.transition(CircuitClosed)
		}
	}
}

func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case CircuitClosed:
		cb.failures++
		if cb.failures >= cb.failureThreshold {
			cb.transition(CircuitOpen)
		}
	case CircuitHalfOpen:
		cb.transition(CircuitOpen)
	}
}

// State returns the current state without triggering the half-open move.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Reset closes the breaker and clears its counters.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if cb.state != CircuitClosed {
		cb.transition(CircuitClosed)
	}
	cb.failures = 0
}

// must hold cb.mu
func (cb *CircuitBreaker) transition(to CircuitState) {
	from := cb.state
	cb.state = to
	cb.successes = 0
	switch to {
	case CircuitOpen:
		cb.openedAt = cb.now()
	case CircuitClosed:
		cb.failures = 0
	}
	if cb.onChange != nil && from != to {
		cb.onChange(from, to)
	}
}
