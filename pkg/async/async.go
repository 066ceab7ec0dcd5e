package async

import (
	"context"
	"sync"
	"time"
)

// Future is the eventual result of an asynchronous operation.
type Future[U any] struct {
	result U
	err    error
	once   sync.Once
	done   chan struct{}
}

func newFuture[U any]() *Future[U] {
	return &Future[U]{done: make(chan struct{})}
}

// settle stores the outcome and releases waiters. Only the first call wins.
func (f *Future[U]) settle(result U, err error) bool {
	settled := false
	f.once.Do(func() {
		f.result = result
		f.err = err
		close(f.done)
		settled = true
	})
	return settled
}

// Done is closed once the future is settled.
func (f *Future[U]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the future settles or ctx is done. A cancelled wait
// returns ctx.Err() and leaves the future untouched.
func (f *Future[U]) Await(ctx context.Context) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero U
		return zero, ctx.Err()
	}
}

// AwaitWithTimeout is Await bounded by timeout; expiry yields ErrTimeout.
func (f *Future[U]) AwaitWithTimeout(timeout time.Duration) (U, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-f.done:
		return f.result, f.err
	case <-timer.C:
		var zero U
		return zero, ErrTimeout
	}
}

// IsComplete reports whether the future has settled, without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Promise is the write side of a Future. It settles exactly once.
type Promise[U any] struct {
	future *Future[U]
}

func NewPromise[U any]() *Promise[U] {
	return &Promise[U]{future: newFuture[U]()}
}

func (p *Promise[U]) Future() *Future[U] {
	return p.future
}

// Resolve fulfils the promise. Returns false if it was already settled.
func (p *Promise[U]) Resolve(result U) bool {
	return p.future.settle(result, nil)
}

// Reject fails the promise with err. Returns false if it was already settled.
func (p *Promise[U]) Reject(err error) bool {
	var zero U
	return p.future.settle(zero, err)
}

// Async runs fn in its own goroutine and returns its Future. A context that
// is already done settles the future with ctx.Err() without calling fn.
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := newFuture[U]()

	go func() {
		select {
		case <-ctx.Done():
			var zero U
			f.settle(zero, ctx.Err())
			return
		default:
		}

		res, err := fn(ctx, param)
		f.settle(res, err)
	}()

	return f
}

// WaitAll waits for every future and returns their results in order. It
// stops at the first error, or when ctx is done.
func WaitAll[U any](ctx context.Context, futures ...*Future[U]) ([]U, error) {
	results := make([]U, len(futures))

	for i, future := range futures {
		result, err := future.Await(ctx)
		results[i] = result
		if err != nil {
			return results, err
		}
	}

	return results, nil
}

// WaitAny returns the index and outcome of the first future to settle.
func WaitAny[U any](ctx context.Context, futures ...*Future[U]) (int, U, error) {
	var zero U
	if len(futures) == 0 {
		return -1, zero, ErrNoFutures
	}

	type outcome struct {
		index  int
		result U
		err    error
	}
	done := make(chan outcome, len(futures))

	for i, future := range futures {
		go func(index int, f *Future[U]) {
			select {
			case <-f.done:
				done <- outcome{index, f.result, f.err}
			case <-ctx.Done():
			}
		}(i, future)
	}

	select {
	case res := <-done:
		return res.index, res.result, res.err
	case <-ctx.Done():
		return -1, zero, ctx.Err()
	}
}
