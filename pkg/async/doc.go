// Package async provides generic futures and promises.
//
// A Future is the read side of a result that arrives later. It is produced
// either by Async, which runs a function in its own goroutine, or by a
// Promise, which is settled by whoever owns it. A promise settles exactly
// once: the first Resolve or Reject wins and later calls report false.
//
// Waiting is context-aware. Future.Await returns ctx.Err() when the caller's
// context ends first; the future itself stays pending and other waiters are
// unaffected. This is what lets the refresh coordinator hand one promise per
// queued caller and settle them all in a single pass.
//
// # Usage
//
//	p := async.NewPromise[string]()
//	go func() { p.Resolve("ready") }()
//
//	v, err := p.Future().Await(ctx)
//
//	f := async.Async(ctx, 42, func(_ context.Context, v int) (string, error) {
//	    return strconv.Itoa(v), nil
//	})
//	res, err := f.Await(ctx)
//
// WaitAll and WaitAny coordinate several futures.
package async
