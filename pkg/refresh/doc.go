// Package refresh recovers a cookie-carried session from expired credentials.
//
// Coordinator.Call sends a request through a transport.Transport. When the
// server answers 401 to a request that is not itself an auth endpoint, the
// call joins the single outstanding refresh (starting it if none is in
// flight), waits for it, and re-issues the original request exactly once.
//
//	coord := refresh.New(tr,
//	    refresh.WithExpirer(store),
//	    refresh.WithLogger(log),
//	)
//	var bookings []Booking
//	if _, err := coord.Do(ctx, transport.Request{Path: "/bookings"}, &bookings); err != nil {
//	    if errors.Is(err, refresh.ErrSessionExpired) {
//	        // store already cleared; send the user to the login page
//	    }
//	    return err
//	}
//
// At most one refresh runs per coordinator. Callers arriving while it runs
// are queued on a shared async.Future and all observe the same outcome. The
// refresh runs detached from any single caller's context and is bounded by
// Config.RefreshTimeout; a timeout is a failure.
//
// A failed refresh, or a second 401 on the retried request, is terminal: the
// store given to WithExpirer is expired and every affected caller gets an
// error wrapping ErrSessionExpired. Network failures are returned as they are
// and never treated as expiry.
//
// Flight is the underlying single-flight primitive and can be used on its own.
package refresh
