// Package auth drives the client session lifecycle against the API.
//
// Manager performs login, registration, logout, verification and explicit
// refresh, writing the outcome to a session.Store:
//
//	store := session.NewStore()
//	coord := refresh.New(tr, refresh.WithExpirer(store))
//	mgr := auth.NewManager(tr, coord, store, auth.WithHintStore(hints))
//
//	if _, err := mgr.Bootstrap(ctx); err != nil {
//	    log.Warn("session check failed", logger.Error(err))
//	}
//	user, err := mgr.Login(ctx, "jane@example.com", "Secret1")
//	if f, ok := auth.AsFailure(err); ok {
//	    fmt.Println(f.Message) // e.g. "Invalid credentials"
//	}
//
// Login, registration, refresh and logout talk to the transport directly.
// Verification goes through the refresh coordinator, so an expired verify is
// refreshed and retried once like any other call.
//
// Every failure is a *Failure whose Kind tells rejected credentials,
// validation problems (with per-field messages), unreachable servers, expired
// sessions and unusable responses apart. Logout never fails: the server call
// is best effort and local state is always cleared.
//
// Observer listens to the store and navigates: to the login page when the
// session ends, and to the role's landing page after login or verification.
package auth
