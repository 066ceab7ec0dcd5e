// Package session holds the client's view of who is logged in.
//
// A Session is a closed sum type: Unauthenticated or Authenticated with a
// user id, a Role and a display name. Role is the closed set ADMIN, STAFF and
// USER; NormalizeRole is the only way raw server strings become roles, and it
// maps anything unknown to USER.
//
// Store is the single mutable cell holding the current Session plus the
// loading flag that is true until the first verification finishes. Writers
// replace the session whole; subscribers receive a Change for every actual
// transition, tagged with a Reason:
//
//	store := session.NewStore()
//	changes := store.Subscribe(ctx)
//	store.Set(session.Authenticated{UserID: "42", Role: session.RoleAdmin}, session.ReasonLogin)
//	c := <-changes // c.Reason == session.ReasonLogin
//
// Clearing an already unauthenticated store is a no-op and emits nothing, so
// logout and expiry are idempotent.
//
// # Session hints
//
// HintStore records "a session probably exists" in client-local storage so
// startup can skip verification when there is clearly no session. Backends:
// memory, file and Redis (go-redis). NewHintStore picks one from HintConfig.
package session
