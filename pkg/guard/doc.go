// Package guard decides who may enter role-restricted parts of an application.
//
// Policy.Decide is a pure function of the session state and a route's role
// requirement. The decision is one of three actions:
//
//   - show-loading while the session is still being verified (never a
//     redirect, so a reload does not bounce a logged-in user to login);
//   - redirect to the login path, remembering the requested path, when there
//     is no session;
//   - redirect to the role's own landing page when the role is not allowed;
//   - render otherwise.
//
// Areas is an ordered prefix table mapping subtrees such as /admin to the
// roles allowed there. It can be loaded from YAML with LoadAreas.
//
// Middleware applies a Policy to net/http handlers:
//
//	r := chi.NewRouter()
//	r.Route("/admin", func(r chi.Router) {
//	    r.Use(guard.Middleware(policy, store))
//	    r.Get("/dashboard", adminDashboard)
//	})
package guard
