// Package httpserver hosts the local shell behind `authclient serve`.
//
// Run opens the listener, reports the bound address to start hooks (so ":0"
// works in tests) and drains the server when its context ends:
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	err := srv.Run(ctx, router)
//
// HealthCheckHandler turns dependency probes into a readiness endpoint.
package httpserver
