// Package transport issues the HTTP calls made on behalf of a client session.
//
// A call is described by a Request (method, path relative to the API base URL,
// optional JSON body, optional headers) and answered with a Response (status,
// headers, body) or an error. Only failures that prevent a response from being
// read are errors: network problems (ErrNetwork), per-call timeouts
// (ErrTimeout), an open circuit breaker (ErrCircuitOpen) and oversized bodies
// (ErrResponseTooLarge). Any HTTP status, including 401, comes back as a
// Response so the refresh coordinator can interpret it; Response.Err converts a
// non-2xx response into a *StatusError for callers that want an error.
//
// # Credentials
//
// HTTPTransport owns a cookie jar and sends the server-issued session cookie on
// every call. Set Request.OmitCredentials to send a call without the jar.
//
// # Usage
//
//	tr, err := transport.New(transport.DefaultConfig(),
//	    transport.WithLogger(log),
//	    transport.WithCircuitBreaker(transport.NewCircuitBreaker(5, 2, 30*time.Second)),
//	)
//	if err != nil {
//	    return err
//	}
//
//	resp, err := tr.Do(ctx, transport.Request{Method: http.MethodGet, Path: "/bookings"})
//	if err != nil {
//	    return err // network failure
//	}
//	if err := resp.Err(); err != nil {
//	    return err // *transport.StatusError
//	}
//
// The circuit breaker is shared by every call of one transport. Network errors
// and 5xx responses count as failures; any other response closes it again.
// The transport never retries on its own: the one retry a call may get belongs
// to the refresh coordinator.
package transport
