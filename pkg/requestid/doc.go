// Package requestid carries request correlation identifiers through
// context.Context.
//
// Every outbound call made by the transport gets an X-Request-ID header: Ensure
// reuses the id already stored in the context (so a retried call after a
// session refresh keeps the id of the original attempt) or generates a new
// UUIDv4. Middleware does the same for inbound requests served by the local
// shell (authclient serve), echoing the id back in the response.
//
// LoggerExtractor plugs into logger.WithContextExtractors so every log record
// written with a request-scoped context carries the id.
package requestid
