// Package logger builds the *slog.Logger instances used across authclient.
//
// New creates a logger from functional options (level, format, output, static
// attributes) and wraps the handler so request-scoped values such as the
// outbound request id are read from context.Context on every record. A key
// passed explicitly on the call is never duplicated by the context value.
//
// Attribute helpers (Component, Method, Path, Status, Attempt, Reason, ...)
// keep key names consistent between the transport, the refresh coordinator,
// the session lifecycle manager and the guard.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithTextFormatter(),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//
//	log.InfoContext(ctx, "refresh completed",
//	    logger.Component("refresh"),
//	    logger.Duration(time.Since(start)),
//	)
//
// Components accept a nil logger and fall back to Nop, so libraries never
// write to stdout unless the caller asks for it.
package logger
