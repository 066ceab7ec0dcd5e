package refresh

import "errors"

var (
	// ErrSessionExpired is the terminal failure: the session could not be
	// recovered and the store has been cleared.
	ErrSessionExpired = errors.New("session expired")

	ErrRefreshRejected = errors.New("refresh rejected by server")
	ErrRefreshTimeout  = errors.New("refresh timed out")
)
