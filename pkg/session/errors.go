package session

import "errors"

var (
	ErrInvalidHintBackend  = errors.New("session.invalid_hint_backend")
	ErrRedisClientRequired = errors.New("session.redis_client_required")
	ErrHintStore           = errors.New("session.hint_store_failed")
)
