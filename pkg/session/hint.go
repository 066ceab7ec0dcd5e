package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// HintStore remembers that a session probably exists so startup can skip a
// pointless verify call. A hint is never authoritative.
type HintStore interface {
	Mark(ctx context.Context) error
	Present(ctx context.Context) (bool, error)
	Clear(ctx context.Context) error
}

const (
	HintBackendMemory = "memory"
	HintBackendFile   = "file"
	HintBackendRedis  = "redis"
)

// HintConfig selects and configures the hint backend.
type HintConfig struct {
	Backend  string        `env:"AUTHCLIENT_HINT_BACKEND" envDefault:"memory"`
	FilePath string        `env:"AUTHCLIENT_HINT_FILE" envDefault:".authclient/session-hint"`
	RedisKey string        `env:"AUTHCLIENT_HINT_REDIS_KEY" envDefault:"authclient:session-hint"`
	TTL      time.Duration `env:"AUTHCLIENT_HINT_TTL" envDefault:"168h"`
}

// NewHintStore builds the backend named by cfg.Backend. client is only
// required for the redis backend.
func NewHintStore(cfg HintConfig, client redis.UniversalClient) (HintStore, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", HintBackendMemory:
		return NewMemoryHintStore(cfg.TTL), nil
	case HintBackendFile:
		if cfg.FilePath == "" {
			return nil, fmt.Errorf("%w: file backend needs a path", ErrInvalidHintBackend)
		}
		return NewFileHintStore(cfg.FilePath, cfg.TTL), nil
	case HintBackendRedis:
		if client == nil {
			return nil, ErrRedisClientRequired
		}
		return NewRedisHintStore(client, cfg.RedisKey, cfg.TTL), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidHintBackend, cfg.Backend)
	}
}

// MemoryHintStore keeps the hint in process memory.
type MemoryHintStore struct {
	mu        sync.Mutex
	ttl       time.Duration
	expiresAt time.Time
	marked    bool
	now       func() time.Time
}

// NewMemoryHintStore creates a hint store. A non-positive ttl never expires.
func NewMemoryHintStore(ttl time.Duration) *MemoryHintStore {
	return &MemoryHintStore{ttl: ttl, now: time.Now}
}

func (m *MemoryHintStore) Mark(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.marked = true
	if m.ttl > 0 {
		m.expiresAt = m.now().Add(m.ttl)
	}
	return nil
}

func (m *MemoryHintStore) Present(context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.marked {
		return false, nil
	}
	if m.ttl > 0 && !m.now().Before(m.expiresAt) {
		m.marked = false
		return false, nil
	}
	return true, nil
}

func (m *MemoryHintStore) Clear(context.Context) error {
	m.mu.Lock()
	m.marked = false
	m.mu.Unlock()
	return nil
}

// FileHintStore keeps the hint as a small file holding its expiry time, so it
// survives process restarts.
type FileHintStore struct {
	path string
	ttl  time.Duration
	now  func() time.Time
}

func NewFileHintStore(path string, ttl time.Duration) *FileHintStore {
	return &FileHintStore{path: path, ttl: ttl, now: time.Now}
}

func (f *FileHintStore) Mark(context.Context) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return errors.Join(ErrHintStore, err)
	}
	var content string
	if f.ttl > 0 {
		content = f.now().Add(f.ttl).UTC().Format(time.RFC3339Nano)
	}
	if err := os.WriteFile(f.path, []byte(content), 0o600); err != nil {
		return errors.Join(ErrHintStore, err)
	}
	return nil
}

func (f *FileHintStore) Present(context.Context) (bool, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, errors.Join(ErrHintStore, err)
	}
	raw := strings.TrimSpace(string(data))
	if raw == "" {
		return true, nil
	}
	expiresAt, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		// unreadable hint: treat as absent
		return false, nil
	}
	return f.now().Before(expiresAt), nil
}

func (f *FileHintStore) Clear(context.Context) error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Join(ErrHintStore, err)
	}
	return nil
}

// RedisHintStore keeps the hint under a single Redis key with a TTL.
type RedisHintStore struct {
	client redis.UniversalClient
	key    string
	ttl    time.Duration
}

func NewRedisHintStore(client redis.UniversalClient, key string, ttl time.Duration) *RedisHintStore {
	if key == "" {
		key = "authclient:session-hint"
	}
	return &RedisHintStore{client: client, key: key, ttl: max(ttl, 0)}
}

func (r *RedisHintStore) Mark(ctx context.Context) error {
	if err := r.client.Set(ctx, r.key, "1", r.ttl).Err(); err != nil {
		return errors.Join(ErrHintStore, err)
	}
	return nil
}

func (r *RedisHintStore) Present(ctx context.Context) (bool, error) {
	n, err := r.client.Exists(ctx, r.key).Result()
	if err != nil {
		return false, errors.Join(ErrHintStore, err)
	}
	return n > 0, nil
}

func (r *RedisHintStore) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return errors.Join(ErrHintStore, err)
	}
	return nil
}
