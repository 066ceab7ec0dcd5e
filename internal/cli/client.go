package cli

import (
	"context"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/authclient/pkg/auth"
	"github.com/dmitrymomot/authclient/pkg/guard"
	"github.com/dmitrymomot/authclient/pkg/httpserver"
	"github.com/dmitrymomot/authclient/pkg/logger"
	"github.com/dmitrymomot/authclient/pkg/metrics"
	"github.com/dmitrymomot/authclient/pkg/redis"
	"github.com/dmitrymomot/authclient/pkg/refresh"
	"github.com/dmitrymomot/authclient/pkg/session"
	"github.com/dmitrymomot/authclient/pkg/transport"
)

// Client is one wired session: transport, coordinator, store and manager
// sharing the same cookie jar.
type Client struct {
	Transport *transport.HTTPTransport
	Coord     *refresh.Coordinator
	Store     *session.Store
	Hints     session.HintStore
	Manager   *auth.Manager
	Policy    guard.Policy
	Metrics   *metrics.Collector
	Logger    *slog.Logger

	checks []httpserver.Check
	closer func() error
}

// NewClient builds a Client from s. Close releases the Redis connection when
// the redis hint backend is selected.
func NewClient(ctx context.Context, s Settings, log *slog.Logger) (*Client, error) {
	log = logger.OrNop(log)

	policy, err := guard.NewPolicy(s.Guard)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	tr, err := transport.New(s.Transport,
		transport.WithLogger(log),
		transport.WithCircuitBreaker(transport.NewCircuitBreaker(0, 0, 0).OnStateChange(m.ObserveCircuit)),
		transport.WithOnExchange(m.ObserveExchange),
	)
	if err != nil {
		return nil, err
	}

	c := &Client{Transport: tr, Policy: policy, Metrics: m, Logger: log, closer: func() error { return nil }}

	var rdb goredis.UniversalClient
	if s.Hint.Backend == session.HintBackendRedis {
		client, err := redis.Connect(ctx, s.Redis)
		if err != nil {
			return nil, fmt.Errorf("hint store: %w", err)
		}
		rdb = client
		c.closer = client.Close
		c.checks = append(c.checks, redis.Healthcheck(client))
	}

	hints, err := session.NewHintStore(s.Hint, rdb)
	if err != nil {
		_ = c.closer()
		return nil, err
	}

	c.Store = session.NewStore()
	c.Hints = hints
	c.Coord = refresh.New(tr,
		refresh.WithConfig(s.Refresh),
		refresh.WithExpirer(c.Store),
		refresh.WithOnRefresh(m.ObserveRefresh),
		refresh.WithLogger(log),
	)
	c.Manager = auth.NewManager(tr, c.Coord, c.Store,
		auth.WithHintStore(hints),
		auth.WithLogger(log),
	)
	return c, nil
}

func (c *Client) Close() error {
	return c.closer()
}
