package refresh

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/authclient/pkg/async"
	"github.com/dmitrymomot/authclient/pkg/logger"
	"github.com/dmitrymomot/authclient/pkg/transport"
)

// Expirer is the part of the session store the coordinator writes to.
type Expirer interface {
	Expire() bool
}

// RefreshFunc performs one refresh call. It must respect ctx.
type RefreshFunc func(ctx context.Context) error

// Outcome describes one finished refresh. Err is nil on success.
type Outcome struct {
	Err      error
	Waiters  int
	Duration time.Duration
}

// Coordinator issues calls through a Transport and recovers from expired
// credentials with a single shared refresh.
type Coordinator struct {
	transport transport.Transport
	cfg       Config
	flight    Flight
	expirer   Expirer
	refresh   RefreshFunc
	onRefresh []func(context.Context, Outcome)
	logger    *slog.Logger
}

// Option configures a Coordinator.
type Option func(*Coordinator)

func WithConfig(cfg Config) Option {
	return func(c *Coordinator) {
		c.cfg = cfg.withDefaults()
	}
}

// WithExpirer sets the store cleared on terminal failure.
func WithExpirer(e Expirer) Option {
	return func(c *Coordinator) {
		c.expirer = e
	}
}

// WithRefreshFunc replaces the default POST to Config.RefreshPath.
func WithRefreshFunc(fn RefreshFunc) Option {
	return func(c *Coordinator) {
		if fn != nil {
			c.refresh = fn
		}
	}
}

// WithOnRefresh registers fn to run after every refresh settles.
func WithOnRefresh(fn func(ctx context.Context, o Outcome)) Option {
	return func(c *Coordinator) {
		if fn != nil {
			c.onRefresh = append(c.onRefresh, fn)
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.logger = l
		}
	}
}

func New(tr transport.Transport, opts ...Option) *Coordinator {
	c := &Coordinator{
		transport: tr,
		cfg:       DefaultConfig(),
		logger:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.refresh == nil {
		c.refresh = c.postRefresh
	}
	c.logger = c.logger.With(logger.Component("refresh"))
	return c
}

// Config returns the effective configuration.
func (c *Coordinator) Config() Config {
	return c.cfg
}

// State reports whether a refresh is in flight.
func (c *Coordinator) State() State {
	return c.flight.State()
}

// Queued reports how many callers wait on the current refresh.
func (c *Coordinator) Queued() int {
	return c.flight.Queued()
}

// Call sends req. A 401 on a retryable request pauses the call until the
// shared refresh settles, then re-issues it exactly once. If a refresh
// succeeded while req was in flight the 401 is stale and req is re-issued
// without another refresh. Transport failures are returned unchanged and
// never trigger a refresh. When the session cannot be recovered the error
// wraps ErrSessionExpired.
func (c *Coordinator) Call(ctx context.Context, req transport.Request) (transport.Response, error) {
	gen := c.flight.Generation()
	resp, err := c.transport.Do(ctx, req)
	if err != nil || resp.Status != http.StatusUnauthorized || !c.retryable(req) {
		return resp, err
	}

	if c.flight.Generation() == gen {
		c.logger.DebugContext(ctx, "credentials expired, waiting for refresh",
			logger.Method(req.Method), logger.Path(req.Path))
		if err := c.awaitRefresh(ctx); err != nil {
			return transport.Response{}, err
		}
	} else {
		c.logger.DebugContext(ctx, "credentials refreshed while in flight, retrying",
			logger.Method(req.Method), logger.Path(req.Path))
	}

	resp, err = c.transport.Do(ctx, req)
	if err != nil {
		return resp, err
	}
	if resp.Status == http.StatusUnauthorized {
		c.logger.WarnContext(ctx, "request rejected after refresh",
			logger.Method(req.Method), logger.Path(req.Path), logger.Attempt(2))
		c.expire()
		return transport.Response{}, fmt.Errorf("%w: %s %s rejected after refresh", ErrSessionExpired, req.Method, req.Path)
	}
	return resp, nil
}

// Do is Call followed by decoding a 2xx JSON body into out. Non-2xx
// responses are returned with a *transport.StatusError.
func (c *Coordinator) Do(ctx context.Context, req transport.Request, out any) (transport.Response, error) {
	resp, err := c.Call(ctx, req)
	if err != nil {
		return resp, err
	}
	if err := resp.Err(); err != nil {
		return resp, err
	}
	return resp, resp.Decode(out)
}

func (c *Coordinator) retryable(req transport.Request) bool {
	return !req.NoRefresh && !c.cfg.Excluded(req.Path)
}

func (c *Coordinator) awaitRefresh(ctx context.Context) error {
	future, leader := c.flight.Join()
	if leader {
		go c.lead(context.WithoutCancel(ctx))
	}
	_, err := future.Await(ctx)
	if err != nil && ctx.Err() != nil {
		c.flight.Leave(future)
	}
	return err
}

// lead runs the refresh on behalf of every waiter. ctx is detached from the
// caller so one cancelled caller cannot fail the refresh for the rest.
func (c *Coordinator) lead(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.RefreshTimeout)
	defer cancel()

	start := time.Now()
	_, err := async.Async(ctx, struct{}{}, func(ctx context.Context, _ struct{}) (struct{}, error) {
		return struct{}{}, c.refresh(ctx)
	}).Await(ctx)

	if err == nil {
		n := c.flight.ResolveAll()
		c.logger.InfoContext(ctx, "session refreshed",
			logger.Queued(n), logger.Duration(time.Since(start)))
		c.report(ctx, Outcome{Waiters: n, Duration: time.Since(start)})
		return
	}

	if errors.Is(err, context.DeadlineExceeded) {
		err = fmt.Errorf("%w after %s: %w", ErrRefreshTimeout, c.cfg.RefreshTimeout, err)
	}
	cause := fmt.Errorf("%w: %w", ErrSessionExpired, err)

	c.expire()
	n := c.flight.RejectAll(cause)
	c.logger.WarnContext(ctx, "session refresh failed",
		logger.Queued(n), logger.Duration(time.Since(start)), logger.Error(err))
	c.report(ctx, Outcome{Err: cause, Waiters: n, Duration: time.Since(start)})
}

func (c *Coordinator) report(ctx context.Context, o Outcome) {
	for _, fn := range c.onRefresh {
		fn(ctx, o)
	}
}

func (c *Coordinator) postRefresh(ctx context.Context) error {
	resp, err := c.transport.Do(ctx, transport.Request{
		Method:    http.MethodPost,
		Path:      c.cfg.RefreshPath,
		NoRefresh: true,
	})
	if err != nil {
		return err
	}
	if err := resp.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrRefreshRejected, err)
	}
	return nil
}

func (c *Coordinator) expire() {
	if c.expirer != nil {
		c.expirer.Expire()
	}
}
