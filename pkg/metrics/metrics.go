package metrics

import (
	"context"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/authclient/pkg/refresh"
	"github.com/dmitrymomot/authclient/pkg/session"
	"github.com/dmitrymomot/authclient/pkg/transport"
)

const namespace = "authclient"

// Collector holds the client's metrics on its own registry.
type Collector struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	refreshes       *prometheus.CounterVec
	refreshWaiters  prometheus.Histogram
	refreshDuration prometheus.Histogram
	sessionChanges  *prometheus.CounterVec
	circuitState    prometheus.Gauge
}

func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Outbound API calls by method and status code. Transport failures use code \"error\".",
		}, []string{"method", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Outbound API call latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refreshes_total",
			Help:      "Shared session refreshes by result.",
		}, []string{"result"}),
		refreshWaiters: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "refresh_waiters",
			Help:      "Callers released by one refresh, leader included.",
			Buckets:   []float64{1, 2, 4, 8, 16, 32, 64},
		}),
		refreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "refresh_duration_seconds",
			Help:      "Time from first 401 to refresh settlement.",
			Buckets:   prometheus.DefBuckets,
		}),
		sessionChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_changes_total",
			Help:      "Session store transitions by reason.",
		}, []string{"reason"}),
		circuitState: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_state",
			Help:      "Transport circuit breaker state: 0 closed, 1 open, 2 half-open.",
		}),
	}

	c.registry.MustRegister(
		c.requests,
		c.requestDuration,
		c.refreshes,
		c.refreshWaiters,
		c.refreshDuration,
		c.sessionChanges,
		c.circuitState,
		collectors.NewGoCollector(),
	)
	return c
}

// Registry exposes the underlying registry, mostly for tests.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// ObserveExchange is a transport.ExchangeHook.
func (c *Collector) ObserveExchange(_ context.Context, ex transport.Exchange) {
	method := ex.Request.Method
	if method == "" {
		method = http.MethodGet
	}
	code := "error"
	if ex.Err == nil {
		code = strconv.Itoa(ex.Status)
	}
	c.requests.WithLabelValues(method, code).Inc()
	c.requestDuration.WithLabelValues(method).Observe(ex.Duration.Seconds())
}

// ObserveRefresh is a refresh.WithOnRefresh hook.
func (c *Collector) ObserveRefresh(_ context.Context, o refresh.Outcome) {
	result := "success"
	if o.Err != nil {
		result = "failure"
	}
	c.refreshes.WithLabelValues(result).Inc()
	c.refreshWaiters.Observe(float64(o.Waiters))
	c.refreshDuration.Observe(o.Duration.Seconds())
}

// ObserveCircuit tracks breaker transitions; pass it to
// CircuitBreaker.OnStateChange.
func (c *Collector) ObserveCircuit(_, to transport.CircuitState) {
	c.circuitState.Set(float64(to))
}

// WatchSession counts store changes until ctx is done.
func (c *Collector) WatchSession(ctx context.Context, store *session.Store) {
	c.CountChanges(store.Subscribe(ctx))
}

// CountChanges counts changes from an existing subscription until it closes.
func (c *Collector) CountChanges(changes <-chan session.Change) {
	for change := range changes {
		c.sessionChanges.WithLabelValues(string(change.Reason)).Inc()
	}
}
