// Package metrics records Prometheus metrics for outbound calls, shared
// refreshes, circuit breaker state and session transitions.
//
// The collector's methods match the hook signatures of the packages it
// observes:
//
//	m := metrics.New()
//	cb := transport.NewCircuitBreaker(0, 0, 0).OnStateChange(m.ObserveCircuit)
//	tr, _ := transport.New(cfg, transport.WithCircuitBreaker(cb), transport.WithOnExchange(m.ObserveExchange))
//	coord := refresh.New(tr, refresh.WithOnRefresh(m.ObserveRefresh))
//	go m.WatchSession(ctx, store)
//	router.Handle("/metrics", m.Handler())
package metrics
