// Package metrics exposes Prometheus collectors for the ledger service.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/settleup/internal/calculator"
)

const namespace = "settleup"

// Metrics holds the service collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	rpcRequests  *prometheus.CounterVec
	rpcDuration  *prometheus.HistogramVec
	recomputes   *prometheus.CounterVec
	transfers    prometheus.Histogram
	ledgerErrors *prometheus.CounterVec
}

// New creates and registers all collectors, plus the Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		rpcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		recomputes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "balance_recomputes_total",
			Help:      "Balance computations by whether they ran or joined one in flight.",
		}, []string{"shared"}),
		transfers: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "settlement_transfers",
			Help:      "Number of transfers in each settlement plan.",
			Buckets:   prometheus.LinearBuckets(0, 2, 10),
		}),
		ledgerErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_errors_total",
			Help:      "Split, balance and settlement failures by kind.",
		}, []string{"kind"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.rpcRequests,
		m.rpcDuration,
		m.recomputes,
		m.transfers,
		m.ledgerErrors,
	)
	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Interceptor returns a Connect interceptor that counts and times every RPC.
func (m *Metrics) Interceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			code := "ok"
			if err != nil {
				code = connect.CodeOf(err).String()
			}
			m.rpcRequests.WithLabelValues(procedure, code).Inc()
			m.rpcDuration.WithLabelValues(procedure).Observe(time.Since(start).Seconds())
			return resp, err
		}
	}
}

// The Observe methods are no-ops on a nil *Metrics.

// ObserveRecompute counts a balance computation. shared is true when the
// caller joined a computation already in flight for the same group.
func (m *Metrics) ObserveRecompute(shared bool) {
	if m == nil {
		return
	}
	label := "false"
	if shared {
		label = "true"
	}
	m.recomputes.WithLabelValues(label).Inc()
}

// ObservePlan records the size of a settlement plan.
func (m *Metrics) ObservePlan(transfers int) {
	if m == nil {
		return
	}
	m.transfers.Observe(float64(transfers))
}

// ObserveError counts err if it is a ledger error. Other errors are ignored.
func (m *Metrics) ObserveError(err error) {
	if m == nil {
		return
	}
	if kind := ErrorKind(err); kind != "" {
		m.ledgerErrors.WithLabelValues(kind).Inc()
	}
}

// ErrorKind names the ledger error class of err, or "" if it is not one.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, calculator.ErrInvalidSplit):
		return "invalid_split"
	case errors.Is(err, calculator.ErrSplitMismatch):
		return "split_mismatch"
	case errors.Is(err, calculator.ErrUnknownMember):
		return "unknown_member"
	case errors.Is(err, calculator.ErrUnbalancedLedger):
		return "unbalanced_ledger"
	default:
		return ""
	}
}
