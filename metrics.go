package tqueue

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is an optional set of Prometheus collectors a Queue can be
// attached to via WithMetrics. A nil *Metrics (the default) makes
// every recording method a no-op, so instrumentation never costs a
// queue that doesn't register one.
//
// Label cardinality is intentionally bounded to the outcome name, the
// same discipline fight-club-go's observability package applies to
// its own counters: no per-caller or per-value labels that could grow
// without bound.
type Metrics struct {
	pushTotal *prometheus.CounterVec
	popTotal  *prometheus.CounterVec
	depth     prometheus.Gauge
	disposed  prometheus.Counter
}

// NewMetrics registers a fresh set of collectors on reg and returns
// a *Metrics ready to pass to WithMetrics. namespace is used as the
// Prometheus metric namespace (e.g. "myservice").
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		pushTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tqueue_push_total",
			Help:      "Total Push attempts by outcome.",
		}, []string{"outcome"}),
		popTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tqueue_pop_total",
			Help:      "Total Pop attempts by outcome.",
		}, []string{"outcome"}),
		depth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tqueue_depth",
			Help:      "Best-effort snapshot of head-tail at the last recorded operation.",
		}),
		disposed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tqueue_disposed_items_total",
			Help:      "Total items drained through DisposeItem on handle close.",
		}),
	}
}

func (m *Metrics) recordPush(outcome string, depth int64) {
	if m == nil {
		return
	}
	m.pushTotal.WithLabelValues(outcome).Inc()
	m.depth.Set(float64(depth))
}

func (m *Metrics) recordPop(outcome string, depth int64) {
	if m == nil {
		return
	}
	m.popTotal.WithLabelValues(outcome).Inc()
	m.depth.Set(float64(depth))
}

func (m *Metrics) recordDisposed(n int) {
	if m == nil || n == 0 {
		return
	}
	m.disposed.Add(float64(n))
}
