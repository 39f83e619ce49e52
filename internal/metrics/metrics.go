package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
)

type Metrics struct {
	CartMutations    *prometheus.CounterVec
	PersistFailures  prometheus.Counter
	CheckoutOutcomes *prometheus.CounterVec
	CheckoutLatency  prometheus.Histogram
}

// New registers the storefront collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "cart",
		Name:      "mutations_total",
		Help:      "Total number of cart mutations by operation.",
	}, []string{"op"})
	persistFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "cart",
		Name:      "persist_failures_total",
		Help:      "Total number of cart writes to durable storage that failed.",
	})
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "checkout",
		Name:      "outcomes_total",
		Help:      "Total number of finished checkouts by status.",
	}, []string{"status"})
	latency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "storefront",
		Subsystem: "checkout",
		Name:      "submission_duration_ms",
		Help:      "Time from submit to outcome in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	})

	reg.MustRegister(mutations, persistFailures, outcomes, latency)

	return &Metrics{
		CartMutations:    mutations,
		PersistFailures:  persistFailures,
		CheckoutOutcomes: outcomes,
		CheckoutLatency:  latency,
	}
}

func (m *Metrics) CartMutation(op string) {
	if m == nil {
		return
	}
	m.CartMutations.WithLabelValues(op).Inc()
}

func (m *Metrics) PersistFailure() {
	if m == nil {
		return
	}
	m.PersistFailures.Inc()
}

func (m *Metrics) CheckoutOutcome(status string, durationMS float64) {
	if m == nil {
		return
	}
	m.CheckoutOutcomes.WithLabelValues(status).Inc()
	m.CheckoutLatency.Observe(durationMS)
}

func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
