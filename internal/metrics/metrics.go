package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the prometheus instruments for the domain store.
type Metrics struct {
	StoreOps     *prometheus.CounterVec
	StoreErrors  *prometheus.CounterVec
	FeedEvents   *prometheus.CounterVec
	LoadDuration prometheus.Histogram
}

// New creates the back-office metric set and registers it on reg.
// Pass a fresh prometheus.NewRegistry() in tests to avoid duplicate
// registration across test cases.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		StoreOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_operations_total",
			Help:      "Domain store operations by name",
		}, []string{"operation"}),
		StoreErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_errors_total",
			Help:      "Failed domain store operations by name",
		}, []string{"operation"}),
		FeedEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_events_total",
			Help:      "Change feed events applied, by table and kind",
		}, []string{"table", "kind"}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "initial_load_seconds",
			Help:      "Duration of the initial collection load",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.StoreOps, m.StoreErrors, m.FeedEvents, m.LoadDuration)
	return m
}
