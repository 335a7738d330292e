package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Sources reported in the "source" label.
const (
	SourceRaw  = "raw"
	SourceJSON = "json"
)

// Metrics counts digests computed by the API.
type Metrics struct {
	Digests *prometheus.CounterVec
	Bytes   *prometheus.CounterVec
}

// NewMetrics creates the digest counters under namespace.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		Digests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "digests_total",
			Help:      "Number of digests computed.",
		}, []string{"source"}),
		Bytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_total",
			Help:      "Number of message bytes hashed.",
		}, []string{"source"}),
	}
}

// Collectors returns all prometheus metrics as collectors for registration.
func (m *Metrics) Collectors() []prometheus.Collector {
	if m == nil {
		return nil
	}
	return []prometheus.Collector{
		m.Digests,
		m.Bytes,
	}
}

func (m *Metrics) observe(source string, size int64) {
	if m == nil {
		return
	}
	m.Digests.WithLabelValues(source).Inc()
	m.Bytes.WithLabelValues(source).Add(float64(size))
}

// Handler registers the collectors on a private registry and returns the
// exposition handler for it.
func (m *Metrics) Handler() http.Handler {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGoCollector())
	for _, c := range m.Collectors() {
		reg.MustRegister(c)
	}
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
