package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics holds the per-server Prometheus collectors
type metrics struct {
	registry        *prometheus.Registry
	cardsComposed   *prometheus.CounterVec
	composeFailures *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		cardsComposed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cardstack",
			Name:      "cards_composed_total",
			Help:      "Number of cards composed by origin kind and view mode",
		}, []string{"kind", "view_mode"}),
		composeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cardstack",
			Name:      "compose_failures_total",
			Help:      "Number of failed card compositions by origin kind",
		}, []string{"kind"}),
	}

	m.registry.MustRegister(m.cardsComposed, m.composeFailures)
	return m
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
