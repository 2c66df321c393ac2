package bot

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics counts what the router does. A nil *Metrics records nothing.
type Metrics struct {
	registry       *prometheus.Registry
	events         *prometheus.CounterVec
	attributions   *prometheus.CounterVec
	linksRemoved   prometheus.Counter
	platformErrors *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "invitetracker_events_total",
			Help: "Gateway events dispatched, by event kind.",
		}, []string{"event"}),
		attributions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "invitetracker_join_attributions_total",
			Help: "Member joins by attribution result.",
		}, []string{"result"}),
		linksRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "invitetracker_links_removed_total",
			Help: "Messages deleted by the link filter.",
		}),
		platformErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "invitetracker_platform_errors_total",
			Help: "Failed Discord API calls, by operation.",
		}, []string{"op"}),
	}
	m.registry.MustRegister(m.events, m.attributions, m.linksRemoved, m.platformErrors)
	return m
}

// Handler serves the metrics in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) event(kind string) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(kind).Inc()
}

func (m *Metrics) attribution(found bool) {
	if m == nil {
		return
	}
	result := "unknown"
	if found {
		result = "attributed"
	}
	m.attributions.WithLabelValues(result).Inc()
}

func (m *Metrics) linkRemoved() {
	if m == nil {
		return
	}
	m.linksRemoved.Inc()
}

func (m *Metrics) platformError(op string) {
	if m == nil {
		return
	}
	m.platformErrors.WithLabelValues(op).Inc()
}
