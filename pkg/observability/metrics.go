package observability

import (
	"net/http"

	"github.com/aretw0/cvterm/pkg/domain"
	"github.com/aretw0/cvterm/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of one process.
// Each instance owns its registry so tests can create as many as they like.
type Metrics struct {
	registry     *prometheus.Registry
	commands     *prometheus.CounterVec
	bootSteps    *prometheus.CounterVec
	exits        prometheus.Counter
	httpDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cvterm_commands_total",
				Help: "Total number of dispatched commands",
			},
			[]string{"command", "outcome"},
		),
		bootSteps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cvterm_boot_steps_total",
				Help: "Total number of completed boot steps",
			},
			[]string{"step"},
		),
		exits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cvterm_exits_total",
			Help: "Total number of exit commands",
		}),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cvterm_http_request_duration_seconds",
				Help:    "Duration of HTTP API requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method", "status"},
		),
	}
	m.registry.MustRegister(m.commands, m.bootSteps, m.exits, m.httpDuration)
	return m
}

// ObserveCommand counts a dispatch. Unknown input is bucketed so label
// cardinality stays bounded.
func (m *Metrics) ObserveCommand(command string, outcome domain.Outcome) {
	key := ports.UsageKey(command, outcome)
	if key == "" {
		return
	}
	m.commands.WithLabelValues(key, string(outcome)).Inc()
}

// ObserveBootStep counts a boot step.
func (m *Metrics) ObserveBootStep(step string) {
	m.bootSteps.WithLabelValues(step).Inc()
}

// ObserveExit counts an exit.
func (m *Metrics) ObserveExit() {
	m.exits.Inc()
}

// ObserveHTTP records the duration of one request in seconds.
func (m *Metrics) ObserveHTTP(route, method, status string, seconds float64) {
	m.httpDuration.WithLabelValues(route, method, status).Observe(seconds)
}

// Registry exposes the underlying registry (for gathering in tests).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
