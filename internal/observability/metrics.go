// internal/observability/metrics.go
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics carries the bridge's run counters on a private registry, so
// tests can build as many instances as they like without collisions.
type Metrics struct {
	registry *prometheus.Registry

	runsStarted    *prometheus.CounterVec
	runsFinished   *prometheus.CounterVec
	runDuration    prometheus.Histogram
	queueDepth     prometheus.Gauge
	corrections    prometheus.Counter
	obstacleAborts prometheus.Counter
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "zonenav_runs_started_total",
			Help: "Navigator runs started, by scenario.",
		}, []string{"scenario"}),
		runsFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "zonenav_runs_finished_total",
			Help: "Navigator runs finished, by report phase.",
		}, []string{"phase"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "zonenav_run_duration_seconds",
			Help:    "Wall time from launch to terminal report.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		}),
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "zonenav_request_queue_depth",
			Help: "Requests waiting for the robot.",
		}),
		corrections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "zonenav_wrong_way_corrections_total",
			Help: "Wrong-way turn-around maneuvers observed.",
		}),
		obstacleAborts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "zonenav_obstacle_aborts_total",
			Help: "Runs aborted on obstacle proximity.",
		}),
	}

	m.registry.MustRegister(
		m.runsStarted,
		m.runsFinished,
		m.runDuration,
		m.queueDepth,
		m.corrections,
		m.obstacleAborts,
	)
	return m
}

// Handler serves the registry for scraping.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ---- bridge.Metrics ----

func (m *Metrics) RunStarted(scenario string) {
	m.runsStarted.WithLabelValues(scenario).Inc()
}

func (m *Metrics) RunFinished(phase string, seconds float64) {
	m.runsFinished.WithLabelValues(phase).Inc()
	m.runDuration.Observe(seconds)
}

func (m *Metrics) QueueDepth(n int) {
	m.queueDepth.Set(float64(n))
}

func (m *Metrics) Correction() {
	m.corrections.Inc()
}

func (m *Metrics) ObstacleAbort() {
	m.obstacleAborts.Inc()
}
