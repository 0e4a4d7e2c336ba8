package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type MetricsCollector struct {
	tickDuration   prometheus.Histogram
	ticksTotal     prometheus.Counter
	bodies         prometheus.Gauge
	kineticEnergy  prometheus.Gauge
	momentum       prometheus.Gauge
	snapshotsTotal prometheus.Counter
	snapshotBytes  prometheus.Counter
	wsClients      prometheus.Gauge
	stateRequests  *prometheus.CounterVec
}

func NewMetricsCollector() *MetricsCollector {
	m := &MetricsCollector{
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sim_tick_duration_seconds",
			Help:    "Time spent advancing the simulation one step",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		ticksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sim_ticks_total",
			Help: "Total simulation steps run",
		}),
		bodies: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sim_bodies",
			Help: "Number of bodies in the simulation",
		}),
		kineticEnergy: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sim_kinetic_energy",
			Help: "Total kinetic energy of all bodies",
		}),
		momentum: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sim_momentum_magnitude",
			Help: "Magnitude of the total linear momentum",
		}),
		snapshotsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sim_snapshots_total",
			Help: "Total state snapshots broadcast",
		}),
		snapshotBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sim_snapshot_bytes_total",
			Help: "Total snapshot bytes broadcast",
		}),
		wsClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sim_websocket_clients",
			Help: "Currently connected websocket clients",
		}),
		stateRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sim_state_requests_total",
			Help: "Total /state requests by outcome",
		}, []string{"outcome"}),
	}

	prometheus.MustRegister(
		m.tickDuration,
		m.ticksTotal,
		m.bodies,
		m.kineticEnergy,
		m.momentum,
		m.snapshotsTotal,
		m.snapshotBytes,
		m.wsClients,
		m.stateRequests,
	)
	return m
}

func (m *MetricsCollector) ObserveTick(d time.Duration) {
	m.tickDuration.Observe(d.Seconds())
	m.ticksTotal.Inc()
}

func (m *MetricsCollector) SetBodies(n int) {
	m.bodies.Set(float64(n))
}

func (m *MetricsCollector) SetDiagnostics(kineticEnergy, momentumMagnitude float64) {
	m.kineticEnergy.Set(kineticEnergy)
	m.momentum.Set(momentumMagnitude)
}

func (m *MetricsCollector) RecordSnapshot(bytes int) {
	m.snapshotsTotal.Inc()
	m.snapshotBytes.Add(float64(bytes))
}

func (m *MetricsCollector) ClientConnected()    { m.wsClients.Inc() }
func (m *MetricsCollector) ClientDisconnected() { m.wsClients.Dec() }

func (m *MetricsCollector) RecordStateRequest(outcome string) {
	m.stateRequests.WithLabelValues(outcome).Inc()
}

func (m *MetricsCollector) ServeMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	http.ListenAndServe(addr, mux)
}
