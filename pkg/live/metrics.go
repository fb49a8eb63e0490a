package live

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for live sessions.
//
// Instruments:
//   - imago_live_active_sessions: gauge of open sessions
//   - imago_live_sessions_total: counter of sessions ever opened
//   - imago_live_events_total: counter of events by result
//   - imago_live_event_duration_seconds: histogram of event dispatch time
//   - imago_live_patches_sent_total: counter of patches streamed out
//   - imago_live_websocket_errors_total: counter of transport errors by type
type Metrics struct {
	activeSessions prometheus.Gauge
	sessionsTotal  prometheus.Counter
	eventsTotal    *prometheus.CounterVec
	eventDuration  prometheus.Histogram
	patchesSent    prometheus.Counter
	wsErrors       *prometheus.CounterVec
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the process-wide metrics registered against
// the default Prometheus registerer.
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		defaultMetrics = NewMetrics(prometheus.DefaultRegisterer)
	})
	return defaultMetrics
}

// NewMetrics registers the live-session instruments against reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "imago",
			Subsystem: "live",
			Name:      "active_sessions",
			Help:      "Number of open live sessions",
		}),
		sessionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "imago",
			Subsystem: "live",
			Name:      "sessions_total",
			Help:      "Total live sessions opened",
		}),
		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "imago",
			Subsystem: "live",
			Name:      "events_total",
			Help:      "Total events dispatched, by result",
		}, []string{"result"}),
		eventDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "imago",
			Subsystem: "live",
			Name:      "event_duration_seconds",
			Help:      "Event dispatch duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		patchesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "imago",
			Subsystem: "live",
			Name:      "patches_sent_total",
			Help:      "Total patches streamed to clients",
		}),
		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "imago",
			Subsystem: "live",
			Name:      "websocket_errors_total",
			Help:      "Total WebSocket transport errors, by type",
		}, []string{"type"}),
	}
}

func (m *Metrics) sessionOpened() {
	if m == nil {
		return
	}
	m.activeSessions.Inc()
	m.sessionsTotal.Inc()
}

func (m *Metrics) sessionClosed() {
	if m == nil {
		return
	}
	m.activeSessions.Dec()
}

func (m *Metrics) eventDispatched(result string, seconds float64) {
	if m == nil {
		return
	}
	m.eventsTotal.WithLabelValues(result).Inc()
	m.eventDuration.Observe(seconds)
}

func (m *Metrics) patchesOut(n int) {
	if m == nil {
		return
	}
	m.patchesSent.Add(float64(n))
}

func (m *Metrics) wsError(kind string) {
	if m == nil {
		return
	}
	m.wsErrors.WithLabelValues(kind).Inc()
}
