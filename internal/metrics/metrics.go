// Package metrics exports poll and risk readings for Prometheus.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"riskboard/internal/risk"
)

const namespace = "riskboard"

type Metrics struct {
	fetches       *prometheus.CounterVec
	fetchDuration prometheus.Histogram
	rendered      prometheus.Counter
	totalRisk     prometheus.Gauge
	alertLevel    prometheus.Gauge
	signalRisk    *prometheus.GaugeVec
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		fetches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetches_total",
			Help:      "Data document fetches by result",
		}, []string{"result"}),
		fetchDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Data document fetch latency",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 15},
		}),
		rendered: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshots_rendered_total",
			Help:      "Snapshots rendered after a change",
		}),
		totalRisk: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "total_risk",
			Help:      "Latest rendered total risk score",
		}),
		alertLevel: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "alert_level",
			Help:      "Latest alert level, 0 LOW to 4 SEVERE",
		}),
		signalRisk: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "signal_risk",
			Help:      "Latest rendered risk score per signal",
		}, []string{"signal"}),
	}
}

// Fetcher matches dashboard.Fetcher.
type Fetcher interface {
	Fetch(ctx context.Context) (*risk.Snapshot, error)
}

type instrumented struct {
	next Fetcher
	m    *Metrics
}

// Instrument wraps f so every fetch is counted and timed.
func (m *Metrics) Instrument(f Fetcher) Fetcher {
	return instrumented{next: f, m: m}
}

func (i instrumented) Fetch(ctx context.Context) (*risk.Snapshot, error) {
	start := time.Now()
	s, err := i.next.Fetch(ctx)
	i.m.fetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		i.m.fetches.WithLabelValues("error").Inc()
		return nil, err
	}
	i.m.fetches.WithLabelValues("ok").Inc()
	return s, nil
}

// SnapshotChanged updates the gauges. Signals missing from cur are dropped
// from the export.
func (m *Metrics) SnapshotChanged(_, cur *risk.Snapshot) {
	m.rendered.Inc()
	if cur.TotalRisk != nil {
		score := cur.TotalRisk.Score()
		m.totalRisk.Set(float64(score))
		m.alertLevel.Set(float64(risk.AlertLevel(score).Level))
	}
	for _, key := range risk.SignalKeys {
		if sig := cur.Signal(key); sig != nil {
			m.signalRisk.WithLabelValues(string(key)).Set(float64(sig.Score()))
		} else {
			m.signalRisk.DeleteLabelValues(string(key))
		}
	}
}
