package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the dashboard's Prometheus collectors. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	refreshTotal     *prometheus.CounterVec
	refreshDuration  prometheus.Histogram
	snapshotRows     *prometheus.GaugeVec
	filterDuration   prometheus.Histogram
	filterResultSize prometheus.Histogram
	mutationsTotal   *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		refreshTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "coachboard",
			Name:      "snapshot_refresh_total",
			Help:      "Snapshot refresh attempts by result.",
		}, []string{"result"}),
		refreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "coachboard",
			Name:      "snapshot_refresh_duration_seconds",
			Help:      "Time to fetch every collection and build a snapshot.",
			Buckets:   prometheus.DefBuckets,
		}),
		snapshotRows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "coachboard",
			Name:      "snapshot_rows",
			Help:      "Rows per collection in the current snapshot.",
		}, []string{"collection"}),
		filterDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "coachboard",
			Name:      "filter_duration_seconds",
			Help:      "Time spent in one filter pipeline pass.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1},
		}),
		filterResultSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "coachboard",
			Name:      "filter_result_weeks",
			Help:      "Weeks returned by one filter pipeline pass.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		mutationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "coachboard",
			Name:      "mutations_total",
			Help:      "Write-path mutations by entity, operation and result.",
		}, []string{"entity", "op", "result"}),
	}

	if reg != nil {
		reg.MustRegister(
			m.refreshTotal,
			m.refreshDuration,
			m.snapshotRows,
			m.filterDuration,
			m.filterResultSize,
			m.mutationsTotal,
		)
	}
	return m
}

// ObserveRefresh records one refresh attempt.
func (m *Metrics) ObserveRefresh(d time.Duration, err error) {
	if m == nil {
		return
	}
	m.refreshDuration.Observe(d.Seconds())
	m.refreshTotal.WithLabelValues(result(err)).Inc()
}

// SetSnapshotRows publishes the row counts of the current snapshot.
func (m *Metrics) SetSnapshotRows(counts map[string]int) {
	if m == nil {
		return
	}
	for collection, n := range counts {
		m.snapshotRows.WithLabelValues(collection).Set(float64(n))
	}
}

// ObserveFilter records one pipeline pass.
func (m *Metrics) ObserveFilter(d time.Duration, weeks int) {
	if m == nil {
		return
	}
	m.filterDuration.Observe(d.Seconds())
	m.filterResultSize.Observe(float64(weeks))
}

// ObserveMutation records one write-path call.
func (m *Metrics) ObserveMutation(entity, op string, err error) {
	if m == nil {
		return
	}
	m.mutationsTotal.WithLabelValues(entity, op, result(err)).Inc()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
