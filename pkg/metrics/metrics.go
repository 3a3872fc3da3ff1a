package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HistogramBuckets = []float64{
	// Fast responses (0 - 500ms)
	25, 50, 75, 100, 150, 200, 300, 400, 500,

	// Medium responses (500ms - 2s)
	750, 1000, 1250, 1500, 1750, 2000,

	// Slow responses (2s - 15s)
	2500, 3000, 4000, 5000, 7500, 10000, 15000,

	// Extended range (15s - 120s)
	20000, 30000, 45000, 60000, 90000, 120000,
}

// Metric is a definition for the name, description, type, ID, and
// prometheus.Collector type (i.e. CounterVec, Summary, etc) of each metric
type Metric struct {
	MetricCollector prometheus.Collector
	ID              string
	Name            string
	Description     string
	Type            string
	Args            []string
}

// NewMetric associates prometheus.Collector based on Metric.Type
func NewMetric(m *Metric, subsystem string) prometheus.Collector {
	var metric prometheus.Collector
	switch m.Type {
	case "counter_vec":
		metric = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Subsystem: subsystem,
				Name:      m.Name,
				Help:      m.Description,
			},
			m.Args,
		)
	case "counter":
		metric = prometheus.NewCounter(
			prometheus.CounterOpts{
				Subsystem: subsystem,
				Name:      m.Name,
				Help:      m.Description,
			},
		)
	case "gauge_vec":
		metric = prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Subsystem: subsystem,
				Name:      m.Name,
				Help:      m.Description,
			},
			m.Args,
		)
	case "gauge":
		metric = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Subsystem: subsystem,
				Name:      m.Name,
				Help:      m.Description,
			},
		)
	case "histogram_vec":
		metric = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Subsystem: subsystem,
				Name:      m.Name,
				Help:      m.Description,
				Buckets:   HistogramBuckets,
			},
			m.Args,
		)
	case "histogram":
		metric = prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Subsystem: subsystem,
				Name:      m.Name,
				Help:      m.Description,
				Buckets:   HistogramBuckets,
			},
		)
	case "summary_vec":
		metric = prometheus.NewSummaryVec(
			prometheus.SummaryOpts{
				Subsystem: subsystem,
				Name:      m.Name,
				Help:      m.Description,
			},
			m.Args,
		)
	case "summary":
		metric = prometheus.NewSummary(
			prometheus.SummaryOpts{
				Subsystem: subsystem,
				Name:      m.Name,
				Help:      m.Description,
			},
		)
	}
	return metric
}

// Business counters. Registered once at package init via promauto.
var (
	// CheckinTotal counts check-in attempts by outcome:
	// recorded | duplicate | not_available | error.
	CheckinTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pulse",
		Name:      "checkin_total",
		Help:      "Check-in attempts partitioned by outcome.",
	}, []string{"outcome"})

	// CycleRolloverTotal counts persisted cycle rollovers.
	CycleRolloverTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pulse",
		Name:      "cycle_rollover_total",
		Help:      "Cycle rollovers applied to check-in records.",
	})

	// PointAwardTotal counts XP awards by path (atomic | fallback) and
	// result (ok | error).
	PointAwardTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pulse",
		Name:      "point_award_total",
		Help:      "XP awards partitioned by write path and result.",
	}, []string{"path", "result"})

	// PhaseCompletionTotal counts phase completion attempts by reason.
	PhaseCompletionTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pulse",
		Name:      "phase_completion_total",
		Help:      "Phase completion attempts partitioned by gate reason.",
	}, []string{"reason"})
)

const (
	RefererKey = "X-Referer"
)
