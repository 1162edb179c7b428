package ospf

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles prometheus instrumentation for area engines. One
// Metrics value can serve any number of areas; per-area series are
// labeled. A nil *Metrics is valid and records nothing, so library users
// who don't run prometheus pay nothing.
type Metrics struct {
	LSDBUpdates *prometheus.CounterVec
	LSDBEntries *prometheus.GaugeVec
	SPFRuns     *prometheus.CounterVec
	SPFDuration prometheus.Histogram
}

// NewMetrics registers the collectors against reg, defaulting to the
// global prometheus registry when reg is nil.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		LSDBUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "linkstate_lsdb_updates_total",
			Help: "LSAs offered to area databases, labeled by area and result.",
		}, []string{"area", "result"}),
		LSDBEntries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "linkstate_lsdb_entries",
			Help: "Number of LSAs installed per area database.",
		}, []string{"area"}),
		SPFRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "linkstate_spf_runs_total",
			Help: "Full SPF recomputations per area.",
		}, []string{"area"}),
		SPFDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "linkstate_spf_duration_seconds",
			Help:    "Wall time of one full SPF recomputation.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 10, 8),
		}),
	}

	collectors := []prometheus.Collector{
		m.LSDBUpdates,
		m.LSDBEntries,
		m.SPFRuns,
		m.SPFDuration,
	}

	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Metrics) observeUpdate(area AreaID, accepted bool) {
	if m == nil {
		return
	}

	result := "rejected"
	if accepted {
		result = "accepted"
	}

	m.LSDBUpdates.WithLabelValues(string(area), result).Inc()
}

func (m *Metrics) setDBSize(area AreaID, n int) {
	if m == nil {
		return
	}

	m.LSDBEntries.WithLabelValues(string(area)).Set(float64(n))
}

func (m *Metrics) observeSPF(area AreaID, d time.Duration) {
	if m == nil {
		return
	}

	m.SPFRuns.WithLabelValues(string(area)).Inc()
	m.SPFDuration.Observe(d.Seconds())
}
