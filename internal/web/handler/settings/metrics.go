package settings

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	engine "github.com/deltagreen-vtt/dgsettings/internal/settings"
)

var (
	metrics     *Metrics  //nolint:gochecknoglobals
	metricsOnce sync.Once //nolint:gochecknoglobals
)

// Metrics counts submissions and their writes.
type Metrics struct {
	submissions *prometheus.CounterVec
	writes      *prometheus.CounterVec
}

// NewMetrics registers the submission counters on first use.
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = &Metrics{
			submissions: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "settings_submissions_total",
				Help: "Number of settings form submissions, by namespace and outcome.",
			}, []string{"namespace", "outcome"}),
			writes: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "settings_writes_total",
				Help: "Number of setting writes, by namespace and outcome.",
			}, []string{"namespace", "outcome"}),
		}
	})

	return metrics
}

// Observe records one settled submission.
func (m *Metrics) Observe(r engine.Result) {
	ns := string(r.Namespace)

	outcome := "ok"
	if !r.OK() {
		outcome = "partial"
		if len(r.Applied) == 0 {
			outcome = "failed"
		}
	}

	m.submissions.WithLabelValues(ns, outcome).Inc()
	m.writes.WithLabelValues(ns, "ok").Add(float64(len(r.Applied)))
	m.writes.WithLabelValues(ns, "failed").Add(float64(len(r.Failures)))
}
