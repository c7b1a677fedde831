package converter

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records conversion counts and durations. A nil *Metrics is a no-op.
type Metrics struct {
	conversions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewMetrics creates and registers conversion metrics on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		conversions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "material_conversions_total",
				Help: "Total number of document to PDF conversions.",
			},
			[]string{"backend", "extension", "result"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "material_conversion_duration_seconds",
				Help:    "Duration of document to PDF conversions.",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"backend"},
		),
	}
	for _, c := range []prometheus.Collector{m.conversions, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observe(backend, ext string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.conversions.WithLabelValues(backend, ext, result).Inc()
	m.duration.WithLabelValues(backend).Observe(elapsed.Seconds())
}
