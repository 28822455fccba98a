package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "glyph"

// Prometheus holds the collectors of a run.
type Prometheus struct {
	Images     *prometheus.CounterVec
	Extraction *prometheus.HistogramVec
	Score      *prometheus.GaugeVec
}

// NewPrometheusMetrics creates the collectors.
func NewPrometheusMetrics() Prometheus {
	return Prometheus{
		Images: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "images_total",
				Help:      "images processed while building datasets",
			}, []string{"dataset", "label", "status"}),
		Extraction: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "extraction_seconds",
				Help:      "time spent decoding an image and building its histogram",
				Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
			}, []string{"dataset"}),
		Score: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "score",
				Help:      "weighted evaluation metrics of the last run",
			}, []string{"classifier", "metric"}),
	}
}
