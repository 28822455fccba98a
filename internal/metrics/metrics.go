package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Loaded marks an image that made it into a dataset.
	Loaded = "loaded"
	// Skipped marks an image that was dropped.
	Skipped = "skipped"
)

// Observer is the metrics sink shared by the whole process.
var Observer = NewMetrics()

// Metrics wraps a dedicated prometheus registry.
type Metrics struct {
	registry   *prometheus.Registry
	prometheus Prometheus
}

// NewMetrics creates a new set of registered collectors.
func NewMetrics() *Metrics {
	p := NewPrometheusMetrics()
	registry := prometheus.NewRegistry()
	registry.MustRegister(p.Images, p.Extraction, p.Score)
	return &Metrics{
		registry:   registry,
		prometheus: p,
	}
}

// Increment counts an image for the given dataset, label and status.
func (m *Metrics) Increment(dataset, label, status string) {
	m.prometheus.Images.WithLabelValues(dataset, label, status).Inc()
}

// Observe records the extraction time of a single image.
func (m *Metrics) Observe(dataset string, d time.Duration) {
	m.prometheus.Extraction.WithLabelValues(dataset).Observe(d.Seconds())
}

// Score records an evaluation metric.
func (m *Metrics) Score(classifier, metric string, v float64) {
	m.prometheus.Score.WithLabelValues(classifier, metric).Set(v)
}

// WriteTo dumps all metrics in the text exposition format to the given file.
func (m *Metrics) WriteTo(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("could not write metrics to '%s': %w", path, err)
	}
	return nil
}
