// Package metrics - Prometheus instrumentation of the annotation loop.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors of one annotation run on a private registry.
type Metrics struct {
	Frames         prometheus.Counter
	Detections     *prometheus.CounterVec
	Dropped        prometheus.Counter
	InferenceTime  prometheus.Histogram
	InferenceFails prometheus.Counter
	LabelsVisible  prometheus.Gauge

	registry *prometheus.Registry
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Frames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "annotate_frames_total",
			Help: "Total frames annotated and shown",
		}),
		Detections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "annotate_detections_total",
			Help: "Detections drawn, by category",
		}, []string{"category"}),
		Dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "annotate_detections_dropped_total",
			Help: "Detections skipped because their class is not in the category table",
		}),
		InferenceTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "annotate_inference_seconds",
			Help:    "Time spent in the detection model per frame",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1},
		}),
		InferenceFails: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "annotate_inference_errors_total",
			Help: "Frames whose inference failed and were shown without detections",
		}),
		LabelsVisible: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "annotate_labels_visible",
			Help: "Whether detection labels are drawn (1) or hidden (0)",
		}),
	}
	m.registry.MustRegister(m.Frames, m.Detections, m.Dropped, m.InferenceTime, m.InferenceFails, m.LabelsVisible)
	m.LabelsVisible.Set(1)
	return m
}

// ObserveInference records the duration of one model call.
func (m *Metrics) ObserveInference(d time.Duration) {
	m.InferenceTime.Observe(d.Seconds())
}

// SetLabelsVisible mirrors the label toggle.
func (m *Metrics) SetLabelsVisible(visible bool) {
	if visible {
		m.LabelsVisible.Set(1)
		return
	}
	m.LabelsVisible.Set(0)
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the Prometheus HTTP handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// NewServer builds the /metrics HTTP server for addr. The caller owns
// starting and shutting it down.
func (m *Metrics) NewServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
