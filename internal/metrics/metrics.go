// Package metrics exposes minification counters for Prometheus.
package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"minifyall/internal/core"
	"minifyall/internal/minifier"
)

// Metrics holds the collectors in their own registry.
type Metrics struct {
	Registry *prometheus.Registry

	MinifiedTotal *prometheus.CounterVec
	FailedTotal   *prometheus.CounterVec
	BytesSaved    *prometheus.CounterVec
	SizeRatio     prometheus.Histogram
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		MinifiedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minifyall_files_minified_total",
				Help: "Total number of files minified",
			},
			[]string{"language"},
		),
		FailedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minifyall_failures_total",
				Help: "Total number of failed minifications by reason",
			},
			[]string{"reason"},
		),
		BytesSaved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minifyall_bytes_saved_total",
				Help: "Bytes removed by minification",
			},
			[]string{"language"},
		),
		SizeRatio: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "minifyall_size_ratio",
				Help:    "Minified size as a fraction of the original size",
				Buckets: []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
			},
		),
	}
	m.Registry.MustRegister(m.MinifiedTotal, m.FailedTotal, m.BytesSaved, m.SizeRatio)
	return m
}

// Observe records a successful minification.
func (m *Metrics) Observe(res *core.Result) {
	lang := string(res.Language)
	m.MinifiedTotal.WithLabelValues(lang).Inc()
	if saved := res.Sizes.Saved(); saved > 0 {
		m.BytesSaved.WithLabelValues(lang).Add(float64(saved))
	}
	m.SizeRatio.Observe(res.Sizes.Ratio())
}

// Failure records a failed minification.
func (m *Metrics) Failure(err error) {
	m.FailedTotal.WithLabelValues(reason(err)).Inc()
}

func reason(err error) string {
	switch {
	case errors.Is(err, minifier.ErrInvalidJSON):
		return "invalid_json"
	case errors.Is(err, minifier.ErrLanguageDisabled):
		return "disabled"
	case errors.Is(err, minifier.ErrUnsupportedLanguage):
		return "unsupported"
	default:
		return "other"
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
