// Package metrics counts analysis runs and the fallbacks taken along the way.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "resume_scanner"

// Recorder owns a private registry so several recorders can coexist in one process.
// All methods are safe on a nil *Recorder.
type Recorder struct {
	registry           *prometheus.Registry
	analyses           *prometheus.CounterVec
	scorerFallbacks    *prometheus.CounterVec
	profileFallbacks   *prometheus.CounterVec
	extractionFailures *prometheus.CounterVec
	duration           *prometheus.SummaryVec
}

func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		analyses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "analyses_total",
				Help:      "Completed candidate analyses by score source",
			},
			[]string{"source"},
		),
		scorerFallbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "scorer_fallbacks_total",
				Help:      "Generative scoring fallbacks by reason",
			},
			[]string{"reason"},
		),
		profileFallbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "profile_fallbacks_total",
				Help:      "Fallback profile signals by source",
			},
			[]string{"source"},
		),
		extractionFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "extraction_failures_total",
				Help:      "Documents that could not be turned into text, by format hint",
			},
			[]string{"format"},
		),
		duration: factory.NewSummaryVec(
			prometheus.SummaryOpts{
				Namespace: namespace,
				Name:      "operation_duration_seconds",
				Help:      "Duration of engine operations in seconds",
				Objectives: map[float64]float64{
					0.5:  0.05,
					0.9:  0.01,
					0.99: 0.001,
				},
			},
			[]string{"operation"},
		),
	}
}

func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

func (r *Recorder) AnalysisCompleted(source string) {
	if r == nil {
		return
	}
	r.analyses.WithLabelValues(source).Inc()
}

func (r *Recorder) ScorerFallback(reason string) {
	if r == nil {
		return
	}
	r.scorerFallbacks.WithLabelValues(reason).Inc()
}

func (r *Recorder) ProfileFallback(source string) {
	if r == nil {
		return
	}
	r.profileFallbacks.WithLabelValues(source).Inc()
}

func (r *Recorder) ExtractionFailed(format string) {
	if r == nil {
		return
	}
	if format == "" {
		format = "unknown"
	}
	r.extractionFailures.WithLabelValues(format).Inc()
}

func (r *Recorder) ObserveDuration(operation string, d time.Duration) {
	if r == nil {
		return
	}
	r.duration.WithLabelValues(operation).Observe(d.Seconds())
}

// WriteToTextfile dumps every metric in the text exposition format, for the
// node exporter textfile collector.
func (r *Recorder) WriteToTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
